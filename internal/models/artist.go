package models

import "time"

type Artist struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	City               string    `gorm:"size:120;not null" json:"city"`
	State              string    `gorm:"size:120;not null" json:"state"`
	Phone              string    `gorm:"size:120" json:"phone"`
	ImageLink          string    `gorm:"size:500" json:"image_link"`
	FacebookLink       string    `gorm:"size:120" json:"facebook_link"`
	Website            string    `gorm:"size:120" json:"website"`
	Genres             []string  `gorm:"serializer:json;type:text" json:"genres"`
	SeekingVenue       bool      `gorm:"not null;default:false" json:"seeking_venue"`
	SeekingDescription string    `gorm:"size:500" json:"seeking_description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Shows []Show `gorm:"foreignKey:ArtistID" json:"shows,omitempty"`
}
