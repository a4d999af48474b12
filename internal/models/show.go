package models

import "time"

// Show links one Artist to one Venue at a point in time. Rows are removed
// explicitly when either side is deleted.
type Show struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	ArtistID  uint      `gorm:"not null;index" json:"artist_id"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	CreatedAt time.Time `json:"created_at"`

	Venue  *Venue  `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Artist *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

// IsUpcoming reports whether the show starts strictly after now.
func (s Show) IsUpcoming(now time.Time) bool {
	return s.StartTime.After(now)
}
