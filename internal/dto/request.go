package dto

import (
	"strings"
	"time"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
)

// Checkbox binds an HTML checkbox value. Browsers send "y", "on", "true" or
// whatever value attribute the input carries when checked.
type Checkbox bool

func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "", "n", "no", "off", "false", "0":
		*c = false
	default:
		*c = true
	}
	return nil
}

type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      Checkbox `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

func (f VenueForm) ToModel() models.Venue {
	return models.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      Checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       Checkbox `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

func (f ArtistForm) ToModel() models.Artist {
	return models.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       Checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// Accepted start_time layouts: the plain form layout and the HTML
// datetime-local input value.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,numeric"`
	VenueID   string `form:"venue_id" validate:"required,numeric"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// ParseStartTime parses value in the server's local zone using the first
// matching layout in StartTimeLayouts.
func ParseStartTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var err error
	for _, layout := range StartTimeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}
