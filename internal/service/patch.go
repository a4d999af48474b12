package service

import (
	"strings"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
)

// VenuePatch holds submitted venue fields. Empty strings and empty genres
// keep the stored value; a nil SeekingTalent keeps the stored flag.
type VenuePatch struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	Genres             []string
	SeekingTalent      *bool
	SeekingDescription string
}

// NewVenuePatch builds a patch from a bound form. seekingSubmitted tells
// whether the request carried the seeking_talent field at all.
func NewVenuePatch(f dto.VenueForm, seekingSubmitted bool) VenuePatch {
	p := VenuePatch{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		Genres:             f.Genres,
		SeekingDescription: f.SeekingDescription,
	}
	if seekingSubmitted {
		b := bool(f.SeekingTalent)
		p.SeekingTalent = &b
	}
	return p
}

func (p VenuePatch) Apply(v *models.Venue) {
	setString(&v.Name, p.Name)
	setString(&v.City, p.City)
	setString(&v.State, p.State)
	setString(&v.Address, p.Address)
	setString(&v.Phone, p.Phone)
	setString(&v.ImageLink, p.ImageLink)
	setString(&v.FacebookLink, p.FacebookLink)
	setString(&v.Website, p.Website)
	setString(&v.SeekingDescription, p.SeekingDescription)
	if len(p.Genres) > 0 {
		v.Genres = p.Genres
	}
	if p.SeekingTalent != nil {
		v.SeekingTalent = *p.SeekingTalent
	}
}

// ArtistPatch follows the same rules as VenuePatch.
type ArtistPatch struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	Genres             []string
	SeekingVenue       *bool
	SeekingDescription string
}

func NewArtistPatch(f dto.ArtistForm, seekingSubmitted bool) ArtistPatch {
	p := ArtistPatch{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		Genres:             f.Genres,
		SeekingDescription: f.SeekingDescription,
	}
	if seekingSubmitted {
		b := bool(f.SeekingVenue)
		p.SeekingVenue = &b
	}
	return p
}

func (p ArtistPatch) Apply(a *models.Artist) {
	setString(&a.Name, p.Name)
	setString(&a.City, p.City)
	setString(&a.State, p.State)
	setString(&a.Phone, p.Phone)
	setString(&a.ImageLink, p.ImageLink)
	setString(&a.FacebookLink, p.FacebookLink)
	setString(&a.Website, p.Website)
	setString(&a.SeekingDescription, p.SeekingDescription)
	if len(p.Genres) > 0 {
		a.Genres = p.Genres
	}
	if p.SeekingVenue != nil {
		a.SeekingVenue = *p.SeekingVenue
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
