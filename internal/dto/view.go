package dto

import (
	"time"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
)

// CountUpcoming counts shows starting strictly after now.
func CountUpcoming(shows []models.Show, now time.Time) int {
	n := 0
	for _, s := range shows {
		if s.IsUpcoming(now) {
			n++
		}
	}
	return n
}

func NewVenueListing(v *models.Venue, now time.Time) VenueListing {
	return VenueListing{
		ID:               v.ID,
		Name:             v.Name,
		NumUpcomingShows: CountUpcoming(v.Shows, now),
	}
}

func NewArtistListing(a *models.Artist) ArtistListing {
	return ArtistListing{ID: a.ID, Name: a.Name}
}

func NewShowListing(s *models.Show) ShowListing {
	out := ShowListing{
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: s.StartTime.Format(ShowListTimeLayout),
	}
	if s.Venue != nil {
		out.VenueName = s.Venue.Name
	}
	if s.Artist != nil {
		out.ArtistName = s.Artist.Name
		out.ArtistImageLink = s.Artist.ImageLink
	}
	return out
}

func NewVenueSearchResults(venues []models.Venue, now time.Time) SearchResults {
	items := make([]SearchItem, len(venues))
	for i := range venues {
		v := &venues[i]
		items[i] = SearchItem{ID: v.ID, Name: v.Name, City: v.City, State: v.State, NumUpcomingShows: CountUpcoming(v.Shows, now)}
	}
	return SearchResults{Count: len(items), Data: items}
}

func NewArtistSearchResults(artists []models.Artist, now time.Time) SearchResults {
	items := make([]SearchItem, len(artists))
	for i := range artists {
		a := &artists[i]
		items[i] = SearchItem{ID: a.ID, Name: a.Name, City: a.City, State: a.State, NumUpcomingShows: CountUpcoming(a.Shows, now)}
	}
	return SearchResults{Count: len(items), Data: items}
}

// NewVenueDetail splits the venue's shows into past and upcoming relative to
// now. v.Shows must carry their Artist for names and images to be filled.
func NewVenueDetail(v *models.Venue, now time.Time) VenueDetail {
	d := VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             v.Genres,
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		PastShows:          []ArtistShow{},
		UpcomingShows:      []ArtistShow{},
	}

	for _, s := range v.Shows {
		item := ArtistShow{
			ArtistID:  s.ArtistID,
			StartTime: s.StartTime.Format(DetailTimeLayout),
		}
		if s.Artist != nil {
			item.ArtistName = s.Artist.Name
			item.ArtistImageLink = s.Artist.ImageLink
		}
		if s.IsUpcoming(now) {
			d.UpcomingShows = append(d.UpcomingShows, item)
		} else {
			d.PastShows = append(d.PastShows, item)
		}
	}

	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

func NewArtistDetail(a *models.Artist, now time.Time) ArtistDetail {
	d := ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             a.Genres,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		PastShows:          []VenueShow{},
		UpcomingShows:      []VenueShow{},
	}

	for _, s := range a.Shows {
		item := VenueShow{
			VenueID:   s.VenueID,
			StartTime: s.StartTime.Format(DetailTimeLayout),
		}
		if s.Venue != nil {
			item.VenueName = s.Venue.Name
			item.VenueImageLink = s.Venue.ImageLink
		}
		if s.IsUpcoming(now) {
			d.UpcomingShows = append(d.UpcomingShows, item)
		} else {
			d.PastShows = append(d.PastShows, item)
		}
	}

	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}
