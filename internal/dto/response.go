package dto

import "time"

const (
	ShowListTimeLayout = "01/02/2006"
	DetailTimeLayout   = "01/02/2006, 15:04"
)

// ErrorResponse is the JSON body of delete endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type VenueListing struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type VenueArea struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueListing `json:"venues"`
}

type ArtistListing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ShowListing struct {
	VenueID         uint   `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type SearchItem struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city"`
	State            string `json:"state"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type SearchResults struct {
	Count int          `json:"count"`
	Data  []SearchItem `json:"data"`
}

// ArtistShow is a show seen from a venue page.
type ArtistShow struct {
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShow is a show seen from an artist page.
type VenueShow struct {
	VenueID        uint   `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

type VenueDetail struct {
	ID                 uint         `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	Address            string       `json:"address"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	ImageLink          string       `json:"image_link"`
	SeekingTalent      bool         `json:"seeking_talent"`
	SeekingDescription string       `json:"seeking_description"`
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	ID                 uint        `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	Website            string      `json:"website"`
	FacebookLink       string      `json:"facebook_link"`
	ImageLink          string      `json:"image_link"`
	SeekingVenue       bool        `json:"seeking_venue"`
	SeekingDescription string      `json:"seeking_description"`
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ListingEvent is published after a committed mutation.
type ListingEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         uint      `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ListingEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}
