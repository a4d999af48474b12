package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListArtists_OrderedByID(t *testing.T) {
	f := newFixture(t)
	a := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	b := f.addArtist(t, "Matt Quevedo", "New York", "NY")
	c := f.addArtist(t, "The Wild Sax Band", "San Francisco", "CA")

	got, err := f.artistService().ListArtists(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []dto.ArtistListing{
		{ID: a.ID, Name: "Guns N Petals"},
		{ID: b.ID, Name: "Matt Quevedo"},
		{ID: c.ID, Name: "The Wild Sax Band"},
	}, got)
}

func TestSearchArtists(t *testing.T) {
	f := newFixture(t)
	venue := f.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	guns := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	f.addArtist(t, "Matt Quevedo", "New York", "NY")
	f.addArtist(t, "The Wild Sax Band", "San Francisco", "CA")
	f.addShow(t, venue.ID, guns.ID, fixedNow.Add(time.Hour))
	svc := f.artistService()

	res, err := svc.SearchArtists(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = svc.SearchArtists(context.Background(), "band")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "The Wild Sax Band", res.Data[0].Name)

	res, err = svc.SearchArtists(context.Background(), "petals")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows)

	res, err = svc.SearchArtists(context.Background(), "_")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Data)
}

func TestGetArtist_PastShow(t *testing.T) {
	f := newFixture(t)
	venue := f.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	f.addShow(t, venue.ID, artist.ID, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC))

	detail, err := f.artistService().GetArtist(context.Background(), artist.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 0, detail.UpcomingShowsCount)
	require.Len(t, detail.PastShows, 1)
	assert.Equal(t, venue.ID, detail.PastShows[0].VenueID)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
	assert.Empty(t, detail.UpcomingShows)
}

func TestGetArtist_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.artistService().GetArtist(context.Background(), 1)

	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestCreateArtist(t *testing.T) {
	f := newFixture(t)
	existing := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	svc := f.artistService()
	artist := &models.Artist{
		Name:               "Matt Quevedo",
		City:               "New York",
		State:              "NY",
		Phone:              "300-400-5000",
		Genres:             []string{"Jazz"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for gigs",
	}

	err := svc.CreateArtist(context.Background(), artist)

	require.NoError(t, err)
	assert.Greater(t, artist.ID, existing.ID)

	count, err := f.artists.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	stored, err := svc.GetArtistForEdit(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matt Quevedo", stored.Name)
	assert.Equal(t, []string{"Jazz"}, stored.Genres)
	assert.True(t, stored.SeekingVenue)
	assert.Equal(t, "Looking for gigs", stored.SeekingDescription)
	assert.Equal(t, []string{"artist.created"}, f.publisher.keys)
}

func TestUpdateArtist_PartialPatch(t *testing.T) {
	f := newFixture(t)
	artist := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	artist.SeekingVenue = true
	require.NoError(t, f.db.Save(artist).Error)

	notSeeking := false
	updated, err := f.artistService().UpdateArtist(context.Background(), artist.ID, ArtistPatch{
		City:         "Oakland",
		Genres:       []string{"Folk", "Blues"},
		SeekingVenue: &notSeeking,
	})

	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", updated.Name)
	assert.Equal(t, "Oakland", updated.City)
	assert.Equal(t, []string{"Folk", "Blues"}, updated.Genres)
	assert.False(t, updated.SeekingVenue)

	stored, err := f.artists.FindByID(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oakland", stored.City)
	assert.False(t, stored.SeekingVenue)
}

func TestUpdateArtist_KeepsSeekingWhenAbsent(t *testing.T) {
	f := newFixture(t)
	artist := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	artist.SeekingVenue = true
	require.NoError(t, f.db.Save(artist).Error)

	updated, err := f.artistService().UpdateArtist(context.Background(), artist.ID, ArtistPatch{Name: "Guns N Roses"})

	require.NoError(t, err)
	assert.Equal(t, "Guns N Roses", updated.Name)
	assert.True(t, updated.SeekingVenue)
}

func TestUpdateArtist_FailureRollsBack(t *testing.T) {
	f := newFixture(t)
	artist := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	repo := &failingArtistRepo{ArtistRepository: f.artists, saveErr: &pgconn.PgError{Code: "23502"}}
	svc := NewArtistService(repo, f.shows, f.publisher, fixedClock)

	_, err := svc.UpdateArtist(context.Background(), artist.ID, ArtistPatch{Name: "Renamed"})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, repository.ConstraintViolation, perr.Outcome)
	stored, err := f.artists.FindByID(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", stored.Name)
	assert.Empty(t, f.publisher.keys)
}

func TestDeleteArtist_RemovesShows(t *testing.T) {
	f := newFixture(t)
	venue := f.addVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := f.addArtist(t, "Guns N Petals", "San Francisco", "CA")
	other := f.addArtist(t, "Matt Quevedo", "New York", "NY")
	f.addShow(t, venue.ID, artist.ID, fixedNow)
	f.addShow(t, venue.ID, other.ID, fixedNow)

	err := f.artistService().DeleteArtist(context.Background(), artist.ID)

	require.NoError(t, err)
	n, err := f.shows.CountByArtist(context.Background(), artist.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.EqualValues(t, 1, f.countShows(t))
	_, err = f.venues.FindByID(context.Background(), venue.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"artist.deleted"}, f.publisher.keys)
}

func TestDeleteArtist_NotFound(t *testing.T) {
	f := newFixture(t)
	f.addArtist(t, "Guns N Petals", "San Francisco", "CA")

	err := f.artistService().DeleteArtist(context.Background(), 99)

	assert.ErrorIs(t, err, ErrArtistNotFound)
	count, _ := f.artists.Count(context.Background())
	assert.EqualValues(t, 1, count)
}
