package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/listing-service/pkg/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// newTestDB opens a private in-memory database. A single connection keeps
// every query, including those inside transactions, on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type recordingPublisher struct {
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, payload)
	return p.err
}

type fixture struct {
	db        *gorm.DB
	venues    repository.VenueRepository
	artists   repository.ArtistRepository
	shows     repository.ShowRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:        db,
		venues:    repository.NewVenueRepository(db),
		artists:   repository.NewArtistRepository(db),
		shows:     repository.NewShowRepository(db),
		publisher: &recordingPublisher{},
	}
}

func (f *fixture) venueService() VenueService {
	return NewVenueService(f.venues, f.shows, f.publisher, fixedClock)
}

func (f *fixture) artistService() ArtistService {
	return NewArtistService(f.artists, f.shows, f.publisher, fixedClock)
}

func (f *fixture) showService() ShowService {
	return NewShowService(f.shows, f.venues, f.artists, f.publisher, fixedClock)
}

func (f *fixture) addVenue(t *testing.T, name, city, state string) *models.Venue {
	t.Helper()
	v := &models.Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1015 Folsom Street",
		Genres:  []string{"Jazz"},
	}
	require.NoError(t, f.db.Create(v).Error)
	return v
}

func (f *fixture) addArtist(t *testing.T, name, city, state string) *models.Artist {
	t.Helper()
	a := &models.Artist{
		Name:   name,
		City:   city,
		State:  state,
		Genres: []string{"Rock n Roll"},
	}
	require.NoError(t, f.db.Create(a).Error)
	return a
}

func (f *fixture) addShow(t *testing.T, venueID, artistID uint, start time.Time) *models.Show {
	t.Helper()
	s := &models.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}
	require.NoError(t, f.db.Create(s).Error)
	return s
}

func (f *fixture) countShows(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Show{}).Count(&n).Error)
	return n
}

// failingVenueRepo injects errors into selected writes.
type failingVenueRepo struct {
	repository.VenueRepository
	createErr error
	deleteErr error
}

func (r *failingVenueRepo) Create(ctx context.Context, tx *gorm.DB, v *models.Venue) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.VenueRepository.Create(ctx, tx, v)
}

func (r *failingVenueRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.VenueRepository.Delete(ctx, tx, id)
}

type failingArtistRepo struct {
	repository.ArtistRepository
	saveErr error
}

func (r *failingArtistRepo) Save(ctx context.Context, tx *gorm.DB, a *models.Artist) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.ArtistRepository.Save(ctx, tx, a)
}

type failingShowRepo struct {
	repository.ShowRepository
	createErr error
}

func (r *failingShowRepo) Create(ctx context.Context, tx *gorm.DB, s *models.Show) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.ShowRepository.Create(ctx, tx, s)
}
