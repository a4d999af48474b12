package repository

import (
	"context"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Area is one distinct (city, state) pair.
type Area struct {
	City  string
	State string
}

type VenueRepository interface {
	FindAll(ctx context.Context) ([]models.Venue, error)
	FindAreas(ctx context.Context) ([]Area, error)
	Search(ctx context.Context, term string) ([]models.Venue, error)
	FindByID(ctx context.Context, id uint) (*models.Venue, error)
	FindWithShows(ctx context.Context, id uint) (*models.Venue, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	Save(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context) (int64, error)
	GetDB() *gorm.DB
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every venue with its shows attached, ordered by id.
func (r *venueRepository) FindAll(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).Preload("Shows").Order("id ASC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) FindAreas(ctx context.Context) ([]Area, error) {
	var areas []Area
	err := r.db.WithContext(ctx).
		Model(&models.Venue{}).
		Distinct("city", "state").
		Order("state ASC, city ASC").
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// Search matches term case-insensitively as a substring of name, city or state.
// An empty term matches every venue.
func (r *venueRepository) Search(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	pattern := likePattern(term)
	err := r.db.WithContext(ctx).
		Preload("Shows").
		Where(substringMatch, pattern, pattern, pattern).
		Order("id ASC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

// FindWithShows loads the venue together with its shows (oldest first) and
// the artist of each show.
func (r *venueRepository) FindWithShows(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC") }).
		Preload("Shows.Artist").
		First(&venue, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

// FindByIDForUpdate locks the venue row within tx.
func (r *venueRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&venue, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

func (r *venueRepository) Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(venue).Error
}

func (r *venueRepository) Save(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(venue).Error
}

func (r *venueRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Venue{}, id).Error
}

func (r *venueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Venue{}).Count(&count).Error
	return count, err
}
