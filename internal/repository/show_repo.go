package repository

import (
	"context"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShowRepository interface {
	FindAll(ctx context.Context) ([]models.Show, error)
	Create(ctx context.Context, tx *gorm.DB, show *models.Show) error
	DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID uint) (int64, error)
	DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID uint) (int64, error)
	CountByVenue(ctx context.Context, venueID uint) (int64, error)
	CountByArtist(ctx context.Context, artistID uint) (int64, error)
	GetDB() *gorm.DB
}

type showRepository struct {
	db *gorm.DB
}

func NewShowRepository(db *gorm.DB) ShowRepository {
	return &showRepository{db: db}
}

func (r *showRepository) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every show, latest first, with its venue and artist.
func (r *showRepository) FindAll(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Artist").
		Order("start_time DESC, id DESC").
		Find(&shows).Error
	if err != nil {
		return nil, err
	}
	return shows, nil
}

func (r *showRepository) Create(ctx context.Context, tx *gorm.DB, show *models.Show) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(show).Error
}

func (r *showRepository) DeleteByVenue(ctx context.Context, tx *gorm.DB, venueID uint) (int64, error) {
	result := tx.WithContext(ctx).Where("venue_id = ?", venueID).Delete(&models.Show{})
	return result.RowsAffected, result.Error
}

func (r *showRepository) DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID uint) (int64, error) {
	result := tx.WithContext(ctx).Where("artist_id = ?", artistID).Delete(&models.Show{})
	return result.RowsAffected, result.Error
}

func (r *showRepository) CountByVenue(ctx context.Context, venueID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Show{}).Where("venue_id = ?", venueID).Count(&count).Error
	return count, err
}

func (r *showRepository) CountByArtist(ctx context.Context, artistID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Show{}).Where("artist_id = ?", artistID).Count(&count).Error
	return count, err
}
