package repository

import (
	"context"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtistRepository interface {
	FindAll(ctx context.Context) ([]models.Artist, error)
	Search(ctx context.Context, term string) ([]models.Artist, error)
	FindByID(ctx context.Context, id uint) (*models.Artist, error)
	FindWithShows(ctx context.Context, id uint) (*models.Artist, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error)
	Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	Save(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context) (int64, error)
	GetDB() *gorm.DB
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *artistRepository) FindAll(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *artistRepository) Search(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	pattern := likePattern(term)
	err := r.db.WithContext(ctx).
		Preload("Shows").
		Where(substringMatch, pattern, pattern, pattern).
		Order("id ASC").
		Find(&artists).Error
	if err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *artistRepository) FindByID(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := r.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

func (r *artistRepository) FindWithShows(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC") }).
		Preload("Shows.Venue").
		First(&artist, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

func (r *artistRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&artist, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

func (r *artistRepository) Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(artist).Error
}

func (r *artistRepository) Save(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Save(artist).Error
}

func (r *artistRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Artist{}, id).Error
}

func (r *artistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Artist{}).Count(&count).Error
	return count, err
}
