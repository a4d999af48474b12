package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/models"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/repository"
	"gorm.io/gorm"
)

type ShowService interface {
	ListShows(ctx context.Context) ([]dto.ShowListing, error)
	CreateShow(ctx context.Context, show *models.Show) error
}

type showService struct {
	showRepo   repository.ShowRepository
	venueRepo  repository.VenueRepository
	artistRepo repository.ArtistRepository
	publisher  Publisher
	now        Clock
}

func NewShowService(showRepo repository.ShowRepository, venueRepo repository.VenueRepository, artistRepo repository.ArtistRepository, publisher Publisher, now Clock) ShowService {
	return &showService{
		showRepo:   showRepo,
		venueRepo:  venueRepo,
		artistRepo: artistRepo,
		publisher:  publisher,
		now:        clockOrDefault(now),
	}
}

func (s *showService) ListShows(ctx context.Context) ([]dto.ShowListing, error) {
	shows, err := s.showRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	out := make([]dto.ShowListing, len(shows))
	for i := range shows {
		out[i] = dto.NewShowListing(&shows[i])
	}
	return out, nil
}

// CreateShow persists show after checking, under row locks, that both its
// venue and artist exist.
func (s *showService) CreateShow(ctx context.Context, show *models.Show) error {
	err := runTx(ctx, s.showRepo.GetDB(), "create show", func(tx *gorm.DB) error {
		if _, err := s.venueRepo.FindByIDForUpdate(ctx, tx, show.VenueID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrVenueNotFound
			}
			return err
		}
		if _, err := s.artistRepo.FindByIDForUpdate(ctx, tx, show.ArtistID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrArtistNotFound
			}
			return err
		}
		return s.showRepo.Create(ctx, tx, show)
	})
	if err != nil {
		return err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "show", Action: "created", ID: show.ID, OccurredAt: s.now()})
	return nil
}
