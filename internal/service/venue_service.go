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

type VenueService interface {
	ListByArea(ctx context.Context) ([]dto.VenueArea, error)
	SearchVenues(ctx context.Context, term string) (dto.SearchResults, error)
	GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error)
	GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, id uint, patch VenuePatch) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id uint) error
}

type venueService struct {
	venueRepo repository.VenueRepository
	showRepo  repository.ShowRepository
	publisher Publisher
	now       Clock
}

func NewVenueService(venueRepo repository.VenueRepository, showRepo repository.ShowRepository, publisher Publisher, now Clock) VenueService {
	return &venueService{
		venueRepo: venueRepo,
		showRepo:  showRepo,
		publisher: publisher,
		now:       clockOrDefault(now),
	}
}

// ListByArea groups venues by exact (city, state). Each venue lands in the
// group of its own pair and nowhere else.
func (s *venueService) ListByArea(ctx context.Context) ([]dto.VenueArea, error) {
	venues, err := s.venueRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	areas, err := s.venueRepo.FindAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venue areas: %w", err)
	}

	now := s.now()
	index := make(map[repository.Area]int, len(areas))
	groups := make([]dto.VenueArea, 0, len(areas))
	for _, a := range areas {
		if _, dup := index[a]; dup {
			continue
		}
		index[a] = len(groups)
		groups = append(groups, dto.VenueArea{City: a.City, State: a.State, Venues: []dto.VenueListing{}})
	}

	for i := range venues {
		v := &venues[i]
		key := repository.Area{City: v.City, State: v.State}
		g, ok := index[key]
		if !ok {
			// created between the two reads
			g = len(groups)
			index[key] = g
			groups = append(groups, dto.VenueArea{City: v.City, State: v.State})
		}
		groups[g].Venues = append(groups[g].Venues, dto.NewVenueListing(v, now))
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Venues) > 0 {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *venueService) SearchVenues(ctx context.Context, term string) (dto.SearchResults, error) {
	venues, err := s.venueRepo.Search(ctx, term)
	if err != nil {
		return dto.SearchResults{}, fmt.Errorf("search venues: %w", err)
	}
	return dto.NewVenueSearchResults(venues, s.now()), nil
}

func (s *venueService) GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error) {
	venue, err := s.venueRepo.FindWithShows(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	detail := dto.NewVenueDetail(venue, s.now())
	return &detail, nil
}

func (s *venueService) GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	err := runTx(ctx, s.venueRepo.GetDB(), "create venue", func(tx *gorm.DB) error {
		return s.venueRepo.Create(ctx, tx, venue)
	})
	if err != nil {
		return err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "venue", Action: "created", ID: venue.ID, Name: venue.Name, OccurredAt: s.now()})
	return nil
}

// UpdateVenue applies patch to the stored venue identified by id.
func (s *venueService) UpdateVenue(ctx context.Context, id uint, patch VenuePatch) (*models.Venue, error) {
	var result *models.Venue

	err := runTx(ctx, s.venueRepo.GetDB(), "update venue", func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVenueNotFound
		}
		if err != nil {
			return err
		}

		patch.Apply(venue)
		if err := s.venueRepo.Save(ctx, tx, venue); err != nil {
			return err
		}
		result = venue
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "venue", Action: "updated", ID: result.ID, Name: result.Name, OccurredAt: s.now()})
	return result, nil
}

// DeleteVenue removes the venue and every show held there.
func (s *venueService) DeleteVenue(ctx context.Context, id uint) error {
	var name string

	err := runTx(ctx, s.venueRepo.GetDB(), "delete venue", func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVenueNotFound
		}
		if err != nil {
			return err
		}

		if _, err := s.showRepo.DeleteByVenue(ctx, tx, id); err != nil {
			return err
		}
		if err := s.venueRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		name = venue.Name
		return nil
	})
	if err != nil {
		return err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "venue", Action: "deleted", ID: id, Name: name, OccurredAt: s.now()})
	return nil
}
