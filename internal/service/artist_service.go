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

type ArtistService interface {
	ListArtists(ctx context.Context) ([]dto.ArtistListing, error)
	SearchArtists(ctx context.Context, term string) (dto.SearchResults, error)
	GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error)
	GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, id uint, patch ArtistPatch) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id uint) error
}

type artistService struct {
	artistRepo repository.ArtistRepository
	showRepo   repository.ShowRepository
	publisher  Publisher
	now        Clock
}

func NewArtistService(artistRepo repository.ArtistRepository, showRepo repository.ShowRepository, publisher Publisher, now Clock) ArtistService {
	return &artistService{
		artistRepo: artistRepo,
		showRepo:   showRepo,
		publisher:  publisher,
		now:        clockOrDefault(now),
	}
}

func (s *artistService) ListArtists(ctx context.Context) ([]dto.ArtistListing, error) {
	artists, err := s.artistRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	out := make([]dto.ArtistListing, len(artists))
	for i := range artists {
		out[i] = dto.NewArtistListing(&artists[i])
	}
	return out, nil
}

func (s *artistService) SearchArtists(ctx context.Context, term string) (dto.SearchResults, error) {
	artists, err := s.artistRepo.Search(ctx, term)
	if err != nil {
		return dto.SearchResults{}, fmt.Errorf("search artists: %w", err)
	}
	return dto.NewArtistSearchResults(artists, s.now()), nil
}

func (s *artistService) GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error) {
	artist, err := s.artistRepo.FindWithShows(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	detail := dto.NewArtistDetail(artist, s.now())
	return &detail, nil
}

func (s *artistService) GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error) {
	artist, err := s.artistRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	err := runTx(ctx, s.artistRepo.GetDB(), "create artist", func(tx *gorm.DB) error {
		return s.artistRepo.Create(ctx, tx, artist)
	})
	if err != nil {
		return err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "artist", Action: "created", ID: artist.ID, Name: artist.Name, OccurredAt: s.now()})
	return nil
}

func (s *artistService) UpdateArtist(ctx context.Context, id uint, patch ArtistPatch) (*models.Artist, error) {
	var result *models.Artist

	err := runTx(ctx, s.artistRepo.GetDB(), "update artist", func(tx *gorm.DB) error {
		artist, err := s.artistRepo.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}

		patch.Apply(artist)
		if err := s.artistRepo.Save(ctx, tx, artist); err != nil {
			return err
		}
		result = artist
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "artist", Action: "updated", ID: result.ID, Name: result.Name, OccurredAt: s.now()})
	return result, nil
}

// DeleteArtist removes the artist and every show they play.
func (s *artistService) DeleteArtist(ctx context.Context, id uint) error {
	var name string

	err := runTx(ctx, s.artistRepo.GetDB(), "delete artist", func(tx *gorm.DB) error {
		artist, err := s.artistRepo.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}

		if _, err := s.showRepo.DeleteByArtist(ctx, tx, id); err != nil {
			return err
		}
		if err := s.artistRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		name = artist.Name
		return nil
	})
	if err != nil {
		return err
	}

	publish(s.publisher, dto.ListingEvent{Entity: "artist", Action: "deleted", ID: id, Name: name, OccurredAt: s.now()})
	return nil
}
