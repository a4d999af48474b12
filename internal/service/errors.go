package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound  = errors.New("venue not found")
	ErrArtistNotFound = errors.New("artist not found")
)

// PersistenceError reports a rolled back mutation.
type PersistenceError struct {
	Op      string
	Outcome repository.Outcome
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Outcome, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Publisher receives listing change notifications. A nil Publisher disables
// publishing.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Clock returns the current time; detail pages and listings compare show
// start times against it.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// runTx runs fn inside a transaction. Not-found sentinels pass through
// unchanged; every other failure has already been rolled back by gorm and is
// returned as a *PersistenceError.
func runTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrVenueNotFound) || errors.Is(err, ErrArtistNotFound) {
		return err
	}

	outcome := repository.Classify(err)
	log.Error().Err(err).Str("op", op).Str("outcome", outcome.String()).Msg("transaction rolled back")
	return &PersistenceError{Op: op, Outcome: outcome, Err: err}
}

func publish(p Publisher, evt dto.ListingEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(evt.RoutingKey(), evt); err != nil {
		log.Warn().Err(err).Str("routing_key", evt.RoutingKey()).Uint("id", evt.ID).Msg("publish listing event")
	}
}
