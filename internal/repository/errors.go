// Package repository is the entity store for venues, artists and shows.
//
// Writes take the transaction handle explicitly so that a mutation and its
// dependent writes commit or roll back together. Failures are reduced to an
// Outcome with Classify so callers can branch on the kind of failure instead
// of driver-specific error values.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

type Outcome int

const (
	Success Outcome = iota
	ConstraintViolation
	ConnectionFailure
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case ConstraintViolation:
		return "constraint_violation"
	case ConnectionFailure:
		return "connection_failure"
	default:
		return "failure"
	}
}

// Classify maps an error returned by gorm or the postgres driver to an Outcome.
func Classify(err error) Outcome {
	if err == nil {
		return Success
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return ConstraintViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23":
			return ConstraintViolation
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08":
			return ConnectionFailure
		}
		return Failure
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return ConnectionFailure
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr) {
		return ConnectionFailure
	}

	return Failure
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
