package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by services when a lookup by id yields no
	// row. Repositories themselves return nil, nil.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSelection means the database rejected staged seats through
	// an integrity constraint: unknown seat, seat of another screen, or
	// unknown reservation.
	ErrInvalidSelection = errors.New("invalid seat selection")

	// ErrSeatTaken means promotion hit the one-selection-per-seat-and-show
	// constraint.
	ErrSeatTaken = errors.New("seat already taken")
)

const (
	uniqueViolation         = "23505"
	integrityViolationClass = "23"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass)
}
