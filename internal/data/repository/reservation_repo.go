package repository

import (
	"context"
	"fmt"
	"time"

	"kino-booking/internal/data/entity"
	"kino-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id int64) (*entity.Reservation, error)

	// IssueTicket stamps the ticket time on an unticketed reservation that
	// holds at least one seat. It reports whether a row was updated.
	IssueTicket(ctx context.Context, id int64, at time.Time) (bool, error)

	// DeleteExpired removes unticketed reservations created before cutoff
	// together with their staged and selected seats.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (reservation_id, show_id, reservation_time)
		VALUES ($1, $2, $3)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		reservation.ID,
		reservation.ShowID,
		reservation.ReservationTime,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.Int64("reservation_id", reservation.ID),
			zap.Int64("show_id", reservation.ShowID),
		)
		return fmt.Errorf("create reservation %d: %w", reservation.ID, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	query := `
		SELECT reservation_id, show_id, reservation_time, ticket_time
		FROM reservations
		WHERE reservation_id = $1
	`

	var reservation entity.Reservation
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.ShowID,
		&reservation.ReservationTime,
		&reservation.TicketTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return nil, fmt.Errorf("find reservation %d: %w", id, err)
	}

	return &reservation, nil
}

func (r *reservationRepository) IssueTicket(ctx context.Context, id int64, at time.Time) (bool, error) {
	query := `
		UPDATE reservations
		SET ticket_time = $2
		WHERE reservation_id = $1
		  AND ticket_time IS NULL
		  AND EXISTS (SELECT 1 FROM selections WHERE reservation_id = $1)
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to issue ticket",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return false, fmt.Errorf("issue ticket for reservation %d: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *reservationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM reservations
		WHERE ticket_time IS NULL
		  AND reservation_time < $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to delete expired reservations",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return 0, fmt.Errorf("delete reservations before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	return result.RowsAffected(), nil
}
