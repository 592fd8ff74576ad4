package repository

import (
	"context"
	"fmt"

	"kino-booking/internal/data/entity"
	"kino-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SelectionRepository owns the staging table and the durable selections.
// Every statement is scoped to one reservation.
type SelectionRepository interface {
	ClearStaging(ctx context.Context, reservationID int64) error

	// Stage inserts one staging row per seat as a single batch. Any
	// integrity violation rejects the whole batch with ErrInvalidSelection
	// and leaves no rows behind.
	Stage(ctx context.Context, reservationID, screenID int64, seatIDs []int64) error

	// ClearSelection drops the seats held by the reservation unless it has
	// already been ticketed.
	ClearSelection(ctx context.Context, reservationID int64) error

	// Promote copies staged seats that belong to the reservation's show into
	// selections and returns how many were inserted. A seat already held by
	// another reservation aborts the statement with ErrSeatTaken and nothing
	// is inserted.
	Promote(ctx context.Context, reservationID int64) (int64, error)

	FindItems(ctx context.Context, reservationID int64) ([]entity.SelectionItem, error)
}

type selectionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSelectionRepository(db database.PgxIface, log *zap.Logger) SelectionRepository {
	return &selectionRepository{
		db:  db,
		log: log.With(zap.String("repository", "selection")),
	}
}

func (r *selectionRepository) ClearStaging(ctx context.Context, reservationID int64) error {
	query := `DELETE FROM staging_selections WHERE reservation_id = $1`

	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, reservationID); err != nil {
		r.log.Error("Failed to clear staging",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return fmt.Errorf("clear staging of reservation %d: %w", reservationID, err)
	}

	return nil
}

func (r *selectionRepository) Stage(ctx context.Context, reservationID, screenID int64, seatIDs []int64) error {
	query := `
		INSERT INTO staging_selections (reservation_id, seat_id, screen_id)
		VALUES ($1, $2, $3)
	`

	batch := &pgx.Batch{}
	for _, seatID := range seatIDs {
		batch.Queue(query, reservationID, seatID, screenID)
	}

	err := database.Savepoint(ctx, r.db, func(q database.Querier) error {
		results := q.SendBatch(ctx, batch)
		for range seatIDs {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return err
			}
		}
		return results.Close()
	})

	if err != nil {
		if isIntegrityViolation(err) {
			r.log.Info("Staged seats rejected",
				zap.Error(err),
				zap.Int64("reservation_id", reservationID),
				zap.Int64("screen_id", screenID),
				zap.Int64s("seat_ids", seatIDs),
			)
			return fmt.Errorf("stage seats of reservation %d: %w", reservationID, ErrInvalidSelection)
		}

		r.log.Error("Failed to stage seats",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return fmt.Errorf("stage seats of reservation %d: %w", reservationID, err)
	}

	return nil
}

func (r *selectionRepository) ClearSelection(ctx context.Context, reservationID int64) error {
	query := `
		DELETE FROM selections
		WHERE reservation_id IN (
			SELECT reservation_id
			FROM reservations
			WHERE reservation_id = $1
			  AND ticket_time IS NULL
		)
	`

	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, reservationID); err != nil {
		r.log.Error("Failed to clear selection",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return fmt.Errorf("clear selection of reservation %d: %w", reservationID, err)
	}

	return nil
}

func (r *selectionRepository) Promote(ctx context.Context, reservationID int64) (int64, error) {
	query := `
		INSERT INTO selections (reservation_id, seat_id, show_id)
		SELECT res.reservation_id, st.seat_id, res.show_id
		FROM staging_selections st
		JOIN reservations res ON res.reservation_id = st.reservation_id
		JOIN shows sh ON sh.show_id = res.show_id
		JOIN screenings sc ON sc.screening_id = sh.screening_id
		JOIN seats s ON s.seat_id = st.seat_id AND s.screen_id = sc.screen_id
		WHERE st.reservation_id = $1
		  AND res.ticket_time IS NULL
	`

	var inserted int64
	err := database.Savepoint(ctx, r.db, func(q database.Querier) error {
		result, err := q.Exec(ctx, query, reservationID)
		if err != nil {
			return err
		}
		inserted = result.RowsAffected()
		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			r.log.Info("Promotion hit a taken seat",
				zap.Error(err),
				zap.Int64("reservation_id", reservationID),
			)
			return 0, fmt.Errorf("promote reservation %d: %w", reservationID, ErrSeatTaken)
		}

		r.log.Error("Failed to promote selection",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return 0, fmt.Errorf("promote reservation %d: %w", reservationID, err)
	}

	return inserted, nil
}

func (r *selectionRepository) FindItems(ctx context.Context, reservationID int64) ([]entity.SelectionItem, error) {
	query := `
		SELECT s.seat_id, s.seat_row || s.seat_col::text, sh.seat_price::float8
		FROM selections sel
		JOIN seats s ON s.seat_id = sel.seat_id
		JOIN shows sh ON sh.show_id = sel.show_id
		WHERE sel.reservation_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find selection items",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("find selection items of reservation %d: %w", reservationID, err)
	}
	defer rows.Close()

	var items []entity.SelectionItem
	for rows.Next() {
		var item entity.SelectionItem
		if err := rows.Scan(&item.SeatID, &item.SeatName, &item.Price); err != nil {
			r.log.Error("Failed to scan selection item row", zap.Error(err))
			return nil, fmt.Errorf("scan selection item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read selection items: %w", err)
	}

	return items, nil
}
