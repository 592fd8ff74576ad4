package repository

import (
	"context"
	"fmt"

	"kino-booking/internal/data/entity"
	"kino-booking/pkg/database"

	"go.uber.org/zap"
)

// SeatGridRepository projects a screen's seat layout with occupancy as seen
// by one reservation. It never writes.
type SeatGridRepository interface {
	// Query returns every slot of the grid in row-major order. It returns
	// an empty grid for an unknown reservation.
	Query(ctx context.Context, reservationID int64) ([]entity.SeatCell, error)
}

type seatGridRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatGridRepository(db database.PgxIface, log *zap.Logger) SeatGridRepository {
	return &seatGridRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_grid")),
	}
}

func (r *seatGridRepository) Query(ctx context.Context, reservationID int64) ([]entity.SeatCell, error) {
	query := `
		WITH main AS (
			SELECT res.reservation_id, res.show_id, sc.screen_id, scr.grid_rows, scr.grid_cols
			FROM reservations res
			JOIN shows sh ON sh.show_id = res.show_id
			JOIN screenings sc ON sc.screening_id = sh.screening_id
			JOIN screens scr ON scr.screen_id = sc.screen_id
			WHERE res.reservation_id = $1
		),
		grid AS (
			SELECT gy, gx
			FROM main,
			     generate_series(0, main.grid_rows - 1) AS gy,
			     generate_series(0, main.grid_cols - 1) AS gx
		),
		self AS (
			SELECT sel.seat_id
			FROM selections sel
			WHERE sel.reservation_id = $1
		),
		others AS (
			SELECT sel.seat_id
			FROM main
			JOIN selections sel ON sel.show_id = main.show_id
			WHERE sel.reservation_id <> main.reservation_id
		)
		SELECT grid.gy,
		       grid.gx,
		       COALESCE(s.seat_id, -1),
		       COALESCE(s.seat_row || s.seat_col::text, ''),
		       CASE
		           WHEN s.seat_id IS NULL THEN 3
		           WHEN self.seat_id IS NOT NULL THEN 1
		           WHEN others.seat_id IS NOT NULL THEN 2
		           ELSE 0
		       END,
		       self.seat_id IS NOT NULL AND others.seat_id IS NOT NULL
		FROM main
		CROSS JOIN grid
		LEFT JOIN seats s ON s.screen_id = main.screen_id AND s.grid_y = grid.gy AND s.grid_x = grid.gx
		LEFT JOIN self ON self.seat_id = s.seat_id
		LEFT JOIN others ON others.seat_id = s.seat_id
		ORDER BY grid.gy, grid.gx
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to query seat grid",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("query seat grid of reservation %d: %w", reservationID, err)
	}
	defer rows.Close()

	var cells []entity.SeatCell
	for rows.Next() {
		var (
			cell     entity.SeatCell
			state    int
			conflict bool
		)
		if err := rows.Scan(&cell.GridY, &cell.GridX, &cell.SeatID, &cell.Name, &state, &conflict); err != nil {
			r.log.Error("Failed to scan seat grid row", zap.Error(err))
			return nil, fmt.Errorf("scan seat grid row: %w", err)
		}
		cell.State = entity.SeatState(state)

		if conflict {
			// self wins, but the seat is held twice for one show
			r.log.Error("Seat held by two reservations of the same show",
				zap.Int64("reservation_id", reservationID),
				zap.Int64("seat_id", cell.SeatID),
			)
		}

		cells = append(cells, cell)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read seat grid: %w", err)
	}

	return cells, nil
}
