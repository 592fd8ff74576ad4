package repository

import (
	"context"
	"fmt"

	"kino-booking/internal/data/entity"
	"kino-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	FindDetails(ctx context.Context, showID int64) (*entity.ShowDetails, error)
	FindDetailsByReservation(ctx context.Context, reservationID int64) (*entity.ShowDetails, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

const showDetailsSelect = `
	SELECT sh.show_id, sh.show_date, to_char(sh.show_time, 'HH24:MI'), sh.seat_price::float8,
	       scr.screen_id, scr.name, scr.seating_capacity, m.movie_id, m.title
	FROM shows sh
	JOIN screenings sc ON sc.screening_id = sh.screening_id
	JOIN screens scr ON scr.screen_id = sc.screen_id
	JOIN movies m ON m.movie_id = sc.movie_id
`

func (r *showRepository) FindDetails(ctx context.Context, showID int64) (*entity.ShowDetails, error) {
	query := showDetailsSelect + `WHERE sh.show_id = $1`

	show, err := r.scanDetails(database.Conn(ctx, r.db).QueryRow(ctx, query, showID))
	if err != nil {
		r.log.Error("Failed to find show details",
			zap.Error(err),
			zap.Int64("show_id", showID),
		)
		return nil, fmt.Errorf("find show %d: %w", showID, err)
	}

	return show, nil
}

func (r *showRepository) FindDetailsByReservation(ctx context.Context, reservationID int64) (*entity.ShowDetails, error) {
	query := showDetailsSelect + `
		JOIN reservations res ON res.show_id = sh.show_id
		WHERE res.reservation_id = $1
	`

	show, err := r.scanDetails(database.Conn(ctx, r.db).QueryRow(ctx, query, reservationID))
	if err != nil {
		r.log.Error("Failed to find show details by reservation",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("find show of reservation %d: %w", reservationID, err)
	}

	return show, nil
}

// scanDetails returns nil, nil when the row does not exist.
func (r *showRepository) scanDetails(row pgx.Row) (*entity.ShowDetails, error) {
	var show entity.ShowDetails
	err := row.Scan(
		&show.ShowID,
		&show.ShowDate,
		&show.ShowTime,
		&show.SeatPrice,
		&show.ScreenID,
		&show.ScreenName,
		&show.Capacity,
		&show.MovieID,
		&show.MovieTitle,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &show, nil
}
