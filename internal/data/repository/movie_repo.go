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

type MovieRepository interface {
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)

	// FindShowtimes lists shows of the movie starting after from, ordered by
	// date, screen and time.
	FindShowtimes(ctx context.Context, movieID int64, from time.Time) ([]*entity.MovieShowtime, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT movie_id, title, synopsis, runtime, release_date
		FROM movies
		ORDER BY movie_id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find movies", zap.Error(err))
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Synopsis,
			&movie.Runtime,
			&movie.ReleaseDate,
		); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, rows.Err()
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT movie_id, title, synopsis, runtime, release_date
		FROM movies
		WHERE movie_id = $1
	`

	var movie entity.Movie
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Synopsis,
		&movie.Runtime,
		&movie.ReleaseDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %d: %w", id, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindShowtimes(ctx context.Context, movieID int64, from time.Time) ([]*entity.MovieShowtime, error) {
	query := `
		SELECT sh.show_id, scr.screen_id, scr.name, sh.show_date, to_char(sh.show_time, 'HH24:MI')
		FROM shows sh
		JOIN screenings sc ON sc.screening_id = sh.screening_id
		JOIN screens scr ON scr.screen_id = sc.screen_id
		WHERE sc.movie_id = $1
		  AND sh.show_date + sh.show_time > $2::timestamp
		ORDER BY sh.show_date, scr.screen_id, sh.show_time
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, movieID, from)
	if err != nil {
		r.log.Error("Failed to find showtimes",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find showtimes of movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var showtimes []*entity.MovieShowtime
	for rows.Next() {
		var st entity.MovieShowtime
		if err := rows.Scan(
			&st.ShowID,
			&st.ScreenID,
			&st.ScreenName,
			&st.ShowDate,
			&st.ShowTime,
		); err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &st)
	}

	return showtimes, rows.Err()
}
