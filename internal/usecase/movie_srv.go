package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/data/repository"
	"kino-booking/pkg/cache"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

const nowShowingKey = "movies:now-showing"

func movieKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

// MovieDetails is a movie with its upcoming screenings.
type MovieDetails struct {
	Movie      *entity.Movie
	Screenings []entity.Screening
}

type MovieService interface {
	NowShowing(ctx context.Context) ([]*entity.Movie, error)
	MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error)
}

type movieService struct {
	repo  *repository.Repository
	cache CatalogCache
	clock utils.Clock
	ttl   time.Duration
	log   *zap.Logger
}

// NewMovieService builds the catalog service. A nil cache reads straight
// from the database.
func NewMovieService(
	repo *repository.Repository,
	cache CatalogCache,
	clock utils.Clock,
	ttl time.Duration,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		cache: cache,
		clock: clock,
		ttl:   ttl,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) NowShowing(ctx context.Context) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	if s.cached(ctx, nowShowingKey, &movies) {
		return movies, nil
	}

	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.store(ctx, nowShowingKey, movies)
	return movies, nil
}

func (s *movieService) MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	movie := new(entity.Movie)
	if !s.cached(ctx, movieKey(movieID), movie) {
		found, err := s.repo.Movie.FindByID(ctx, movieID)
		if err != nil {
			return nil, fmt.Errorf("get movie %d: %w", movieID, err)
		}
		if found == nil {
			return nil, fmt.Errorf("movie %d: %w", movieID, repository.ErrNotFound)
		}
		movie = found
		s.store(ctx, movieKey(movieID), movie)
	}

	showtimes, err := s.repo.Movie.FindShowtimes(ctx, movieID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("get showtimes of movie %d: %w", movieID, err)
	}

	return &MovieDetails{
		Movie:      movie,
		Screenings: entity.GroupShowtimes(showtimes),
	}, nil
}

func (s *movieService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}

	err := s.cache.Get(ctx, key, dst)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("Failed to read catalog cache", zap.Error(err), zap.String("key", key))
	}
	return false
}

func (s *movieService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("Failed to write catalog cache", zap.Error(err), zap.String("key", key))
	}
}
