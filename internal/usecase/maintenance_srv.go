package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kino-booking/internal/data/repository"
	"kino-booking/pkg/cache"
	"kino-booking/pkg/database"
	"kino-booking/pkg/metrics"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	JobClearReservations = "clear_reservations"
	JobScheduleShows     = "schedule_shows"

	scheduleLockKey = "maintenance:" + JobScheduleShows
	scheduleLockTTL = time.Minute
)

// MaintenanceService keeps the tables tidy. Both jobs manage their own
// transaction.
type MaintenanceService interface {
	// ClearExpiredReservations deletes unticketed reservations older than
	// the configured expiry.
	ClearExpiredReservations(ctx context.Context) (int64, error)

	// ScheduleShows creates the shows of the day DaysAhead out. It runs at
	// most once per day; later calls return 0.
	ScheduleShows(ctx context.Context) (int64, error)
}

type maintenanceService struct {
	repo    *repository.Repository
	tx      database.Transactor
	locker  Locker
	clock   utils.Clock
	metrics *metrics.Metrics
	config  utils.WorkerConfig
	log     *zap.Logger
}

func NewMaintenanceService(
	repo *repository.Repository,
	tx database.Transactor,
	locker Locker,
	clock utils.Clock,
	metrics *metrics.Metrics,
	config utils.WorkerConfig,
	log *zap.Logger,
) MaintenanceService {
	return &maintenanceService{
		repo:    repo,
		tx:      tx,
		locker:  locker,
		clock:   clock,
		metrics: metrics,
		config:  config,
		log:     log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) ClearExpiredReservations(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.config.ExpireAfter)

	var deleted int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Reservation.DeleteExpired(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear expired reservations: %w", err)
	}

	s.metrics.ObserveMaintenance(JobClearReservations, deleted)
	if deleted > 0 {
		s.log.Info("Expired reservations cleared",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}

	return deleted, nil
}

func (s *maintenanceService) ScheduleShows(ctx context.Context) (int64, error) {
	today := s.clock.Now()
	day := today.AddDate(0, 0, s.config.DaysAhead)

	var created int64
	run := func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			first, err := s.repo.Maintenance.MarkRun(ctx, JobScheduleShows, today)
			if err != nil {
				return err
			}
			if !first {
				return nil
			}

			created, err = s.repo.Maintenance.CreateShows(ctx, day)
			return err
		})
	}

	var err error
	if s.locker == nil {
		err = run(ctx)
	} else {
		err = s.locker.WithLock(ctx, scheduleLockKey, scheduleLockTTL, run)
	}

	if errors.Is(err, cache.ErrLockNotAcquired) {
		s.log.Debug("Show scheduling running elsewhere")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("schedule shows: %w", err)
	}

	s.metrics.ObserveMaintenance(JobScheduleShows, created)
	if created > 0 {
		s.log.Info("Shows scheduled",
			zap.Int64("created", created),
			zap.Time("show_date", day),
		)
	}

	return created, nil
}
