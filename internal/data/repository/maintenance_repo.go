package repository

import (
	"context"
	"fmt"
	"time"

	"kino-booking/pkg/database"

	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	// MarkRun records that job ran on day. It returns false when the job
	// was already recorded for that day.
	MarkRun(ctx context.Context, job string, day time.Time) (bool, error)

	// CreateShows inserts a show on day for every screening time. Existing
	// shows are kept.
	CreateShows(ctx context.Context, day time.Time) (int64, error)
}

type maintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaintenanceRepository(db database.PgxIface, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

func (r *maintenanceRepository) MarkRun(ctx context.Context, job string, day time.Time) (bool, error) {
	query := `
		INSERT INTO maintenance_log (job, run_date)
		VALUES ($1, $2::date)
		ON CONFLICT (job, run_date) DO NOTHING
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, job, day)
	if err != nil {
		r.log.Error("Failed to record maintenance run",
			zap.Error(err),
			zap.String("job", job),
		)
		return false, fmt.Errorf("record %s run: %w", job, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *maintenanceRepository) CreateShows(ctx context.Context, day time.Time) (int64, error) {
	query := `
		INSERT INTO shows (screening_id, show_date, show_time, seat_price)
		SELECT st.screening_id, $1::date, st.screening_time, st.seat_price
		FROM screening_times st
		ON CONFLICT (screening_id, show_date, show_time) DO NOTHING
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, day)
	if err != nil {
		r.log.Error("Failed to create shows",
			zap.Error(err),
			zap.Time("day", day),
		)
		return 0, fmt.Errorf("create shows on %s: %w", day.Format(time.DateOnly), err)
	}

	return result.RowsAffected(), nil
}
