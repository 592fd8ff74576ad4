package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ShowScheduler interface {
	ScheduleShows(ctx context.Context) (int64, error)
}

// DailyShowScheduler keeps the show calendar filled. It runs on start so a
// fresh deployment has shows right away; the service makes repeated runs
// on one day no-ops.
type DailyShowScheduler struct {
	*periodic
}

func NewDailyShowScheduler(service ShowScheduler, interval time.Duration, log *zap.Logger) *DailyShowScheduler {
	return &DailyShowScheduler{
		periodic: newPeriodic("show_scheduler", interval, true, service.ScheduleShows, log),
	}
}
