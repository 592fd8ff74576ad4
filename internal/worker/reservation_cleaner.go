package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ReservationCleaner interface {
	ClearExpiredReservations(ctx context.Context) (int64, error)
}

// ExpiredReservationCleaner drops reservations that were never ticketed.
type ExpiredReservationCleaner struct {
	*periodic
}

func NewExpiredReservationCleaner(service ReservationCleaner, interval time.Duration, log *zap.Logger) *ExpiredReservationCleaner {
	return &ExpiredReservationCleaner{
		periodic: newPeriodic("reservation_cleaner", interval, false, service.ClearExpiredReservations, log),
	}
}
