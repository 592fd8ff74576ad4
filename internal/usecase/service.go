package usecase

import (
	"context"
	"time"

	"kino-booking/internal/data/repository"
	"kino-booking/pkg/database"
	"kino-booking/pkg/metrics"
	"kino-booking/pkg/mq"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

type IDGenerator interface {
	Next() int64
}

// CatalogCache stores JSON snapshots of catalog reads.
type CatalogCache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Locker runs fn while holding a cluster-wide lock on key.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type TicketPublisher interface {
	Topic() string
	PublishTicketIssued(ctx context.Context, event mq.TicketIssuedEvent) error
}

// Dependencies are the collaborators shared by the services. Cache, Locker
// and Publisher are optional; leave them nil to run without Redis or AMQP.
type Dependencies struct {
	IDs       IDGenerator
	Clock     utils.Clock
	Tx        database.Transactor
	Cache     CatalogCache
	Locker    Locker
	Publisher TicketPublisher
	Metrics   *metrics.Metrics
}

type Service struct {
	Movie       MovieService
	Booking     BookingService
	Confirm     ConfirmService
	Maintenance MaintenanceService
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	if deps.Clock == nil {
		deps.Clock = utils.SystemClock
	}

	return &Service{
		Movie:       NewMovieService(repo, deps.Cache, deps.Clock, config.Redis.CacheTTL, log),
		Booking:     NewBookingService(repo, deps.IDs, deps.Clock, deps.Metrics, log),
		Confirm:     NewConfirmService(repo, deps.Clock, deps.Publisher, deps.Metrics, log),
		Maintenance: NewMaintenanceService(repo, deps.Tx, deps.Locker, deps.Clock, deps.Metrics, config.Worker, log),
	}
}
