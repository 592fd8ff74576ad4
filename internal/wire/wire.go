// internal/wire/wire.go
package wire

import (
	"kino-booking/internal/adaptor"
	"kino-booking/internal/data/repository"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/middleware"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the router and the services the workers share with it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(
	repo *repository.Repository,
	deps usecase.Dependencies,
	codec *navigation.Codec,
	checks map[string]adaptor.HealthCheck,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, deps.Tx, codec, checks, config, logger)

	router := setupRouter(handler, deps, codec, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps usecase.Dependencies,
	codec *navigation.Codec,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.CORS())

	wireKino(r, handler.Kino, codec, config)
	wireAdmin(r, handler.Admin, config, logger)

	r.Get("/health", handler.Health.Check)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
