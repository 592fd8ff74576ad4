package wire

import (
	"kino-booking/internal/adaptor"
	"kino-booking/pkg/middleware"
	"kino-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route(config.Navigation.Path+"/admin", func(r chi.Router) {
		r.Use(middleware.AdminToken(config.App.AdminToken, log))

		// POST /kino/admin/reservations/clear - drop expired reservations now
		r.Post("/reservations/clear", adminHandler.ClearReservations)

		// POST /kino/admin/shows/schedule - create upcoming shows now
		r.Post("/shows/schedule", adminHandler.ScheduleShows)
	})
}
