package adaptor

import (
	"net/http"

	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminHandler triggers the maintenance jobs on demand.
type AdminHandler struct {
	service usecase.MaintenanceService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.MaintenanceService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ClearReservations handles POST /kino/admin/reservations/clear
func (h *AdminHandler) ClearReservations(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.ClearExpiredReservations(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "clear reservations")
		return
	}

	utils.ResponseSuccess(w, "Expired reservations cleared", response.MaintenanceResponse{
		Job:  usecase.JobClearReservations,
		Rows: deleted,
	})
}

// ScheduleShows handles POST /kino/admin/shows/schedule
func (h *AdminHandler) ScheduleShows(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.ScheduleShows(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "schedule shows")
		return
	}

	utils.ResponseSuccess(w, "Shows scheduled", response.MaintenanceResponse{
		Job:  usecase.JobScheduleShows,
		Rows: created,
	})
}
