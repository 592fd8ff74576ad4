package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/dto/request"
	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/database"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

// maxSeatsBody bounds the submission body. Any count the body can hold
// still reaches the coordinator and its LIMIT check.
const maxSeatsBody = 64 << 10

type SeatsHandler struct {
	service usecase.BookingService
	tx      database.Transactor
	link    response.Linker
	log     *zap.Logger
}

func NewSeatsHandler(service usecase.BookingService, tx database.Transactor, link response.Linker, log *zap.Logger) *SeatsHandler {
	return &SeatsHandler{
		service: service,
		tx:      tx,
		link:    link,
		log:     log.With(zap.String("handler", "seats")),
	}
}

// View renders the seat grid. With the default alert state.ID is a show id
// and a new reservation is opened; otherwise it is a reservation id.
func (h *SeatsHandler) View(w http.ResponseWriter, r *http.Request, state navigation.State) {
	alert := entity.SeatAlert(state.Aux)

	var load func(ctx context.Context) (*usecase.SeatsView, error)
	switch alert {
	case entity.AlertDefault:
		load = func(ctx context.Context) (*usecase.SeatsView, error) {
			return h.service.EnterSeats(ctx, state.ID)
		}
	case entity.AlertBack, entity.AlertBooked, entity.AlertEmpty, entity.AlertLimit:
		load = func(ctx context.Context) (*usecase.SeatsView, error) {
			return h.service.ViewSeats(ctx, state.ID, alert)
		}
	default:
		notFound(w)
		return
	}

	var view *usecase.SeatsView
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		view, err = load(ctx)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "view seats")
		return
	}

	h.render(w, view)
}

// Submit runs a seat submission. state.ID is the reservation id and
// state.Aux the screen id the grid was rendered for.
func (h *SeatsHandler) Submit(w http.ResponseWriter, r *http.Request, state navigation.State) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSeatsBody)

	var req request.SeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug("Invalid seats body", zap.Error(err))
		notFound(w)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Debug("Seats validation failed", zap.Any("errors", validationErrors))
		notFound(w)
		return
	}

	var result *usecase.SubmitResult
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		result, err = h.service.SubmitSeats(ctx, state.ID, int64(state.Aux), req.Seats)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "submit seats")
		return
	}

	switch result.Outcome {
	case usecase.OutcomeCommitted:
		next := navigation.State{Page: navigation.PageConfirm, ID: result.ReservationID}
		utils.ResponseSeeOther(w, "Seats reserved", h.link(next))
	case usecase.OutcomeBadData:
		notFound(w)
	default:
		h.render(w, result.View)
	}
}

func (h *SeatsHandler) render(w http.ResponseWriter, view *usecase.SeatsView) {
	message := view.Alert.Message()
	if message == "" {
		message = "Choose your seats"
	}

	utils.ResponseSuccess(w, message, response.SeatsToResponse(view.ReservationID, view.Show, view.Cells, view.Alert, h.link))
}
