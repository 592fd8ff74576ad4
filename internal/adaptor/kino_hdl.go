package adaptor

import (
	"net/http"

	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

// KinoHandler serves every page of the booking flow from one path. The
// page comes from the navigation token the middleware decoded.
type KinoHandler struct {
	movie  *MovieHandler
	seats  *SeatsHandler
	ticket *TicketHandler
	log    *zap.Logger
}

func NewKinoHandler(movie *MovieHandler, seats *SeatsHandler, ticket *TicketHandler, log *zap.Logger) *KinoHandler {
	return &KinoHandler{
		movie:  movie,
		seats:  seats,
		ticket: ticket,
		log:    log.With(zap.String("handler", "kino")),
	}
}

// Get handles GET /kino
func (h *KinoHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := utils.GetNavigationFromContext(r.Context())

	switch state.Page {
	case navigation.PageNowShowing:
		h.movie.NowShowing(w, r)
	case navigation.PageMovie:
		h.movie.Details(w, r, state)
	case navigation.PageSeats:
		h.seats.View(w, r, state)
	case navigation.PageConfirm:
		h.ticket.Confirmation(w, r, state)
	case navigation.PageTicket:
		h.ticket.Ticket(w, r, state)
	default:
		h.log.Debug("Bad navigation token", zap.String("query", r.URL.RawQuery))
		notFound(w)
	}
}

// Post handles POST /kino
func (h *KinoHandler) Post(w http.ResponseWriter, r *http.Request) {
	state := utils.GetNavigationFromContext(r.Context())

	switch state.Page {
	case navigation.PageSeats:
		h.seats.Submit(w, r, state)
	case navigation.PageConfirm:
		h.ticket.Confirm(w, r, state)
	case navigation.PageBadRequest:
		h.log.Debug("Bad navigation token", zap.String("query", r.URL.RawQuery))
		notFound(w)
	default:
		utils.ResponseMethodNotAllowed(w, "Method not allowed")
	}
}
