package adaptor

import (
	"context"
	"net/http"
	"time"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/database"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

const announceTimeout = 5 * time.Second

type TicketHandler struct {
	service usecase.ConfirmService
	tx      database.Transactor
	link    response.Linker
	log     *zap.Logger
}

func NewTicketHandler(service usecase.ConfirmService, tx database.Transactor, link response.Linker, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		tx:      tx,
		link:    link,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// Confirmation shows the reservation before purchase.
func (h *TicketHandler) Confirmation(w http.ResponseWriter, r *http.Request, state navigation.State) {
	var confirmation *entity.Confirmation
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		confirmation, err = h.service.GetConfirmation(ctx, state.ID)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get confirmation")
		return
	}

	utils.ResponseSuccess(w, "Confirm your booking", response.ConfirmationToResponse(confirmation, h.link))
}

// Confirm issues the ticket and announces it once the transaction is
// committed.
func (h *TicketHandler) Confirm(w http.ResponseWriter, r *http.Request, state navigation.State) {
	var ticket *entity.Ticket
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		ticket, err = h.service.IssueTicket(ctx, state.ID)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "issue ticket")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), announceTimeout)
	defer cancel()
	h.service.AnnounceTicket(ctx, ticket)

	next := navigation.State{Page: navigation.PageTicket, ID: ticket.ReservationID}
	utils.ResponseSeeOther(w, "Ticket issued", h.link(next))
}

func (h *TicketHandler) Ticket(w http.ResponseWriter, r *http.Request, state navigation.State) {
	var ticket *entity.Ticket
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		ticket, err = h.service.GetTicket(ctx, state.ID)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "Your ticket", response.TicketToResponse(ticket, h.link))
}
