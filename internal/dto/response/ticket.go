package response

import (
	"time"

	"kino-booking/internal/data/entity"
	"kino-booking/pkg/navigation"
)

type ConfirmResponse struct {
	Page    string             `json:"page"`
	Show    ShowResponse       `json:"show"`
	Seats   []SeatItemResponse `json:"seats"`
	Total   float64            `json:"total"`
	Confirm string             `json:"confirm"`
	Back    string             `json:"back"`
}

type TicketResponse struct {
	Page          string             `json:"page"`
	ReservationID int64              `json:"reservation_id"`
	PurchaseTime  time.Time          `json:"purchase_time"`
	Show          ShowResponse       `json:"show"`
	Seats         []SeatItemResponse `json:"seats"`
	Total         float64            `json:"total"`
	Home          string             `json:"home"`
}

func ConfirmationToResponse(c *entity.Confirmation, link Linker) ConfirmResponse {
	confirm := navigation.State{Page: navigation.PageConfirm, ID: c.ReservationID}
	back := navigation.State{Page: navigation.PageSeats, ID: c.ReservationID, Aux: int32(entity.AlertBack)}

	return ConfirmResponse{
		Page:    navigation.PageConfirm.String(),
		Show:    ShowToResponse(&c.Show),
		Seats:   ItemsToResponse(c.Items),
		Total:   c.Total,
		Confirm: link(confirm),
		Back:    link(back),
	}
}

func TicketToResponse(t *entity.Ticket, link Linker) TicketResponse {
	return TicketResponse{
		Page:          navigation.PageTicket.String(),
		ReservationID: t.ReservationID,
		PurchaseTime:  t.PurchaseTime,
		Show:          ShowToResponse(&t.Show),
		Seats:         ItemsToResponse(t.Items),
		Total:         t.Total,
		Home:          home(link),
	}
}
