package entity

import "time"

// Confirmation is what a customer reviews before the ticket is issued.
type Confirmation struct {
	ReservationID int64
	Show          ShowDetails
	Items         []SelectionItem
	Total         float64
}

type Ticket struct {
	ReservationID int64
	PurchaseTime  time.Time
	Show          ShowDetails
	Items         []SelectionItem
	Total         float64
}

func (t *Ticket) SeatNames() []string {
	names := make([]string, len(t.Items))
	for i, item := range t.Items {
		names[i] = item.SeatName
	}
	return names
}
