package entity

import "time"

// Reservation is a customer's claim on seats of one show. It stays
// cancellable until TicketTime is set.
type Reservation struct {
	ID              int64      `db:"reservation_id"`
	ShowID          int64      `db:"show_id"`
	ReservationTime time.Time  `db:"reservation_time"`
	TicketTime      *time.Time `db:"ticket_time"`
}

func (r *Reservation) Ticketed() bool {
	return r.TicketTime != nil
}
