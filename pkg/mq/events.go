package mq

import "time"

// TicketIssuedEvent is published once a reservation is turned into a ticket.
type TicketIssuedEvent struct {
	EventID       string    `json:"event_id"`
	ReservationID int64     `json:"reservation_id"`
	ShowID        int64     `json:"show_id"`
	MovieTitle    string    `json:"movie_title"`
	ScreenName    string    `json:"screen_name"`
	ShowDate      string    `json:"show_date"`
	ShowTime      string    `json:"show_time"`
	Seats         []string  `json:"seats"`
	Total         float64   `json:"total"`
	IssuedAt      time.Time `json:"issued_at"`
}
