package entity

import "time"

type Show struct {
	ID          int64     `db:"show_id"`
	ScreeningID int64     `db:"screening_id"`
	ShowDate    time.Time `db:"show_date"`
	ShowTime    string    `db:"show_time"`
	SeatPrice   float64   `db:"seat_price"`
}

// ShowDetails joins a show with its screen and movie.
type ShowDetails struct {
	ShowID     int64     `db:"show_id"`
	ShowDate   time.Time `db:"show_date"`
	ShowTime   string    `db:"show_time"`
	SeatPrice  float64   `db:"seat_price"`
	ScreenID   int64     `db:"screen_id"`
	ScreenName string    `db:"screen_name"`
	Capacity   int       `db:"seating_capacity"`
	MovieID    int64     `db:"movie_id"`
	MovieTitle string    `db:"title"`
}
