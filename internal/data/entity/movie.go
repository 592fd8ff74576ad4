package entity

import (
	"time"
)

type Movie struct {
	ID          int64     `db:"movie_id"`
	Title       string    `db:"title"`
	Synopsis    string    `db:"synopsis"`
	Runtime     int       `db:"runtime"` // minutes
	ReleaseDate time.Time `db:"release_date"`
}

// MovieShowtime is one upcoming show of a movie, flattened for grouping.
type MovieShowtime struct {
	ShowID     int64     `db:"show_id"`
	ScreenID   int64     `db:"screen_id"`
	ScreenName string    `db:"screen_name"`
	ShowDate   time.Time `db:"show_date"`
	ShowTime   string    `db:"show_time"` // HH:MM
}

// Screening groups the showtimes of one screen on one date.
type Screening struct {
	ScreenID   int64
	ScreenName string
	ShowDate   time.Time
	Showtimes  []Showtime
}

type Showtime struct {
	ShowID int64
	Time   string
}

// GroupShowtimes folds showtimes ordered by date and screen into
// screenings.
func GroupShowtimes(showtimes []*MovieShowtime) []Screening {
	var screenings []Screening
	for _, st := range showtimes {
		n := len(screenings)
		if n == 0 || screenings[n-1].ScreenID != st.ScreenID || !screenings[n-1].ShowDate.Equal(st.ShowDate) {
			screenings = append(screenings, Screening{
				ScreenID:   st.ScreenID,
				ScreenName: st.ScreenName,
				ShowDate:   st.ShowDate,
			})
			n++
		}
		screenings[n-1].Showtimes = append(screenings[n-1].Showtimes, Showtime{
			ShowID: st.ShowID,
			Time:   st.ShowTime,
		})
	}
	return screenings
}
