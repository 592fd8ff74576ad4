package response

import (
	"kino-booking/internal/data/entity"
	"kino-booking/pkg/navigation"
)

type MovieItemResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

type NowShowingResponse struct {
	Page   string              `json:"page"`
	Movies []MovieItemResponse `json:"movies"`
}

type ShowtimeResponse struct {
	Time string `json:"time"`
	Link string `json:"link"`
}

type ScreeningResponse struct {
	Date       string             `json:"date"`
	ScreenName string             `json:"screen_name"`
	Showtimes  []ShowtimeResponse `json:"showtimes"`
}

type MovieResponse struct {
	Page        string              `json:"page"`
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Runtime     int                 `json:"runtime"`
	ReleaseDate string              `json:"release_date"`
	Synopsis    string              `json:"synopsis"`
	Screenings  []ScreeningResponse `json:"screenings"`
	Back        string              `json:"back"`
}

func NowShowingToResponse(movies []*entity.Movie, link Linker) NowShowingResponse {
	items := make([]MovieItemResponse, len(movies))
	for i, movie := range movies {
		items[i] = MovieItemResponse{
			ID:    movie.ID,
			Title: movie.Title,
			Link:  link(navigation.State{Page: navigation.PageMovie, ID: movie.ID}),
		}
	}

	return NowShowingResponse{
		Page:   navigation.PageNowShowing.String(),
		Movies: items,
	}
}

func MovieToResponse(movie *entity.Movie, screenings []entity.Screening, link Linker) MovieResponse {
	resp := MovieResponse{
		Page:        navigation.PageMovie.String(),
		ID:          movie.ID,
		Title:       movie.Title,
		Runtime:     movie.Runtime,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Synopsis:    movie.Synopsis,
		Screenings:  make([]ScreeningResponse, len(screenings)),
		Back:        home(link),
	}

	for i, screening := range screenings {
		showtimes := make([]ShowtimeResponse, len(screening.Showtimes))
		for j, st := range screening.Showtimes {
			seats := navigation.State{Page: navigation.PageSeats, ID: st.ShowID, Aux: int32(entity.AlertDefault)}
			showtimes[j] = ShowtimeResponse{Time: st.Time, Link: link(seats)}
		}
		resp.Screenings[i] = ScreeningResponse{
			Date:       screening.ShowDate.Format("2006-01-02"),
			ScreenName: screening.ScreenName,
			Showtimes:  showtimes,
		}
	}

	return resp
}
