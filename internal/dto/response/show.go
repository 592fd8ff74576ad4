package response

import "kino-booking/internal/data/entity"

type ShowResponse struct {
	MovieTitle string  `json:"movie_title"`
	ScreenName string  `json:"screen_name"`
	ShowDate   string  `json:"show_date"`
	ShowTime   string  `json:"show_time"`
	SeatPrice  float64 `json:"seat_price"`
}

type SeatItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func ShowToResponse(show *entity.ShowDetails) ShowResponse {
	return ShowResponse{
		MovieTitle: show.MovieTitle,
		ScreenName: show.ScreenName,
		ShowDate:   show.ShowDate.Format("2006-01-02"),
		ShowTime:   show.ShowTime,
		SeatPrice:  show.SeatPrice,
	}
}

func ItemsToResponse(items []entity.SelectionItem) []SeatItemResponse {
	resp := make([]SeatItemResponse, len(items))
	for i, item := range items {
		resp[i] = SeatItemResponse{Name: item.SeatName, Price: item.Price}
	}
	return resp
}
