package response

import (
	"kino-booking/internal/data/entity"
	"kino-booking/pkg/navigation"
)

type AlertResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

type SeatCellResponse struct {
	X      int    `json:"x"`
	SeatID int64  `json:"seat_id,omitempty"`
	Name   string `json:"name,omitempty"`
	State  string `json:"state"`
}

type SeatRowResponse struct {
	Y     int                `json:"y"`
	Cells []SeatCellResponse `json:"cells"`
}

type SeatsResponse struct {
	Page  string            `json:"page"`
	Show  ShowResponse      `json:"show"`
	Alert *AlertResponse    `json:"alert,omitempty"`
	Rows  []SeatRowResponse `json:"rows"`

	// Submit is where the selected seat ids are posted.
	Submit string `json:"submit"`
	Back   string `json:"back"`
}

func SeatsToResponse(reservationID int64, show *entity.ShowDetails, cells []entity.SeatCell, alert entity.SeatAlert, link Linker) SeatsResponse {
	submit := navigation.State{Page: navigation.PageSeats, ID: reservationID, Aux: int32(show.ScreenID)}
	back := navigation.State{Page: navigation.PageMovie, ID: show.MovieID}

	resp := SeatsResponse{
		Page:   navigation.PageSeats.String(),
		Show:   ShowToResponse(show),
		Rows:   GroupRows(cells),
		Submit: link(submit),
		Back:   link(back),
	}

	if msg := alert.Message(); msg != "" {
		resp.Alert = &AlertResponse{Code: int32(alert), Message: msg}
	}

	return resp
}

// GroupRows splits a row-major grid into rows.
func GroupRows(cells []entity.SeatCell) []SeatRowResponse {
	var rows []SeatRowResponse
	for _, cell := range cells {
		if n := len(rows); n == 0 || rows[n-1].Y != cell.GridY {
			rows = append(rows, SeatRowResponse{Y: cell.GridY})
		}
		c := SeatCellResponse{X: cell.GridX, State: cell.State.String()}
		if cell.SeatID != entity.NoSeat {
			c.SeatID = cell.SeatID
			c.Name = cell.Name
		}
		rows[len(rows)-1].Cells = append(rows[len(rows)-1].Cells, c)
	}
	return rows
}
