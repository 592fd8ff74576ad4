package entity

// StagingSelection is a candidate seat of the submission in progress.
type StagingSelection struct {
	ReservationID int64 `db:"reservation_id"`
	SeatID        int64 `db:"seat_id"`
	ScreenID      int64 `db:"screen_id"`
}

// Selection is a seat durably held by a reservation. At most one exists per
// seat and show.
type Selection struct {
	ReservationID int64 `db:"reservation_id"`
	SeatID        int64 `db:"seat_id"`
	ShowID        int64 `db:"show_id"`
}

// SelectionItem is a selected seat with the price it is sold at.
type SelectionItem struct {
	SeatID   int64   `db:"seat_id"`
	SeatName string  `db:"seat_name"`
	Price    float64 `db:"seat_price"`
}

func TotalPrice(items []SelectionItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}
