package entity

import "strconv"

type Seat struct {
	ID       int64  `db:"seat_id"`
	ScreenID int64  `db:"screen_id"`
	Row      string `db:"seat_row"` // A, B, C, etc.
	Col      int    `db:"seat_col"` // 1, 2, 3, etc.
	GridY    int    `db:"grid_y"`
	GridX    int    `db:"grid_x"`
}

func (s Seat) Name() string {
	return s.Row + strconv.Itoa(s.Col)
}

// NoSeat is the SeatID of a grid slot without a physical seat.
const NoSeat int64 = -1

type SeatState int

const (
	SeatAvailable SeatState = 0
	SeatSelected  SeatState = 1 // held by the viewing reservation
	SeatReserved  SeatState = 2 // held by another reservation of the show
	SeatAbsent    SeatState = 3
)

func (s SeatState) String() string {
	switch s {
	case SeatAvailable:
		return "available"
	case SeatSelected:
		return "selected"
	case SeatReserved:
		return "reserved"
	default:
		return "absent"
	}
}

// SeatCell is one slot of a screen's grid as seen by one reservation.
type SeatCell struct {
	GridY  int
	GridX  int
	SeatID int64
	Name   string
	State  SeatState
}

// SeatAlert is the aux value of a SEATS navigation state.
type SeatAlert int32

const (
	AlertDefault SeatAlert = 0
	AlertBooked  SeatAlert = 1
	AlertEmpty   SeatAlert = 2
	AlertLimit   SeatAlert = 3
	AlertBack    SeatAlert = 999
)

func (a SeatAlert) Message() string {
	switch a {
	case AlertBooked:
		return "Another customer has already reserved one or more of the selected seats."
	case AlertEmpty:
		return "Kindly choose at least 1 seat."
	case AlertLimit:
		return "We limit purchases to 6 tickets per person."
	default:
		return ""
	}
}
