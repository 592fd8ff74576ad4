package navigation

import "fmt"

// Page identifies a screen of the booking flow. Its numeric value is the
// first byte of every navigation token, so existing values must never be
// renumbered.
type Page uint8

const (
	PageNowShowing Page = 0
	PageMovie      Page = 1
	PageSeats      Page = 2
	PageConfirm    Page = 3
	PageTicket     Page = 4
	PageBadRequest Page = 5
)

var pageNames = map[Page]string{
	PageNowShowing: "NOW_SHOWING",
	PageMovie:      "MOVIE",
	PageSeats:      "SEATS",
	PageConfirm:    "CONFIRM",
	PageTicket:     "TICKET",
	PageBadRequest: "BAD_REQUEST",
}

func (p Page) Valid() bool {
	_, ok := pageNames[p]
	return ok
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Page(%d)", uint8(p))
}

// State is everything the client carries between requests. ID holds a
// movie, show or reservation id depending on Page; Aux holds a screen id or
// an alert code.
type State struct {
	Page Page
	ID   int64
	Aux  int32
}

// Default is the landing state used when a request carries no token.
func Default() State {
	return State{Page: PageNowShowing}
}

// BadRequest is returned for any token that fails to decode.
func BadRequest() State {
	return State{Page: PageBadRequest}
}
