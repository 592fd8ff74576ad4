package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/data/repository"
)

// memStore keeps the booking tables in memory and enforces the same
// constraints as the schema: staged seats must exist on the given screen
// and belong to a known reservation, and a seat is selected at most once
// per show.
type memStore struct {
	mu sync.Mutex

	movies       map[int64]*entity.Movie
	showtimes    map[int64][]*entity.MovieShowtime
	shows        map[int64]*entity.ShowDetails
	seats        map[int64]entity.Seat
	gridRows     int
	gridCols     int
	reservations map[int64]*entity.Reservation
	staging      map[int64][]entity.StagingSelection
	selections   []entity.Selection
	runs         map[string]bool
	created      map[string]int64
}

const (
	testShowID   int64 = 61
	testScreenID int64 = 31
	otherShowID  int64 = 62
	otherScreen  int64 = 32
	testPrice          = 9.99
)

func newMemStore() *memStore {
	s := &memStore{
		movies: map[int64]*entity.Movie{
			11: {ID: 11, Title: "Lucky Star", Runtime: 105},
		},
		showtimes:    map[int64][]*entity.MovieShowtime{},
		shows:        map[int64]*entity.ShowDetails{},
		seats:        map[int64]entity.Seat{},
		gridRows:     8,
		gridCols:     8,
		reservations: map[int64]*entity.Reservation{},
		staging:      map[int64][]entity.StagingSelection{},
		runs:         map[string]bool{},
		created:      map[string]int64{},
	}

	s.shows[testShowID] = &entity.ShowDetails{
		ShowID:     testShowID,
		ShowDate:   time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
		ShowTime:   "13:00",
		SeatPrice:  testPrice,
		ScreenID:   testScreenID,
		ScreenName: "Screen 1",
		Capacity:   40,
		MovieID:    11,
		MovieTitle: "Lucky Star",
	}
	s.shows[otherShowID] = &entity.ShowDetails{
		ShowID:     otherShowID,
		ShowDate:   time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
		ShowTime:   "16:00",
		SeatPrice:  12.5,
		ScreenID:   otherScreen,
		ScreenName: "Screen 2",
		Capacity:   20,
		MovieID:    11,
		MovieTitle: "Lucky Star",
	}

	for _, seat := range []entity.Seat{
		{ID: 101, ScreenID: testScreenID, Row: "A", Col: 1, GridY: 4, GridX: 4},
		{ID: 102, ScreenID: testScreenID, Row: "A", Col: 2, GridY: 4, GridX: 5},
		{ID: 103, ScreenID: testScreenID, Row: "B", Col: 1, GridY: 6, GridX: 2},
		{ID: 104, ScreenID: testScreenID, Row: "B", Col: 2, GridY: 6, GridX: 3},
		{ID: 105, ScreenID: testScreenID, Row: "B", Col: 3, GridY: 6, GridX: 6},
		{ID: 106, ScreenID: testScreenID, Row: "B", Col: 4, GridY: 6, GridX: 7},
		{ID: 107, ScreenID: testScreenID, Row: "C", Col: 1, GridY: 7, GridX: 4},
		{ID: 108, ScreenID: testScreenID, Row: "C", Col: 2, GridY: 7, GridX: 5},
		{ID: 201, ScreenID: otherScreen, Row: "A", Col: 1, GridY: 0, GridX: 0},
		{ID: 202, ScreenID: otherScreen, Row: "A", Col: 2, GridY: 0, GridX: 1},
	} {
		s.seats[seat.ID] = seat
	}

	return s
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Movie:       memMovies{s},
		Show:        memShows{s},
		Reservation: memReservations{s},
		Selection:   memSelections{s},
		SeatGrid:    memSeatGrid{s},
		Maintenance: memMaintenance{s},
	}
}

// selected returns the seats a reservation holds, sorted.
func (s *memStore) selected(reservationID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for _, sel := range s.selections {
		if sel.ReservationID == reservationID {
			ids = append(ids, sel.SeatID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) stagedCount(reservationID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staging[reservationID])
}

func (s *memStore) addReservation(id, showID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[id] = &entity.Reservation{ID: id, ShowID: showID}
}

type memMovies struct{ *memStore }

func (m memMovies) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var movies []*entity.Movie
	for _, movie := range m.movies {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (m memMovies) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.movies[id], nil
}

func (m memMovies) FindShowtimes(ctx context.Context, movieID int64, from time.Time) ([]*entity.MovieShowtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.showtimes[movieID], nil
}

type memShows struct{ *memStore }

func (m memShows) FindDetails(ctx context.Context, showID int64) (*entity.ShowDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows[showID], nil
}

func (m memShows) FindDetailsByReservation(ctx context.Context, reservationID int64) (*entity.ShowDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[reservationID]
	if !ok {
		return nil, nil
	}
	return m.shows[res.ShowID], nil
}

type memReservations struct{ *memStore }

func (m memReservations) Create(ctx context.Context, reservation *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[reservation.ID]; ok {
		return fmt.Errorf("duplicate reservation %d", reservation.ID)
	}
	r := *reservation
	m.reservations[r.ID] = &r
	return nil
}

func (m memReservations) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	r := *res
	return &r, nil
}

func (m memReservations) IssueTicket(ctx context.Context, id int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[id]
	if !ok || res.Ticketed() {
		return false, nil
	}
	for _, sel := range m.selections {
		if sel.ReservationID == id {
			res.TicketTime = &at
			return true, nil
		}
	}
	return false, nil
}

func (m memReservations) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, res := range m.reservations {
		if res.Ticketed() || !res.ReservationTime.Before(cutoff) {
			continue
		}
		delete(m.reservations, id)
		delete(m.staging, id)
		kept := m.selections[:0]
		for _, sel := range m.selections {
			if sel.ReservationID != id {
				kept = append(kept, sel)
			}
		}
		m.selections = kept
		deleted++
	}
	return deleted, nil
}

type memSelections struct{ *memStore }

func (m memSelections) ClearStaging(ctx context.Context, reservationID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staging, reservationID)
	return nil
}

func (m memSelections) Stage(ctx context.Context, reservationID, screenID int64, seatIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[reservationID]; !ok {
		return fmt.Errorf("stage: %w", repository.ErrInvalidSelection)
	}
	rows := make([]entity.StagingSelection, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := m.seats[id]
		if !ok || seat.ScreenID != screenID {
			return fmt.Errorf("stage seat %d: %w", id, repository.ErrInvalidSelection)
		}
		rows = append(rows, entity.StagingSelection{ReservationID: reservationID, SeatID: id, ScreenID: screenID})
	}
	m.staging[reservationID] = append(m.staging[reservationID], rows...)
	return nil
}

func (m memSelections) ClearSelection(ctx context.Context, reservationID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res, ok := m.reservations[reservationID]; !ok || res.Ticketed() {
		return nil
	}
	kept := m.selections[:0]
	for _, sel := range m.selections {
		if sel.ReservationID != reservationID {
			kept = append(kept, sel)
		}
	}
	m.selections = kept
	return nil
}

func (m memSelections) Promote(ctx context.Context, reservationID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[reservationID]
	if !ok || res.Ticketed() {
		return 0, nil
	}
	show := m.shows[res.ShowID]

	var rows []entity.Selection
	for _, st := range m.staging[reservationID] {
		if m.seats[st.SeatID].ScreenID != show.ScreenID {
			continue
		}
		for _, sel := range m.selections {
			if sel.SeatID == st.SeatID && sel.ShowID == res.ShowID {
				return 0, fmt.Errorf("promote: %w", repository.ErrSeatTaken)
			}
		}
		rows = append(rows, entity.Selection{ReservationID: reservationID, SeatID: st.SeatID, ShowID: res.ShowID})
	}
	m.selections = append(m.selections, rows...)
	return int64(len(rows)), nil
}

func (m memSelections) FindItems(ctx context.Context, reservationID int64) ([]entity.SelectionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []entity.SelectionItem
	for _, sel := range m.selections {
		if sel.ReservationID != reservationID {
			continue
		}
		seat := m.seats[sel.SeatID]
		items = append(items, entity.SelectionItem{
			SeatID:   seat.ID,
			SeatName: seat.Name(),
			Price:    m.shows[sel.ShowID].SeatPrice,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SeatName < items[j].SeatName })
	return items, nil
}

type memSeatGrid struct{ *memStore }

func (m memSeatGrid) Query(ctx context.Context, reservationID int64) ([]entity.SeatCell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[reservationID]
	if !ok {
		return nil, nil
	}
	show := m.shows[res.ShowID]

	slots := map[[2]int]entity.Seat{}
	for _, seat := range m.seats {
		if seat.ScreenID == show.ScreenID {
			slots[[2]int{seat.GridY, seat.GridX}] = seat
		}
	}

	var cells []entity.SeatCell
	for y := 0; y < m.gridRows; y++ {
		for x := 0; x < m.gridCols; x++ {
			seat, ok := slots[[2]int{y, x}]
			if !ok {
				cells = append(cells, entity.SeatCell{GridY: y, GridX: x, SeatID: entity.NoSeat, State: entity.SeatAbsent})
				continue
			}
			cell := entity.SeatCell{GridY: y, GridX: x, SeatID: seat.ID, Name: seat.Name(), State: entity.SeatAvailable}
			for _, sel := range m.selections {
				if sel.SeatID != seat.ID || sel.ShowID != res.ShowID {
					continue
				}
				if sel.ReservationID == reservationID {
					cell.State = entity.SeatSelected
				} else {
					cell.State = entity.SeatReserved
				}
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

type memMaintenance struct{ *memStore }

func (m memMaintenance) MarkRun(ctx context.Context, job string, day time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := job + day.Format(time.DateOnly)
	if m.runs[key] {
		return false, nil
	}
	m.runs[key] = true
	return true, nil
}

func (m memMaintenance) CreateShows(ctx context.Context, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := day.Format(time.DateOnly)
	if _, ok := m.created[key]; ok {
		return 0, nil
	}
	m.created[key] = 3
	return 3, nil
}

// inlineTx runs the unit of work without a database.
type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sequenceIDs struct {
	mu   sync.Mutex
	next int64
}

func (g *sequenceIDs) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}
