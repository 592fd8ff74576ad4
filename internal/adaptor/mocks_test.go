package adaptor

import (
	"context"
	"net/http"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/middleware"
	"kino-booking/pkg/navigation"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) NowShowing(ctx context.Context) ([]*entity.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Movie), args.Error(1)
}

func (m *MockMovieService) MovieDetails(ctx context.Context, movieID int64) (*usecase.MovieDetails, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MovieDetails), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) EnterSeats(ctx context.Context, showID int64) (*usecase.SeatsView, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SeatsView), args.Error(1)
}

func (m *MockBookingService) ViewSeats(ctx context.Context, reservationID int64, alert entity.SeatAlert) (*usecase.SeatsView, error) {
	args := m.Called(ctx, reservationID, alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SeatsView), args.Error(1)
}

func (m *MockBookingService) SubmitSeats(ctx context.Context, reservationID, screenID int64, seatIDs []int64) (*usecase.SubmitResult, error) {
	args := m.Called(ctx, reservationID, screenID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitResult), args.Error(1)
}

type MockConfirmService struct {
	mock.Mock
}

func (m *MockConfirmService) GetConfirmation(ctx context.Context, reservationID int64) (*entity.Confirmation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Confirmation), args.Error(1)
}

func (m *MockConfirmService) IssueTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *MockConfirmService) GetTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *MockConfirmService) AnnounceTicket(ctx context.Context, ticket *entity.Ticket) {
	m.Called(ctx, ticket)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) ClearExpiredReservations(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceService) ScheduleShows(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// inlineTx runs the unit of work without a database and counts the calls.
type inlineTx struct {
	calls int
}

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type kinoFixture struct {
	codec   *navigation.Codec
	movies  *MockMovieService
	booking *MockBookingService
	confirm *MockConfirmService
	tx      *inlineTx
	handler http.Handler
}

func newKinoFixture() *kinoFixture {
	codec, err := navigation.NewCodec([]byte("0123456789abcdef"))
	if err != nil {
		panic(err)
	}

	f := &kinoFixture{
		codec:   codec,
		movies:  new(MockMovieService),
		booking: new(MockBookingService),
		confirm: new(MockConfirmService),
		tx:      &inlineTx{},
	}

	var link response.Linker = func(s navigation.State) string { return codec.Href("/kino", s) }
	log := zap.NewNop()
	kino := NewKinoHandler(
		NewMovieHandler(f.movies, f.tx, link, log),
		NewSeatsHandler(f.booking, f.tx, link, log),
		NewTicketHandler(f.confirm, f.tx, link, log),
		log,
	)

	f.handler = middleware.Navigation(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			kino.Post(w, r)
			return
		}
		kino.Get(w, r)
	}))
	return f
}

func (f *kinoFixture) url(s navigation.State) string {
	return f.codec.Href("/kino", s)
}
