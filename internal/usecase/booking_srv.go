package usecase

import (
	"context"
	"errors"
	"fmt"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/data/repository"
	"kino-booking/pkg/metrics"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

// MaxSeatsPerReservation caps one submission.
const MaxSeatsPerReservation = 6

type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeEmpty     Outcome = "empty"
	OutcomeLimit     Outcome = "limit"
	OutcomeBooked    Outcome = "booked"
	OutcomeBadData   Outcome = "bad_data"
)

// SeatsView is everything the seat selection page shows.
type SeatsView struct {
	ReservationID int64
	Show          *entity.ShowDetails
	Cells         []entity.SeatCell
	Alert         entity.SeatAlert
}

// SubmitResult reports how a seat submission ended. View is set for the
// rejections that send the customer back to the grid.
type SubmitResult struct {
	Outcome       Outcome
	ReservationID int64
	View          *SeatsView
}

// BookingService runs the seat selection protocol. Callers own the
// transaction: every method expects ctx to carry one.
type BookingService interface {
	// EnterSeats mints a reservation for the show and renders its grid.
	EnterSeats(ctx context.Context, showID int64) (*SeatsView, error)

	// ViewSeats renders the grid of an existing reservation.
	ViewSeats(ctx context.Context, reservationID int64, alert entity.SeatAlert) (*SeatsView, error)

	// SubmitSeats stages the seats, promotes them into selections and
	// checks that every one of them made it.
	SubmitSeats(ctx context.Context, reservationID, screenID int64, seatIDs []int64) (*SubmitResult, error)
}

type bookingService struct {
	repo    *repository.Repository
	ids     IDGenerator
	clock   utils.Clock
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	ids IDGenerator,
	clock utils.Clock,
	metrics *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:    repo,
		ids:     ids,
		clock:   clock,
		metrics: metrics,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) EnterSeats(ctx context.Context, showID int64) (*SeatsView, error) {
	show, err := s.repo.Show.FindDetails(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("find show %d: %w", showID, err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %d: %w", showID, repository.ErrNotFound)
	}

	reservation := &entity.Reservation{
		ID:              s.ids.Next(),
		ShowID:          show.ShowID,
		ReservationTime: s.clock.Now(),
	}
	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("show_id", show.ShowID),
	)

	cells, err := s.repo.SeatGrid.Query(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("query seat grid: %w", err)
	}

	return &SeatsView{
		ReservationID: reservation.ID,
		Show:          show,
		Cells:         cells,
		Alert:         entity.AlertDefault,
	}, nil
}

func (s *bookingService) ViewSeats(ctx context.Context, reservationID int64, alert entity.SeatAlert) (*SeatsView, error) {
	show, err := s.repo.Show.FindDetailsByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("find show of reservation %d: %w", reservationID, err)
	}
	if show == nil {
		return nil, fmt.Errorf("reservation %d: %w", reservationID, repository.ErrNotFound)
	}

	cells, err := s.repo.SeatGrid.Query(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("query seat grid: %w", err)
	}

	return &SeatsView{
		ReservationID: reservationID,
		Show:          show,
		Cells:         cells,
		Alert:         alert,
	}, nil
}

func (s *bookingService) SubmitSeats(ctx context.Context, reservationID, screenID int64, seatIDs []int64) (*SubmitResult, error) {
	seats := distinct(seatIDs)

	switch {
	case len(seats) == 0:
		return s.reject(ctx, reservationID, OutcomeEmpty, entity.AlertEmpty)
	case len(seats) > MaxSeatsPerReservation:
		return s.reject(ctx, reservationID, OutcomeLimit, entity.AlertLimit)
	}

	if err := s.repo.Selection.ClearStaging(ctx, reservationID); err != nil {
		return nil, err
	}

	if err := s.repo.Selection.Stage(ctx, reservationID, screenID, seats); err != nil {
		if !errors.Is(err, repository.ErrInvalidSelection) {
			return nil, err
		}
		if err := s.repo.Selection.ClearStaging(ctx, reservationID); err != nil {
			return nil, err
		}

		s.log.Warn("Seat submission rejected",
			zap.Int64("reservation_id", reservationID),
			zap.Int64("screen_id", screenID),
			zap.Int64s("seat_ids", seats),
		)
		s.metrics.ObserveBooking(string(OutcomeBadData))
		return &SubmitResult{Outcome: OutcomeBadData, ReservationID: reservationID}, nil
	}

	// Selections from an earlier submission of this reservation would
	// otherwise collide with their own replacements.
	if err := s.repo.Selection.ClearSelection(ctx, reservationID); err != nil {
		return nil, err
	}

	inserted, err := s.repo.Selection.Promote(ctx, reservationID)
	if err != nil {
		if !errors.Is(err, repository.ErrSeatTaken) {
			return nil, err
		}
		inserted = 0
	}

	if err := s.repo.Selection.ClearStaging(ctx, reservationID); err != nil {
		return nil, err
	}

	if inserted != int64(len(seats)) {
		s.log.Info("Seats already booked",
			zap.Int64("reservation_id", reservationID),
			zap.Int64("inserted", inserted),
			zap.Int("requested", len(seats)),
		)
		return s.reject(ctx, reservationID, OutcomeBooked, entity.AlertBooked)
	}

	s.log.Info("Seats committed",
		zap.Int64("reservation_id", reservationID),
		zap.Int64s("seat_ids", seats),
	)
	s.metrics.ObserveBooking(string(OutcomeCommitted))

	return &SubmitResult{Outcome: OutcomeCommitted, ReservationID: reservationID}, nil
}

// reject drops whatever the reservation holds and renders the grid again
// with the alert.
func (s *bookingService) reject(ctx context.Context, reservationID int64, outcome Outcome, alert entity.SeatAlert) (*SubmitResult, error) {
	if err := s.repo.Selection.ClearSelection(ctx, reservationID); err != nil {
		return nil, err
	}

	view, err := s.ViewSeats(ctx, reservationID, alert)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveBooking(string(outcome))

	return &SubmitResult{
		Outcome:       outcome,
		ReservationID: reservationID,
		View:          view,
	}, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
