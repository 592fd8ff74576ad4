package usecase

import (
	"context"
	"fmt"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/data/repository"
	"kino-booking/pkg/metrics"
	"kino-booking/pkg/mq"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

type ConfirmService interface {
	// GetConfirmation summarises an unticketed reservation holding seats.
	GetConfirmation(ctx context.Context, reservationID int64) (*entity.Confirmation, error)

	// IssueTicket stamps the ticket time and returns the ticket.
	IssueTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error)

	GetTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error)

	// AnnounceTicket publishes the ticket. Call it after the issuing
	// transaction committed; failures are logged and swallowed.
	AnnounceTicket(ctx context.Context, ticket *entity.Ticket)
}

type confirmService struct {
	repo      *repository.Repository
	clock     utils.Clock
	publisher TicketPublisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewConfirmService(
	repo *repository.Repository,
	clock utils.Clock,
	publisher TicketPublisher,
	metrics *metrics.Metrics,
	log *zap.Logger,
) ConfirmService {
	return &confirmService{
		repo:      repo,
		clock:     clock,
		publisher: publisher,
		metrics:   metrics,
		log:       log.With(zap.String("service", "confirm")),
	}
}

func (s *confirmService) GetConfirmation(ctx context.Context, reservationID int64) (*entity.Confirmation, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get reservation %d: %w", reservationID, err)
	}
	if reservation == nil || reservation.Ticketed() {
		return nil, fmt.Errorf("open reservation %d: %w", reservationID, repository.ErrNotFound)
	}

	show, items, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return &entity.Confirmation{
		ReservationID: reservationID,
		Show:          *show,
		Items:         items,
		Total:         entity.TotalPrice(items),
	}, nil
}

func (s *confirmService) IssueTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error) {
	now := s.clock.Now()

	issued, err := s.repo.Reservation.IssueTicket(ctx, reservationID, now)
	if err != nil {
		return nil, fmt.Errorf("issue ticket: %w", err)
	}
	if !issued {
		return nil, fmt.Errorf("open reservation %d: %w", reservationID, repository.ErrNotFound)
	}

	show, items, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Ticket issued",
		zap.Int64("reservation_id", reservationID),
		zap.Int("seats", len(items)),
	)

	return &entity.Ticket{
		ReservationID: reservationID,
		PurchaseTime:  now,
		Show:          *show,
		Items:         items,
		Total:         entity.TotalPrice(items),
	}, nil
}

func (s *confirmService) GetTicket(ctx context.Context, reservationID int64) (*entity.Ticket, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get reservation %d: %w", reservationID, err)
	}
	if reservation == nil || !reservation.Ticketed() {
		return nil, fmt.Errorf("ticket %d: %w", reservationID, repository.ErrNotFound)
	}

	show, items, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return &entity.Ticket{
		ReservationID: reservationID,
		PurchaseTime:  *reservation.TicketTime,
		Show:          *show,
		Items:         items,
		Total:         entity.TotalPrice(items),
	}, nil
}

func (s *confirmService) AnnounceTicket(ctx context.Context, ticket *entity.Ticket) {
	if s.publisher == nil || ticket == nil {
		return
	}

	event := mq.TicketIssuedEvent{
		EventID:       utils.GenerateUUIDString(),
		ReservationID: ticket.ReservationID,
		ShowID:        ticket.Show.ShowID,
		MovieTitle:    ticket.Show.MovieTitle,
		ScreenName:    ticket.Show.ScreenName,
		ShowDate:      ticket.Show.ShowDate.Format("2006-01-02"),
		ShowTime:      ticket.Show.ShowTime,
		Seats:         ticket.SeatNames(),
		Total:         ticket.Total,
		IssuedAt:      ticket.PurchaseTime,
	}

	err := s.publisher.PublishTicketIssued(ctx, event)
	s.metrics.ObservePublish(s.publisher.Topic(), err)
	if err != nil {
		s.log.Error("Failed to publish ticket issued event",
			zap.Error(err),
			zap.Int64("reservation_id", ticket.ReservationID),
		)
		return
	}

	s.log.Debug("Ticket issued event published",
		zap.String("event_id", event.EventID),
		zap.Int64("reservation_id", ticket.ReservationID),
	)
}

// load reads the show and the seats of a reservation. A reservation without
// seats has nothing to confirm or print.
func (s *confirmService) load(ctx context.Context, reservationID int64) (*entity.ShowDetails, []entity.SelectionItem, error) {
	show, err := s.repo.Show.FindDetailsByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get show of reservation %d: %w", reservationID, err)
	}
	if show == nil {
		return nil, nil, fmt.Errorf("show of reservation %d: %w", reservationID, repository.ErrNotFound)
	}

	items, err := s.repo.Selection.FindItems(ctx, reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get seats of reservation %d: %w", reservationID, err)
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("seats of reservation %d: %w", reservationID, repository.ErrNotFound)
	}

	return show, items, nil
}
