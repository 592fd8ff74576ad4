package repository

import (
	"kino-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie       MovieRepository
	Show        ShowRepository
	Reservation ReservationRepository
	Selection   SelectionRepository
	SeatGrid    SeatGridRepository
	Maintenance MaintenanceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:       NewMovieRepository(db, log),
		Show:        NewShowRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Selection:   NewSelectionRepository(db, log),
		SeatGrid:    NewSeatGridRepository(db, log),
		Maintenance: NewMaintenanceRepository(db, log),
	}
}
