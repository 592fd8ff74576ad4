package adaptor

import (
	"errors"
	"net/http"

	"kino-booking/internal/data/repository"
	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/database"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Kino   *KinoHandler
	Admin  *AdminHandler
	Health *HealthHandler
}

func NewHandler(
	service *usecase.Service,
	tx database.Transactor,
	codec *navigation.Codec,
	checks map[string]HealthCheck,
	config *utils.Config,
	log *zap.Logger,
) *Handler {
	var link response.Linker = func(s navigation.State) string {
		return codec.Href(config.Navigation.Path, s)
	}

	return &Handler{
		Kino: NewKinoHandler(
			NewMovieHandler(service.Movie, tx, link, log),
			NewSeatsHandler(service.Booking, tx, link, log),
			NewTicketHandler(service.Confirm, tx, link, log),
			log,
		),
		Admin:  NewAdminHandler(service.Maintenance, log),
		Health: NewHealthHandler(checks),
	}
}

// notFound is the single answer to anything the client cannot be told more
// about: malformed tokens, unknown ids, rejected seat data.
func notFound(w http.ResponseWriter) {
	utils.ResponseNotFound(w, "not found")
}

func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		notFound(w)
		return
	}

	log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
