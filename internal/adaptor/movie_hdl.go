package adaptor

import (
	"context"
	"net/http"

	"kino-booking/internal/data/entity"
	"kino-booking/internal/dto/response"
	"kino-booking/internal/usecase"
	"kino-booking/pkg/database"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	tx      database.Transactor
	link    response.Linker
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, tx database.Transactor, link response.Linker, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		tx:      tx,
		link:    link,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// NowShowing lists every movie.
func (h *MovieHandler) NowShowing(w http.ResponseWriter, r *http.Request) {
	var movies []*entity.Movie
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		movies, err = h.service.NowShowing(ctx)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Now showing", response.NowShowingToResponse(movies, h.link))
}

// Details shows one movie and its upcoming screenings. state.ID is the
// movie id.
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request, state navigation.State) {
	var details *usecase.MovieDetails
	err := h.tx.WithinTx(r.Context(), func(ctx context.Context) error {
		var err error
		details, err = h.service.MovieDetails(ctx, state.ID)
		return err
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, details.Movie.Title, response.MovieToResponse(details.Movie, details.Screenings, h.link))
}
