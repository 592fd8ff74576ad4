package wire

import (
	"kino-booking/internal/adaptor"
	"kino-booking/pkg/middleware"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireKino(
	r chi.Router,
	kinoHandler *adaptor.KinoHandler,
	codec *navigation.Codec,
	config *utils.Config,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Navigation(codec))

		// every page; the token in ?demo= picks which
		r.Get(config.Navigation.Path, kinoHandler.Get)
		r.Post(config.Navigation.Path, kinoHandler.Post)
	})
}
