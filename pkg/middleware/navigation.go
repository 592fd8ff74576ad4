package middleware

import (
	"net/http"

	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"
)

// Navigation decodes the token of the request into its context.
func Navigation(codec *navigation.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := codec.DecodeQuery(r.URL.Query())
			ctx := utils.SetNavigationContext(r.Context(), state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
