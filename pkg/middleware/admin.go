package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminToken guards the maintenance routes with a static bearer token. An
// empty token locks the routes entirely.
func AdminToken(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				utils.ResponseUnauthorized(w, "Admin access disabled")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			given, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				logger.Warn("Admin check: invalid token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
