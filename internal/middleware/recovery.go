package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500
// Internal Server Error. The panic value and stack trace are logged but
// never written to the response.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()

					// Get the request ID for correlation
					requestID, _ := auth.GetRequestID(r)

					log.Error().
						Str("request_id", requestID).
						Interface("panic", err).
						Str("stack", string(stack)).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("Panic recovered in request handler")

					utils.Error(w, http.StatusInternalServerError, constants.MsgInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
