// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/constants"
)

// JWTAuth is a middleware that requires a valid JWT token.
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	provider := auth.NewJWTAuthProvider(jwtService)
	return auth.RequireAuth(provider)
}

// SecurityHeaders adds security-related HTTP headers to responses.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)

			next.ServeHTTP(w, r)
		})
	}
}
