package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// EmailContextKey is the context key for the authenticated user's email.
	EmailContextKey ContextKey = constants.EmailContextKey

	// NameContextKey is the context key for the authenticated user's display name.
	NameContextKey ContextKey = constants.NameContextKey

	// RequestIDContextKey is the context key for the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// Authentication failure modes. All map to 401 for the caller, but they are
// kept distinct for logging.
var (
	// ErrAuthMissing indicates no authorization header was present.
	ErrAuthMissing = errors.New("missing authentication token")

	// ErrAuthMalformed indicates the authorization header was not a
	// "Bearer <token>" pair.
	ErrAuthMalformed = errors.New("invalid authorization header")
)

// AuthProvider defines methods for authentication mechanisms.
type AuthProvider interface {
	// Authenticate checks the request and returns the authenticated
	// identity (email, display name) if valid.
	Authenticate(r *http.Request) (string, string, error)
}

// JWTAuthProvider implements bearer-token authentication. Exactly one
// credential format is accepted: "Authorization: Bearer <token>".
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified validator.
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (string, string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", "", ErrAuthMissing
	}

	// The header must be a space-separated scheme/token pair with the
	// Bearer scheme; anything else is malformed.
	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return "", "", ErrAuthMalformed
	}

	token := strings.TrimPrefix(authHeader, constants.BearerTokenPrefix)
	if token == "" {
		return "", "", ErrAuthMalformed
	}

	claims, err := p.jwtService.ValidateToken(token)
	if err != nil {
		return "", "", err
	}

	return claims.Email, claims.Name, nil
}

// AuthMiddleware wraps an HTTP handler with authentication. It runs to
// completion before the wrapped handler touches any shared resource: a
// rejected request never reaches the handler, so no partial authorization
// is possible.
func AuthMiddleware(next http.Handler, provider AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Generate a request ID if not already present for request tracking
		requestID := r.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(constants.HeaderXRequestID, requestID)
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

		email, name, err := provider.Authenticate(r)
		if err != nil {
			code, message := classifyAuthError(err)

			log.Info().
				Err(err).
				Str("code", code).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Authentication failed")

			utils.Unauthorized(w, message)
			return
		}

		// Attach the resolved identity to the context for downstream handlers
		ctx = context.WithValue(ctx, EmailContextKey, email)
		ctx = context.WithValue(ctx, NameContextKey, name)

		log.Debug().
			Str("email", email).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// classifyAuthError maps an authentication failure to its observability code
// and user-facing message. Invalid and expired tokens share a message but
// keep distinct codes.
func classifyAuthError(err error) (string, string) {
	switch {
	case errors.Is(err, ErrAuthMissing):
		return constants.CodeAuthMissing, constants.MsgMissingToken
	case errors.Is(err, ErrAuthMalformed):
		return constants.CodeAuthMalformed, constants.MsgMalformedAuthHeader
	case errors.Is(err, utils.ErrExpiredToken):
		return constants.CodeTokenExpired, constants.MsgInvalidOrExpiredToken
	default:
		return constants.CodeAuthRejected, constants.MsgInvalidOrExpiredToken
	}
}

// RequireAuth is a middleware that requires authentication.
func RequireAuth(provider AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return AuthMiddleware(next, provider)
	}
}

// GetEmail extracts the authenticated email from the request context.
func GetEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(EmailContextKey).(string)
	return email, ok
}

// GetName extracts the authenticated display name from the request context.
func GetName(r *http.Request) (string, bool) {
	name, ok := r.Context().Value(NameContextKey).(string)
	return name, ok
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request carries a resolved identity.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetEmail(r)
	return ok
}
