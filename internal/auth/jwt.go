// Package auth provides authentication and authorization functionality for
// the Crop Portal API: JWT issuance and verification, password hashing and
// the middleware that enforces authentication on protected routes.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/cropportal/backend/internal/config"
	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)

// CustomClaims represents the claims in a token: the identity (email and
// display name) plus the registered time bounds. Tokens are self-contained
// and never persisted; a token stays valid until natural expiry regardless
// of server-side state changes.
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService provides token generation and validation.
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance.
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
	}
}

// GetConfig returns the service configuration, falling back to defaults
// when none was provided.
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateToken produces a signed token whose claims are the given identity
// plus issuedAt = now and expiresAt = now + the configured TTL. Signing never
// fails under normal conditions; a missing signing key is a fatal startup
// condition handled by config validation, not a per-call error.
func (s *JWTService) GenerateToken(email, name string) (string, error) {
	cfg := s.GetConfig()
	now := time.Now()

	claims := CustomClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken checks signature validity and expiry and returns the claims.
// Malformed encoding, signature mismatch and a wrong algorithm all collapse
// to an invalid-token error; a well-formed but time-expired token yields an
// expired-token error. Both map to 401 but stay distinguishable for logging.
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(s.GetConfig().Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
