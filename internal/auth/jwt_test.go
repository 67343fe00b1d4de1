package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/config"
	"github.com/cropportal/backend/internal/utils"
)

func testJWTConfig() *config.JWTSettings {
	return &config.JWTSettings{
		Secret: "test-secret",
		Expiry: 15 * time.Minute,
		Issuer: "test-issuer",
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := testJWTConfig()
	service := auth.NewJWTService(cfg)

	if service == nil {
		t.Fatal("Expected service to be created, got nil")
	}

	if service.Config != cfg {
		t.Errorf("Expected Config to be %v, got %v", cfg, service.Config)
	}
}

func TestGetConfig(t *testing.T) {
	// Nil config falls back to defaults
	service := &auth.JWTService{Config: nil}
	cfg := service.GetConfig()

	if cfg == nil {
		t.Fatal("Expected default config, got nil")
	}

	if cfg.Expiry != 24*time.Hour {
		t.Errorf("Expected default Expiry to be 24h, got %v", cfg.Expiry)
	}

	if cfg.Issuer != "crop-portal-api" {
		t.Errorf("Expected default Issuer to be 'crop-portal-api', got %v", cfg.Issuer)
	}

	// Provided config is returned as is
	providedCfg := testJWTConfig()
	service = &auth.JWTService{Config: providedCfg}
	if service.GetConfig() != providedCfg {
		t.Errorf("Expected provided config %v, got %v", providedCfg, service.GetConfig())
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := auth.NewJWTService(testJWTConfig())

	token, err := service.GenerateToken("user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.Email != "user@example.com" {
		t.Errorf("Expected email 'user@example.com', got %q", claims.Email)
	}
	if claims.Name != "Test User" {
		t.Errorf("Expected name 'Test User', got %q", claims.Name)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("Expected issuer 'test-issuer', got %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("Expected token to carry a unique ID")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Expiry = -1 * time.Minute
	service := auth.NewJWTService(cfg)

	token, err := service.GenerateToken("user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	_, err = service.ValidateToken(token)
	if err == nil {
		t.Fatal("Expected validation to fail for expired token")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if !errors.Is(appErr.Err, utils.ErrExpiredToken) {
		t.Errorf("Expected expired token error, got %v", appErr.Err)
	}
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	service := auth.NewJWTService(testJWTConfig())

	token, err := service.GenerateToken("user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	// Flip a character in the signature segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = service.ValidateToken(tampered)
	if err == nil {
		t.Fatal("Expected validation to fail for tampered token")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if !errors.Is(appErr.Err, utils.ErrInvalidToken) {
		t.Errorf("Expected invalid token error, got %v", appErr.Err)
	}
}

func TestValidateToken_WrongAlgorithm(t *testing.T) {
	service := auth.NewJWTService(testJWTConfig())

	// Sign a token with the "none" algorithm
	claims := auth.CustomClaims{
		Email: "user@example.com",
		Name:  "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := service.ValidateToken(signed); err == nil {
		t.Fatal("Expected validation to fail for wrong signing algorithm")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	service := auth.NewJWTService(testJWTConfig())

	if _, err := service.ValidateToken("not-a-token"); err == nil {
		t.Fatal("Expected validation to fail for malformed token")
	}
}
