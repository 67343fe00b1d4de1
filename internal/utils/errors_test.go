package utils_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/cropportal/backend/internal/utils"
)

func TestAppError_Error(t *testing.T) {
	err := utils.NewValidationError("email", "Must be a valid email address")
	if err.Error() != "email: Must be a valid email address" {
		t.Errorf("Unexpected error string: %q", err.Error())
	}

	err = utils.NewBadRequestError("bad input")
	if err.Error() != "bad input" {
		t.Errorf("Unexpected error string: %q", err.Error())
	}
}

func TestParseError_PassesThroughAppError(t *testing.T) {
	original := utils.NewInvalidCredentialsError()

	parsed := utils.ParseError(fmt.Errorf("wrapped: %w", original))
	if parsed != original {
		t.Errorf("Expected wrapped AppError to be unwrapped, got %v", parsed)
	}
}

func TestParseError_MySQLDuplicate(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'idx_email'"}

	parsed := utils.ParseError(err)
	if parsed.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", parsed.StatusCode)
	}
	if parsed.Message != "User already exists" {
		t.Errorf("Expected user-exists message, got %q", parsed.Message)
	}
}

func TestParseError_PostgresDuplicate(t *testing.T) {
	err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	parsed := utils.ParseError(err)
	if parsed.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", parsed.StatusCode)
	}
}

func TestParseError_Sentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{utils.ErrNotFound, http.StatusNotFound},
		{utils.ErrUnauthorized, http.StatusUnauthorized},
		{utils.ErrInvalidCredentials, http.StatusUnauthorized},
		{utils.ErrExpiredToken, http.StatusUnauthorized},
		{utils.ErrInvalidToken, http.StatusUnauthorized},
		{utils.ErrDuplicate, http.StatusConflict},
		{utils.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		parsed := utils.ParseError(tt.err)
		if parsed.StatusCode != tt.wantStatus {
			t.Errorf("ParseError(%v): expected status %d, got %d", tt.err, tt.wantStatus, parsed.StatusCode)
		}
	}
}

func TestParseError_InternalDoesNotLeakDetail(t *testing.T) {
	parsed := utils.ParseError(errors.New("connection refused to db-internal-host:3306"))

	if parsed.Message != "Internal server error" {
		t.Errorf("Expected generic message, got %q", parsed.Message)
	}
	if parsed.DevInfo == "" {
		t.Error("Expected internal detail to be preserved for logging")
	}
}

func TestErrorPredicates(t *testing.T) {
	if !utils.IsNotFoundError(utils.NewNotFoundError("User", "a@x.com")) {
		t.Error("Expected IsNotFoundError to be true")
	}
	if !utils.IsDuplicateError(utils.NewDuplicateError("User", "email", "a@x.com")) {
		t.Error("Expected IsDuplicateError to be true")
	}
	if !utils.IsValidationError(utils.NewValidationError("name", "Missing required field: name")) {
		t.Error("Expected IsValidationError to be true")
	}
	if utils.IsDuplicateError(utils.NewNotFoundError("User", "a@x.com")) {
		t.Error("Expected IsDuplicateError to be false for not-found")
	}
}

func TestStatusCode(t *testing.T) {
	if got := utils.StatusCode(utils.NewPayloadTooLargeError()); got != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", got)
	}
	if got := utils.StatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("Expected 500 fallback, got %d", got)
	}
}
