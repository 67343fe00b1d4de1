package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cropportal/backend/internal/utils"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	utils.JSON(rec, http.StatusOK, map[string]string{"status": "running"})

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "running" {
		t.Errorf("Expected status 'running', got %q", body["status"])
	}
}

func TestError_SingleErrorField(t *testing.T) {
	rec := httptest.NewRecorder()

	utils.Error(rec, http.StatusConflict, "User already exists")

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}

	// Error bodies carry exactly one field
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("Expected a single field, got %v", body)
	}
	if body["error"] != "User already exists" {
		t.Errorf("Expected error message, got %v", body["error"])
	}
}

func TestErrorFromAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	appErr := utils.NewInternalServerError(nil)
	appErr.DevInfo = "connection refused to db-internal-host:3306"
	utils.ErrorFromAppError(rec, appErr)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}

	// Internal detail must not appear in the body
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("Expected generic message, got %q", body["error"])
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantMsg    string
	}{
		{"bad request", func(w http.ResponseWriter) { utils.BadRequest(w, "No file selected") }, 400, "No file selected"},
		{"unauthorized default", func(w http.ResponseWriter) { utils.Unauthorized(w, "") }, 401, "Missing authentication token"},
		{"not found default", func(w http.ResponseWriter) { utils.NotFound(w, "") }, 404, "Endpoint not found"},
		{"conflict", func(w http.ResponseWriter) { utils.Conflict(w, "User already exists") }, 409, "User already exists"},
		{"payload too large", utils.PayloadTooLarge, 413, "File too large. Maximum size: 5MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("Expected error %q, got %q", tt.wantMsg, body["error"])
			}
		})
	}
}
