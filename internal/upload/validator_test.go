package upload_test

import (
	"errors"
	"testing"

	"github.com/cropportal/backend/internal/upload"
	"github.com/cropportal/backend/internal/utils"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"leaf.png", true},
		{"leaf.jpg", true},
		{"leaf.jpeg", true},
		{"leaf.gif", true},
		{"leaf.bmp", true},
		{"photo.JPG", true},
		{"photo.PnG", true},
		{"archive.tar.gz", false},
		{"photo.txt", false},
		{"photo", false},
		{"", false},
		{".png", true},
	}

	for _, tt := range tests {
		if got := upload.AllowedFile(tt.filename); got != tt.want {
			t.Errorf("AllowedFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestAccept(t *testing.T) {
	v := upload.NewValidator(100)

	tests := []struct {
		name     string
		hasFile  bool
		filename string
		size     int64
		wantMsg  string
	}{
		{"no file", false, "", 0, "No file uploaded"},
		{"empty filename", true, "", 10, "No file selected"},
		{"unsupported type", true, "notes.txt", 10, "Invalid file type. Allowed: png, jpg, jpeg, gif, bmp"},
		{"no extension", true, "photo", 10, "Invalid file type. Allowed: png, jpg, jpeg, gif, bmp"},
		{"too large", true, "leaf.png", 101, "File too large. Maximum size: 5MB"},
		{"accepted", true, "leaf.png", 100, ""},
		{"accepted uppercase", true, "leaf.PNG", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Accept(tt.hasFile, tt.filename, tt.size)

			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Expected upload to be accepted, got %v", err)
				}
				return
			}

			var appErr *utils.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestAccept_TooLargeStatusCode(t *testing.T) {
	v := upload.NewValidator(10)

	err := v.Accept(true, "leaf.png", 11)
	if utils.StatusCode(err) != 413 {
		t.Errorf("Expected status 413, got %d", utils.StatusCode(err))
	}
}

func TestNewValidator_DefaultCap(t *testing.T) {
	v := upload.NewValidator(0)

	if v.MaxSize() != 5<<20 {
		t.Errorf("Expected default cap of 5 MiB, got %d", v.MaxSize())
	}
}
