package storage_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/cropportal/backend/internal/storage"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"leaf.png", "leaf.png"},
		{"my leaf photo.jpg", "my_leaf_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"/absolute/path/leaf.png", "leaf.png"},
		{"sh@dy!name#.png", "sh_dy_name_.png"},
		{"", "file"},
		{"...", "file"},
		{"UPPER-case_ok.BMP", "UPPER-case_ok.BMP"},
	}

	for _, tt := range tests {
		if got := storage.SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoredName(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := storage.StoredName(at, "leaf.png")
	want := "20260314_150926_leaf.png"
	if got != want {
		t.Errorf("StoredName = %q, want %q", got, want)
	}
}

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	storedName, err := store.Save("leaf.png", strings.NewReader("fake image"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	// Timestamp prefix at second resolution, then the sanitized name
	if ok, _ := regexp.MatchString(`^\d{8}_\d{6}_leaf\.png$`, storedName); !ok {
		t.Errorf("Unexpected stored name format: %q", storedName)
	}

	content, err := os.ReadFile(filepath.Join(dir, storedName))
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if string(content) != "fake image" {
		t.Errorf("Expected stored content 'fake image', got %q", content)
	}
}

func TestDiskStore_SaveStripsPath(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	storedName, err := store.Save("../outside.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if strings.Contains(storedName, "/") || strings.Contains(storedName, "..") {
		t.Errorf("Stored name escapes the storage root: %q", storedName)
	}

	if _, err := os.Stat(filepath.Join(dir, storedName)); err != nil {
		t.Errorf("Expected file inside storage root: %v", err)
	}
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if store.Dir() != dir {
		t.Errorf("Expected store dir %q, got %q", dir, store.Dir())
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}
