// Package storage persists uploaded images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// storedNameTimeFormat is the timestamp prefix of stored filenames,
// second resolution. Two uploads of the same sanitized name within the
// same second overwrite each other; this is an accepted race.
const storedNameTimeFormat = "20060102_150405"

// unsafeChars matches every character that is stripped from an original
// filename before it is used on disk.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileStore persists raw uploads and returns the name they were stored
// under. Implementations must never let a stored name escape the storage
// root.
type FileStore interface {
	Save(filename string, content io.Reader) (string, error)
}

// DiskStore is a FileStore backed by a single directory on local disk.
type DiskStore struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

// NewDiskStore creates a DiskStore rooted at dir, creating the directory
// if it does not exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

// Dir returns the storage root directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the content to disk under a timestamp-prefixed, sanitized
// version of the original filename and returns the stored name.
func (s *DiskStore) Save(filename string, content io.Reader) (string, error) {
	storedName := StoredName(s.now(), filename)
	path := filepath.Join(s.dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	log.Info().
		Str("stored_name", storedName).
		Int64("bytes", written).
		Msg("File saved")

	return storedName, nil
}

// StoredName builds the on-disk name for an upload: a timestamp prefix at
// second resolution followed by the sanitized original name.
func StoredName(t time.Time, filename string) string {
	return t.Format(storedNameTimeFormat) + "_" + SanitizeFilename(filename)
}

// SanitizeFilename strips path components and unsafe characters from an
// original filename so the stored name cannot escape the storage root.
// A name reduced to nothing becomes "file".
func SanitizeFilename(filename string) string {
	// Drop any path component, whichever separator the client used.
	filename = filepath.Base(filename)
	if i := strings.LastIndexByte(filename, '\\'); i >= 0 {
		filename = filename[i+1:]
	}

	filename = unsafeChars.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "._")

	if filename == "" {
		return "file"
	}
	return filename
}
