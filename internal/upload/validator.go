// Package upload validates image uploads before any byte reaches storage.
package upload

import (
	"path/filepath"
	"strings"

	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/utils"
)

// allowedExtensions is the extension allowlist, lowercase and without the
// leading dot. Matching is case-insensitive on the suffix after the last dot.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
}

// Validator enforces the upload contract: a file must be present, carry a
// non-empty filename with an allowed extension, and fit within the size cap.
type Validator struct {
	maxSize int64
}

// NewValidator creates a Validator with the given maximum payload size in
// bytes. A non-positive value falls back to the default cap.
func NewValidator(maxSize int64) *Validator {
	if maxSize <= 0 {
		maxSize = constants.MaxUploadSize
	}
	return &Validator{maxSize: maxSize}
}

// MaxSize returns the maximum accepted payload size in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Accept checks a candidate upload and returns nil when it may be stored.
// hasFile reports whether the upload field was present at all; size may be
// negative when the transport does not know it upfront, in which case the
// size cap is enforced by the transport's body limit instead.
func (v *Validator) Accept(hasFile bool, filename string, size int64) error {
	if !hasFile {
		return utils.NewBadRequestError(constants.MsgNoFileUploaded)
	}
	if filename == "" {
		return utils.NewBadRequestError(constants.MsgNoFileSelected)
	}
	if !AllowedFile(filename) {
		return utils.NewBadRequestError(constants.MsgInvalidFileType)
	}
	if size > v.maxSize {
		return utils.NewPayloadTooLargeError()
	}
	return nil
}

// AllowedFile reports whether the filename carries an allowed extension.
// A filename without a dot has no extension and is never allowed.
func AllowedFile(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
}
