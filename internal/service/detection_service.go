package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/diagnosis"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/repository"
	"github.com/cropportal/backend/internal/storage"
	"github.com/cropportal/backend/internal/upload"
	"github.com/cropportal/backend/internal/utils"
)

// UploadedFile describes a candidate upload as seen at the transport
// boundary. Present is false when the expected form field was absent.
type UploadedFile struct {
	Present  bool
	Filename string
	Size     int64
	Content  io.Reader
}

// DetectionResult is the payload returned for a successful detection. The
// diagnosis fields are the provider's values verbatim.
type DetectionResult struct {
	Disease     string    `json:"disease"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description"`
	Treatment   []string  `json:"treatment"`
	Severity    string    `json:"severity"`
	Filename    string    `json:"filename"`
	Timestamp   time.Time `json:"timestamp"`
}

// DetectionService orchestrates one detection request: validate the upload,
// persist the raw file, obtain a diagnosis and record the result against
// the owning identity. Steps run strictly in that order and short-circuit
// on the first failure.
type DetectionService struct {
	analysisRepo repository.AnalysisRepository
	fileStore    storage.FileStore
	provider     diagnosis.Provider
	validator    *upload.Validator
}

// NewDetectionService creates a new DetectionService.
func NewDetectionService(
	analysisRepo repository.AnalysisRepository,
	fileStore storage.FileStore,
	provider diagnosis.Provider,
	validator *upload.Validator,
) *DetectionService {
	return &DetectionService{
		analysisRepo: analysisRepo,
		fileStore:    fileStore,
		provider:     provider,
		validator:    validator,
	}
}

// Detect runs the detection pipeline for an authenticated user. Validation
// failures return before any byte is written; failures after the file is
// saved surface as a generic internal error and do not roll back the file.
func (s *DetectionService) Detect(ctx context.Context, userEmail string, file *UploadedFile) (*DetectionResult, error) {
	if err := s.validator.Accept(file.Present, file.Filename, file.Size); err != nil {
		log.Warn().
			Str("email", userEmail).
			Str("filename", file.Filename).
			Err(err).
			Msg("Upload rejected")
		return nil, err
	}

	log.Info().
		Str("filename", file.Filename).
		Str("email", userEmail).
		Msg("Processing image")

	storedName, err := s.fileStore.Save(file.Filename, file.Content)
	if err != nil {
		return nil, s.internalError(err, "failed to save upload")
	}

	result, err := s.provider.Diagnose(ctx, storedName)
	if err != nil {
		return nil, s.internalError(err, "diagnosis provider failed")
	}

	record := &models.AnalysisRecord{
		UserEmail:   userEmail,
		Disease:     result.Disease,
		Confidence:  result.Confidence,
		Description: result.Description,
		Treatment:   result.Treatment,
		Filename:    storedName,
	}

	// The file stays on disk even if this write fails; a stored image
	// without a record is accepted inconsistency.
	if err := s.analysisRepo.Create(ctx, record); err != nil {
		return nil, s.internalError(err, "failed to persist analysis record")
	}

	log.Info().
		Str("disease", result.Disease).
		Float64("confidence", result.Confidence).
		Str("email", userEmail).
		Msg("Detection completed")

	return &DetectionResult{
		Disease:     result.Disease,
		Confidence:  result.Confidence,
		Description: result.Description,
		Treatment:   result.Treatment,
		Severity:    result.Severity,
		Filename:    storedName,
		Timestamp:   time.Now(),
	}, nil
}

// History returns the most recent analysis records for a user, newest
// first, truncated to limit.
func (s *DetectionService) History(ctx context.Context, userEmail string, limit int) ([]*models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	return s.analysisRepo.ListByUserEmail(ctx, userEmail, limit)
}

// internalError wraps a pipeline failure: full detail is kept server-side,
// the caller sees only the generic detection failure message.
func (s *DetectionService) internalError(err error, context string) *utils.AppError {
	return &utils.AppError{
		Err:        utils.ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgDetectionFailed,
		DevInfo:    context + ": " + err.Error(),
	}
}
