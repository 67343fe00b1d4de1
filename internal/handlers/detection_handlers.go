package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/service"
	"github.com/cropportal/backend/internal/utils"
)

// DetectionHandler handles disease detection and analysis history.
type DetectionHandler struct {
	detectionService *service.DetectionService
}

// NewDetectionHandler creates a new DetectionHandler.
func NewDetectionHandler(detectionService *service.DetectionService) *DetectionHandler {
	return &DetectionHandler{
		detectionService: detectionService,
	}
}

// Detect handles POST /api/detect. The body size cap is enforced at this
// transport boundary before any byte reaches storage; oversized uploads
// fail with 413 without being read to completion.
func (h *DetectionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.GetEmail(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)

	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			utils.PayloadTooLarge(w)
			return
		}
		utils.BadRequest(w, constants.MsgNoFileUploaded)
		return
	}

	upload := &service.UploadedFile{}

	file, header, err := r.FormFile(constants.UploadFieldName)
	if err == nil {
		defer file.Close()
		upload.Present = true
		upload.Filename = header.Filename
		upload.Size = header.Size
		upload.Content = file
	} else if !errors.Is(err, http.ErrMissingFile) {
		utils.BadRequest(w, constants.MsgNoFileUploaded)
		return
	}

	result, err := h.detectionService.Detect(r.Context(), email, upload)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// History handles GET /api/history.
func (h *DetectionHandler) History(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.GetEmail(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	limit := constants.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.detectionService.History(r.Context(), email, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, constants.MsgHistoryFailed)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"user":    email,
		"results": records,
		"count":   len(records),
	})
}
