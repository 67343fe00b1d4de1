// Package utils provides utility functions and helpers for the application.
// This file implements the JSON response helpers used by every handler.
//
// Success bodies are the payloads themselves; error bodies are always a JSON
// object with a single human-readable "error" field. Keeping the writers here
// ensures every endpoint follows the same wire contract.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/constants"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// JSON sends a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	jsonData, err := json.Marshal(data)
	if err != nil {
		// If marshaling fails, log the error and send a simple error response
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		if _, err := w.Write([]byte(`{"error":"Failed to generate response"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		// Log write errors but don't try to recover
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// Error sends an error response with the given status code and message.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, errorBody{Error: message})
}

// ErrorFromAppError sends an error response based on an AppError.
// The user-facing message is written to the body; developer detail is
// logged server-side only.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	if err.DevInfo != "" {
		log.Error().
			Int("status", err.StatusCode).
			Str("dev_info", err.DevInfo).
			Msg(err.Message)
	}
	Error(w, err.StatusCode, err.Message)
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgMissingToken
	}
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgEndpointNotFound
	}
	Error(w, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict response with the given message.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// PayloadTooLarge sends a 413 Request Entity Too Large response.
func PayloadTooLarge(w http.ResponseWriter) {
	Error(w, http.StatusRequestEntityTooLarge, constants.MsgFileTooLarge)
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.MsgInternalServerError)
}
