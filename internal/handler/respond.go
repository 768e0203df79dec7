package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"studybuddy-api/pkg/errors"
	"studybuddy-api/pkg/logger"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, logger *logger.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError writes an error response to the client. Non-AppError values are
// reported as opaque internal errors.
func writeError(w http.ResponseWriter, logger *logger.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("Internal server error", err)
	}

	if appErr.Type == errors.ErrorTypeInternal || appErr.Type == errors.ErrorTypeExternal {
		logger.WithError(appErr).Error("Request failed")
	} else {
		logger.WithError(appErr).Debug("Request rejected")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	writeJSON(w, logger, appErr.StatusCode, response)
}
