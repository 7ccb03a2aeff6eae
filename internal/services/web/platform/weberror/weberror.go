// Package weberror renders user-safe JSON error responses for web modules.
package weberror

import (
	"net/http"

	apperrors "github.com/louisbranch/tastebuds/internal/services/web/platform/errors"
	"github.com/louisbranch/tastebuds/internal/services/web/platform/httpx"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// PublicMessage resolves a user-safe error message. Server faults never leak
// upstream detail.
func PublicMessage(err error) string {
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteError writes a JSON error response derived from the error's kind.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	httpx.WriteJSON(w, statusCode, errorBody{Error: errorDetail{
		Status:  statusCode,
		Message: PublicMessage(err),
	}})
}

// WriteNotFound writes the standard JSON not-found response.
func WriteNotFound(w http.ResponseWriter) {
	WriteError(w, apperrors.E(apperrors.KindNotFound, "not found"))
}
