package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    apperr.Code `json:"code"`
	Details any         `json:"details,omitempty"`
}

// WriteError writes a structured error as an HTTP response with the
// appropriate status code.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal("An unexpected error occurred")
	}

	WriteJSON(w, StatusFromCode(appErr.Code), ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// StatusFromCode maps an error code to an HTTP status code.
func StatusFromCode(code apperr.Code) int {
	switch code {
	// 400 Bad Request: validation failures, and every credential failure on
	// the auth endpoints (the register/login surface uses 400, not 401/409)
	case apperr.CodeValidation,
		apperr.CodeWeakPassword,
		apperr.CodeDuplicateEmail,
		apperr.CodeBadCredentials,
		apperr.CodeUserNotFound:
		return http.StatusBadRequest

	// 401 Unauthorized: token failures on owner-scoped calls
	case apperr.CodeMissingToken,
		apperr.CodeTokenMalformed,
		apperr.CodeTokenExpired,
		apperr.CodeTokenInvalid,
		apperr.CodeUnknownUser:
		return http.StatusUnauthorized

	case apperr.CodeNotFound:
		return http.StatusNotFound

	case apperr.CodeRateLimited:
		return http.StatusTooManyRequests

	case apperr.CodeStoreUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
