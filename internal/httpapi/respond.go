package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondServiceError maps the service error kinds to HTTP statuses, keeping
// the user-facing message and hiding everything else.
func respondServiceError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		code = "invalid_request"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
	case errors.Is(err, service.ErrAuthentication):
		status = http.StatusUnauthorized
		code = "unauthenticated"
	case errors.Is(err, service.ErrAuthorization):
		status = http.StatusForbidden
		code = "permission_denied"
	case errors.Is(err, service.ErrExpiredToken):
		status = http.StatusUnauthorized
		code = "token_expired"
	case errors.Is(err, service.ErrDependency):
		status = http.StatusServiceUnavailable
		code = "service_unavailable"
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, status, code, err.Error())
}
