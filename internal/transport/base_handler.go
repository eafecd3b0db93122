package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError renders the error envelope with the error's own status.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *errors.AppError) {
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// WriteError renders a plain message as the error envelope, inferring the
// error type from the status code.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)

	var appErr *errors.AppError
	switch status {
	case http.StatusBadRequest:
		appErr = errors.NewValidationError(message, errors.ErrCodeValidationFailed)
	case http.StatusNotFound:
		appErr = &errors.AppError{
			Type:       errors.ErrorTypeNotFound,
			Code:       "NOT_FOUND",
			Message:    message,
			StatusCode: status,
		}
	default:
		appErr = &errors.AppError{
			Type:       errors.ErrorTypeInternal,
			Code:       "INTERNAL_ERROR",
			Message:    message,
			StatusCode: status,
		}
	}

	h.WriteAppError(w, appErr)
}

// HandleServiceError maps service errors onto the HTTP contract. Known
// application errors carry their own status; anything else is reported as a
// generic internal error without leaking its cause.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}

	h.Logger.Error("unhandled service error", "error", err)
	h.WriteAppError(w, errors.NewInternalError("erro interno do servidor", err))
}
