// Package rest exposes the HTTP API: thin chi handlers that decode and
// validate requests, call the services, and translate errors to status
// codes.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "studio-backend/pkg/errors"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses. Conflicts cover
// both constraint violations and rejected transactions: in either case
// the client re-reads and retries with fresh state.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrorTypeConstraintViolation,
			apperrors.ErrorTypeTransactionConflict,
			apperrors.ErrorTypeInconsistentRef:
			status = http.StatusConflict
		case apperrors.ErrorTypeUpstreamFailure:
			status = http.StatusBadGateway
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode reads and validates a JSON request body.
func decode(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return apperrors.NewValidation(err.Error())
	}
	return nil
}
