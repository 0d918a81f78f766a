package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/claimdesk/claimdesk/internal/repository"
	"github.com/claimdesk/claimdesk/internal/service"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps a service error onto a status code and writes the error body.
func Error(w http.ResponseWriter, err error) {
	var (
		validationErr     *service.ValidationError
		uploadErr         *service.UploadError
		persistenceErr    *service.PersistenceError
		classificationErr *service.ClassificationError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrClaimNotFound), errors.Is(err, repository.ErrMediaNotFound):
		status = http.StatusNotFound
	case errors.As(err, &uploadErr), errors.As(err, &classificationErr):
		status = http.StatusBadGateway
	case errors.As(err, &persistenceErr):
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}
