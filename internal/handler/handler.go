package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/repository"
	"github.com/teenbudget/backend/internal/service"
)

// Handler wires HTTP requests to the service layer
type Handler struct {
	svc      *service.Service
	log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		log:      log,
		validate: validator.New(),
	}
}

// decode parses and validates a JSON request body
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.log.Errorf("Failed to encode response: %v", err)
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps service errors to status codes
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	default:
		h.respondError(w, http.StatusBadRequest, err.Error())
	}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
