package handler

import (
	"errors"
	"net/http"

	"github.com/teenbudget/backend/internal/integrations/advisor"
	"github.com/teenbudget/backend/internal/models"
)

type analysisRequest struct {
	Period string `json:"period"`
}

// GenerateAnalysis runs the full aggregation-and-advice pipeline
func (h *Handler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.GenerateAnalysis(r.Context(), req.Period)
	if errors.Is(err, advisor.ErrMalformedResponse) {
		h.respondError(w, http.StatusBadGateway, "advisor returned an unusable response")
		return
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// SaveAnalysis appends a client-supplied analysis record to the history
func (h *Handler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	var rec models.AnalysisRecord
	if err := h.decode(r, &rec); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SaveAnalysis(r.Context(), &rec); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, rec)
}

// LastAnalysis returns the most recent analysis record
func (h *Handler) LastAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.LastAnalysis(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, rec)
}
