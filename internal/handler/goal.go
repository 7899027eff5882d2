package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type createGoalRequest struct {
	Name         string          `json:"name" validate:"required"`
	TargetAmount decimal.Decimal `json:"target_amount" validate:"required"`
	Deadline     string          `json:"deadline" validate:"required"`
}

// CreateGoal handles savings goal creation
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
		return
	}

	goal, err := h.svc.CreateGoal(r.Context(), req.Name, req.TargetAmount, deadline)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, goal)
}

// ListGoals returns all savings goals of the authenticated user
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.ListGoals(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, goals)
}

// ToggleMilestone flips a milestone's completed flag
func (h *Handler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	seq, err := strconv.Atoi(vars["seq"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid milestone number")
		return
	}

	goal, err := h.svc.ToggleMilestone(r.Context(), goalID, seq)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, goal)
}
