package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/service"
)

type createTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date" validate:"required"`
}

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	t, err := h.svc.CreateTransaction(r.Context(), service.CreateTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, t)
}

// ListTransactions returns all transactions of the authenticated user
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}
