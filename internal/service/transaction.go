package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/models"
)

// CreateTransactionInput carries a validated create request
type CreateTransactionInput struct {
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// CreateTransaction stores a new transaction for the authenticated user
func (s *Service) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return nil, fmt.Errorf("transaction type must be %q or %q", models.TypeIncome, models.TypeExpense)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	t := &models.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.store.CreateTransaction(t); err != nil {
		return nil, err
	}

	s.cache.InvalidateTransactions(ctx, userID)
	s.log.Infof("Transaction created for user %d: %s %s (%s)", userID, t.Type, t.Amount, t.Category)
	return t, nil
}

// ListTransactions returns all transactions of the authenticated user
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetTransactions(ctx, userID); ok {
		return cached, nil
	}

	transactions, err := s.store.ListTransactions(userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetTransactions(ctx, userID, transactions)
	return transactions, nil
}
