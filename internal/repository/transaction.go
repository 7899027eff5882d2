package repository

import (
	"fmt"
	"time"

	"github.com/teenbudget/backend/internal/models"
)

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO teenbudget.transactions (user_id, type, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, t.UserID, t.Type, t.Amount, t.Category, t.Description, t.Date).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves all transactions of a user, newest first
func (r *Repository) ListTransactions(userID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM teenbudget.transactions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`
	return r.queryTransactions(query, userID)
}

// ListTransactionsBetween retrieves a user's transactions inside a date range
func (r *Repository) ListTransactionsBetween(userID int64, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM teenbudget.transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, id ASC`
	return r.queryTransactions(query, userID, from, to)
}

func (r *Repository) queryTransactions(query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	// empty slice, not nil, so handlers encode [] instead of null
	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category,
			&t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}
