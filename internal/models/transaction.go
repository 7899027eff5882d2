package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single dated income or expense record
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
