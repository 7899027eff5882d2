package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MilestoneCount is the fixed number of checkpoints a goal is split into
const MilestoneCount = 4

// SavingsGoal represents a savings target with a deadline and intermediate milestones
type SavingsGoal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      time.Time       `json:"deadline"`
	Milestones    []Milestone     `json:"milestones"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Milestone is an intermediate savings checkpoint. TargetAmount is cumulative:
// completing milestone N asserts the goal has reached that amount.
type Milestone struct {
	ID           int64           `json:"id"`
	GoalID       int64           `json:"goal_id"`
	Seq          int             `json:"seq"`
	DueDate      time.Time       `json:"due_date"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Description  string          `json:"description"`
	IsCompleted  bool            `json:"is_completed"`
}
