package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/models"
)

// CreateGoal inserts a goal together with its milestones in one transaction
func (r *Repository) CreateGoal(goal *models.SavingsGoal) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin goal transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teenbudget.savings_goals (user_id, name, target_amount, current_amount, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = tx.QueryRow(query, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline).
		Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	milestoneQuery := `
		INSERT INTO teenbudget.milestones (goal_id, seq, due_date, target_amount, description, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range goal.Milestones {
		m := &goal.Milestones[i]
		m.GoalID = goal.ID
		if err := tx.QueryRow(milestoneQuery, m.GoalID, m.Seq, m.DueDate, m.TargetAmount,
			m.Description, m.IsCompleted).Scan(&m.ID); err != nil {
			return fmt.Errorf("failed to create milestone %d: %w", m.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit goal: %w", err)
	}
	return nil
}

// FindGoal retrieves a goal with its milestones
func (r *Repository) FindGoal(goalID int64) (*models.SavingsGoal, error) {
	goal := &models.SavingsGoal{}
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
		FROM teenbudget.savings_goals
		WHERE id = $1`
	err := r.db.QueryRow(query, goalID).
		Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
			&goal.Deadline, &goal.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	milestones, err := r.listMilestones(goalID)
	if err != nil {
		return nil, err
	}
	goal.Milestones = milestones
	return goal, nil
}

// ListGoals retrieves all goals of a user with their milestones
func (r *Repository) ListGoals(userID int64) ([]models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
		FROM teenbudget.savings_goals
		WHERE user_id = $1
		ORDER BY deadline ASC, id ASC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := make([]models.SavingsGoal, 0)
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.Deadline, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}

	for i := range goals {
		milestones, err := r.listMilestones(goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].Milestones = milestones
	}
	return goals, nil
}

// UpdateMilestone persists a milestone toggle and the recomputed goal amount
func (r *Repository) UpdateMilestone(goalID int64, seq int, completed bool, currentAmount decimal.Decimal) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin milestone transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE teenbudget.milestones
		SET is_completed = $3
		WHERE goal_id = $1 AND seq = $2`, goalID, seq, completed)
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`
		UPDATE teenbudget.savings_goals
		SET current_amount = $2
		WHERE id = $1`, goalID, currentAmount); err != nil {
		return fmt.Errorf("failed to update goal amount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit milestone update: %w", err)
	}
	return nil
}

// MilestoneReminder carries what the reminder job needs per upcoming milestone
type MilestoneReminder struct {
	Email        string
	Name         string
	GoalName     string
	Seq          int
	DueDate      time.Time
	TargetAmount decimal.Decimal
}

// ListUpcomingMilestones returns incomplete milestones due inside (now, before]
func (r *Repository) ListUpcomingMilestones(now, before time.Time) ([]MilestoneReminder, error) {
	query := `
		SELECT u.email, u.name, g.name, m.seq, m.due_date, m.target_amount
		FROM teenbudget.milestones m
		JOIN teenbudget.savings_goals g ON g.id = m.goal_id
		JOIN teenbudget.users u ON u.id = g.user_id
		WHERE m.is_completed = FALSE AND m.due_date > $1 AND m.due_date <= $2
		ORDER BY m.due_date ASC`
	rows, err := r.db.Query(query, now, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming milestones: %w", err)
	}
	defer rows.Close()

	reminders := make([]MilestoneReminder, 0)
	for rows.Next() {
		var rem MilestoneReminder
		if err := rows.Scan(&rem.Email, &rem.Name, &rem.GoalName, &rem.Seq,
			&rem.DueDate, &rem.TargetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan milestone reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read milestone reminders: %w", err)
	}
	return reminders, nil
}

func (r *Repository) listMilestones(goalID int64) ([]models.Milestone, error) {
	query := `
		SELECT id, goal_id, seq, due_date, target_amount, description, is_completed
		FROM teenbudget.milestones
		WHERE goal_id = $1
		ORDER BY seq ASC`
	rows, err := r.db.Query(query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	milestones := make([]models.Milestone, 0, models.MilestoneCount)
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Seq, &m.DueDate, &m.TargetAmount,
			&m.Description, &m.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read milestones: %w", err)
	}
	return milestones, nil
}
