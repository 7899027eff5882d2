package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teenbudget/backend/internal/models"
)

// CreateGoal stores a savings goal split into four milestones
func (s *Service) CreateGoal(ctx context.Context, name string, target decimal.Decimal, deadline time.Time) (*models.SavingsGoal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !target.IsPositive() {
		return nil, fmt.Errorf("target amount must be positive")
	}
	if !deadline.After(now) {
		return nil, fmt.Errorf("deadline must be in the future")
	}

	goal := &models.SavingsGoal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Milestones:    buildMilestones(target, now, deadline),
	}
	if err := s.store.CreateGoal(goal); err != nil {
		return nil, err
	}

	s.log.Infof("Savings goal created for user %d: %q target %s by %s",
		userID, name, target, deadline.Format("2006-01-02"))
	return goal, nil
}

// ListGoals returns all goals of the authenticated user
func (s *Service) ListGoals(ctx context.Context) ([]models.SavingsGoal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListGoals(userID)
}

// ToggleMilestone flips a milestone's completed flag and recomputes the
// goal's current amount from the completed set.
func (s *Service) ToggleMilestone(ctx context.Context, goalID int64, seq int) (*models.SavingsGoal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := s.store.FindGoal(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal does not belong to user")
	}

	var toggled *models.Milestone
	for i := range goal.Milestones {
		if goal.Milestones[i].Seq == seq {
			toggled = &goal.Milestones[i]
			break
		}
	}
	if toggled == nil {
		return nil, fmt.Errorf("milestone %d not found", seq)
	}

	toggled.IsCompleted = !toggled.IsCompleted
	goal.CurrentAmount = recomputeCurrentAmount(goal.Milestones)

	if err := s.store.UpdateMilestone(goalID, seq, toggled.IsCompleted, goal.CurrentAmount); err != nil {
		return nil, err
	}

	s.log.Infof("Milestone %d of goal %d set completed=%v, current amount %s",
		seq, goalID, toggled.IsCompleted, goal.CurrentAmount)
	return goal, nil
}

// buildMilestones splits the time until deadline into four equal intervals
// and the target into four equal cumulative checkpoints.
func buildMilestones(target decimal.Decimal, now, deadline time.Time) []models.Milestone {
	total := deadline.Sub(now)
	count := int64(models.MilestoneCount)

	milestones := make([]models.Milestone, 0, models.MilestoneCount)
	for i := int64(1); i <= count; i++ {
		due := now.Add(time.Duration(i) * total / time.Duration(count))
		cumulative := target.Mul(decimal.NewFromInt(i)).Div(decimal.NewFromInt(count))
		milestones = append(milestones, models.Milestone{
			Seq:          int(i),
			DueDate:      due,
			TargetAmount: cumulative,
			Description:  fmt.Sprintf("Save %s by %s", cumulative.StringFixed(2), due.Format("2006-01-02")),
		})
	}
	return milestones
}

// recomputeCurrentAmount derives the saved amount from the completed set:
// the highest completed milestone's cumulative target, or zero. Completing a
// milestone out of order asserts the cumulative amount through it, so the
// rule stays well-defined without enforcing completion order.
func recomputeCurrentAmount(milestones []models.Milestone) decimal.Decimal {
	current := decimal.Zero
	for _, m := range milestones {
		if m.IsCompleted && m.TargetAmount.GreaterThan(current) {
			current = m.TargetAmount
		}
	}
	return current
}
