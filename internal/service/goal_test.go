package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/models"
	"github.com/teenbudget/backend/internal/repository"
)

// fakeStore implements Store in memory for service tests
type fakeStore struct {
	users        map[string]*models.User
	nextUserID   int64
	transactions []models.Transaction
	goals        map[int64]*models.SavingsGoal
	nextGoalID   int64
	analyses     []*models.AnalysisRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*models.User),
		nextUserID: 1,
		goals:      make(map[int64]*models.SavingsGoal),
		nextGoalID: 1,
	}
}

func (f *fakeStore) CreateUser(user *models.User) error {
	user.ID = f.nextUserID
	f.nextUserID++
	f.users[user.Email] = user
	return nil
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) SetVerificationCode(email, code string) error {
	user, err := f.FindUserByEmail(email)
	if err != nil {
		return err
	}
	user.VerificationCode = code
	return nil
}

func (f *fakeStore) MarkEmailVerified(email string) error {
	user, err := f.FindUserByEmail(email)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	user.VerificationCode = ""
	return nil
}

func (f *fakeStore) SetResetCode(email, code string) error {
	user, err := f.FindUserByEmail(email)
	if err != nil {
		return err
	}
	user.ResetCode = code
	return nil
}

func (f *fakeStore) UpdatePassword(email, passwordHash string) error {
	user, err := f.FindUserByEmail(email)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.ResetCode = ""
	return nil
}

func (f *fakeStore) CreateTransaction(t *models.Transaction) error {
	t.ID = int64(len(f.transactions) + 1)
	f.transactions = append(f.transactions, *t)
	return nil
}

func (f *fakeStore) ListTransactions(userID int64) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTransactionsBetween(userID int64, from, to time.Time) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, t := range f.transactions {
		if t.UserID == userID && !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateGoal(goal *models.SavingsGoal) error {
	goal.ID = f.nextGoalID
	f.nextGoalID++
	for i := range goal.Milestones {
		goal.Milestones[i].GoalID = goal.ID
		goal.Milestones[i].ID = int64(i + 1)
	}
	copied := *goal
	f.goals[goal.ID] = &copied
	return nil
}

func (f *fakeStore) FindGoal(goalID int64) (*models.SavingsGoal, error) {
	goal, ok := f.goals[goalID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *goal
	copied.Milestones = append([]models.Milestone(nil), goal.Milestones...)
	return &copied, nil
}

func (f *fakeStore) ListGoals(userID int64) ([]models.SavingsGoal, error) {
	out := make([]models.SavingsGoal, 0)
	for _, goal := range f.goals {
		if goal.UserID == userID {
			out = append(out, *goal)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateMilestone(goalID int64, seq int, completed bool, currentAmount decimal.Decimal) error {
	goal, ok := f.goals[goalID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range goal.Milestones {
		if goal.Milestones[i].Seq == seq {
			goal.Milestones[i].IsCompleted = completed
			goal.CurrentAmount = currentAmount
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) ListUpcomingMilestones(now, before time.Time) ([]repository.MilestoneReminder, error) {
	return nil, nil
}

func (f *fakeStore) CreateAnalysis(rec *models.AnalysisRecord) error {
	rec.ID = int64(len(f.analyses) + 1)
	f.analyses = append(f.analyses, rec)
	return nil
}

func (f *fakeStore) LastAnalysis(userID int64) (*models.AnalysisRecord, error) {
	for i := len(f.analyses) - 1; i >= 0; i-- {
		if f.analyses[i].UserID == userID {
			return f.analyses[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeMailer records outgoing mail
type fakeMailer struct {
	verificationCodes map[string]string
	resetCodes        map[string]string
	reports           int
	reminders         int
	failAll           bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verificationCodes: make(map[string]string),
		resetCodes:        make(map[string]string),
	}
}

func (f *fakeMailer) SendVerificationCode(to, name, code string) error {
	if f.failAll {
		return errMailDown
	}
	f.verificationCodes[to] = code
	return nil
}

func (f *fakeMailer) SendPasswordResetCode(to, name, code string) error {
	if f.failAll {
		return errMailDown
	}
	f.resetCodes[to] = code
	return nil
}

func (f *fakeMailer) SendMilestoneReminder(to, name, goalName string, dueDate time.Time, amount decimal.Decimal) error {
	if f.failAll {
		return errMailDown
	}
	f.reminders++
	return nil
}

func (f *fakeMailer) SendReport(to, name string, pdf []byte) error {
	if f.failAll {
		return errMailDown
	}
	f.reports++
	return nil
}

var errMailDown = errors.New("smtp unreachable")

func newTestService(store Store, mail Mailer) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewService(store, nil, nil, mail, log, cfg)
}

func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), "userID", userID)
}

func TestBuildMilestonesQuarterSplit(t *testing.T) {
	now := time.Now()
	deadline := now.AddDate(0, 0, 120)

	milestones := buildMilestones(decimal.NewFromInt(1000), now, deadline)

	if len(milestones) != 4 {
		t.Fatalf("got %d milestones, want 4", len(milestones))
	}
	wantAmounts := []int64{250, 500, 750, 1000}
	for i, m := range milestones {
		if !m.TargetAmount.Equal(decimal.NewFromInt(wantAmounts[i])) {
			t.Errorf("milestone %d target = %s, want %d", m.Seq, m.TargetAmount, wantAmounts[i])
		}
		wantDue := now.AddDate(0, 0, 30*(i+1))
		diff := m.DueDate.Sub(wantDue)
		if diff < -24*time.Hour || diff > 24*time.Hour {
			t.Errorf("milestone %d due %s, want about %s", m.Seq, m.DueDate, wantDue)
		}
	}
}

func TestToggleMilestoneRecomputesCurrentAmount(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeMailer())
	ctx := authedContext("1")

	goal, err := svc.CreateGoal(ctx, "New phone", decimal.NewFromInt(1000), time.Now().AddDate(0, 0, 120))
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	// complete milestone 3 out of order
	updated, err := svc.ToggleMilestone(ctx, goal.ID, 3)
	if err != nil {
		t.Fatalf("ToggleMilestone failed: %v", err)
	}
	if !updated.CurrentAmount.Equal(decimal.NewFromInt(750)) {
		t.Errorf("current amount after completing milestone 3 = %s, want 750", updated.CurrentAmount)
	}

	// untoggle with no earlier milestones completed
	updated, err = svc.ToggleMilestone(ctx, goal.ID, 3)
	if err != nil {
		t.Fatalf("ToggleMilestone (untoggle) failed: %v", err)
	}
	if !updated.CurrentAmount.Equal(decimal.Zero) {
		t.Errorf("current amount after untoggling = %s, want 0", updated.CurrentAmount)
	}
}

func TestToggleMilestoneFallsBackToEarlierCompleted(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeMailer())
	ctx := authedContext("1")

	goal, err := svc.CreateGoal(ctx, "Trip", decimal.NewFromInt(400), time.Now().AddDate(0, 0, 40))
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	if _, err := svc.ToggleMilestone(ctx, goal.ID, 1); err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	updated, err := svc.ToggleMilestone(ctx, goal.ID, 4)
	if err != nil {
		t.Fatalf("toggle 4: %v", err)
	}
	if !updated.CurrentAmount.Equal(decimal.NewFromInt(400)) {
		t.Errorf("current = %s, want 400", updated.CurrentAmount)
	}

	// untoggling 4 falls back to milestone 1's cumulative target
	updated, err = svc.ToggleMilestone(ctx, goal.ID, 4)
	if err != nil {
		t.Fatalf("untoggle 4: %v", err)
	}
	if !updated.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("current after fallback = %s, want 100", updated.CurrentAmount)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeMailer())
	ctx := authedContext("1")

	if _, err := svc.CreateGoal(ctx, "x", decimal.Zero, time.Now().AddDate(0, 0, 10)); err == nil {
		t.Error("expected error for non-positive target")
	}
	if _, err := svc.CreateGoal(ctx, "x", decimal.NewFromInt(100), time.Now().AddDate(0, 0, -1)); err == nil {
		t.Error("expected error for past deadline")
	}
}

func TestToggleMilestoneOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeMailer())

	goal, err := svc.CreateGoal(authedContext("1"), "Bike", decimal.NewFromInt(800), time.Now().AddDate(0, 0, 80))
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	if _, err := svc.ToggleMilestone(authedContext("2"), goal.ID, 1); err == nil {
		t.Error("expected ownership error for another user's goal")
	}
}
