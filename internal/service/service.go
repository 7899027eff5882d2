package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/cache"
	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/integrations/advisor"
	"github.com/teenbudget/backend/internal/models"
	"github.com/teenbudget/backend/internal/repository"
)

// Store is the persistence surface the service needs
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	SetVerificationCode(email, code string) error
	MarkEmailVerified(email string) error
	SetResetCode(email, code string) error
	UpdatePassword(email, passwordHash string) error

	CreateTransaction(t *models.Transaction) error
	ListTransactions(userID int64) ([]models.Transaction, error)
	ListTransactionsBetween(userID int64, from, to time.Time) ([]models.Transaction, error)

	CreateGoal(goal *models.SavingsGoal) error
	FindGoal(goalID int64) (*models.SavingsGoal, error)
	ListGoals(userID int64) ([]models.SavingsGoal, error)
	UpdateMilestone(goalID int64, seq int, completed bool, currentAmount decimal.Decimal) error
	ListUpcomingMilestones(now, before time.Time) ([]repository.MilestoneReminder, error)

	CreateAnalysis(rec *models.AnalysisRecord) error
	LastAnalysis(userID int64) (*models.AnalysisRecord, error)
}

// Mailer is the outgoing mail surface the service needs
type Mailer interface {
	SendVerificationCode(to, name, code string) error
	SendPasswordResetCode(to, name, code string) error
	SendMilestoneReminder(to, name, goalName string, dueDate time.Time, amount decimal.Decimal) error
	SendReport(to, name string, pdf []byte) error
}

// Service handles business logic
type Service struct {
	store   Store
	cache   *cache.Cache
	advisor advisor.Client
	mail    Mailer
	log     *logrus.Logger
	config  *config.Config
}

// NewService initializes a new service
func NewService(store Store, c *cache.Cache, adv advisor.Client, mail Mailer,
	log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, cache: c, advisor: adv, mail: mail, log: log, config: cfg}
}

// userIDFromContext extracts the authenticated user id set by the middleware
func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
