// Package advisor turns aggregated spending data into a query against an
// external text-completion provider and parses its structured response.
package advisor

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/analytics"
	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/models"
)

// ErrMalformedResponse reports that the provider answered but the answer did
// not match the required schema. Distinct from transport errors so callers
// can tell "model unreachable" from "model returned garbage".
var ErrMalformedResponse = errors.New("advisor: malformed model response")

// Request carries everything the model needs to analyze a period
type Request struct {
	Transactions    []models.Transaction       `json:"transactions"`
	Period          string                     `json:"period"`
	TotalSpent      decimal.Decimal            `json:"total_spent"`
	TotalBalance    decimal.Decimal            `json:"total_balance"`
	TotalIncome     decimal.Decimal            `json:"total_income"`
	CategorySummary map[string]decimal.Decimal `json:"category_summary"`
	Patterns        analytics.SpendingPatterns `json:"spending_patterns"`
	Trend           []analytics.TrendPoint     `json:"trends"`
}

// Client produces an analysis for a spending summary
type Client interface {
	Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error)
}

// New selects the client implementation configured by ADVISOR_MODE
func New(cfg *config.Config, log *logrus.Logger) Client {
	if cfg.AdvisorMode == "fixture" {
		return NewFixtureClient(log)
	}
	return NewLiveClient(cfg, log)
}
