package advisor

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/analytics"
	"github.com/teenbudget/backend/internal/models"
)

// FixtureClient returns a deterministic analysis derived from the request,
// for development and tests. It replaces ad hoc hardcoded responses: there is
// exactly one fixture and it is selected by configuration, never inline.
type FixtureClient struct {
	log *logrus.Logger
}

// NewFixtureClient initializes the fixture advisor
func NewFixtureClient(log *logrus.Logger) *FixtureClient {
	return &FixtureClient{log: log}
}

// Analyze builds a canned result shaped exactly like a live response
func (c *FixtureClient) Analyze(_ context.Context, req Request) (*models.AnalysisResult, error) {
	top := analytics.TopCategory(req.CategorySummary)
	if top == "" {
		top = "nothing yet"
	}
	spent, _ := req.TotalSpent.Float64()
	potential := spent * 0.1

	breakdown := make([]models.CategoryInsight, 0, len(req.CategorySummary))
	categories := make([]string, 0, len(req.CategorySummary))
	for category := range req.CategorySummary {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		amount, _ := req.CategorySummary[category].Float64()
		share := 0.0
		if spent > 0 {
			share = amount / spent * 100
		}
		breakdown = append(breakdown, models.CategoryInsight{
			Category: category,
			Amount:   amount,
			Share:    share,
			Comment:  fmt.Sprintf("You spent %.2f on %s this period.", amount, category),
		})
	}

	result := &models.AnalysisResult{
		Summary: models.AnalysisSummary{
			MainFindings: fmt.Sprintf("Over period %q you spent %s in total; most of it went to %s.",
				req.Period, req.TotalSpent, top),
			KeyInsights: []string{
				fmt.Sprintf("Your biggest spending category is %s.", top),
				fmt.Sprintf("Your balance for the period is %s.", req.TotalBalance),
			},
			RiskAreas:        []string{fmt.Sprintf("Watch your %s spending.", top)},
			SavingsPotential: potential,
		},
		CategoryBreakdown: breakdown,
		Behavioral: models.BehavioralInsights{
			SpendingPatterns:  "Spending is spread over the period without strong spikes.",
			EmotionalTriggers: []string{"Impulse purchases on weekends"},
			SocialFactors:     "Outings with friends drive part of the spending.",
		},
		Recommendations: models.Recommendations{
			Immediate: []string{fmt.Sprintf("Set a weekly limit for %s.", top)},
			ShortTerm: []string{"Put aside 10% of any money you receive."},
			LongTerm:  []string{"Open a savings goal and track milestones."},
		},
		Education: models.Education{
			FinancialLiteracy: "Budgeting basics: income, expenses and the difference between them.",
			PracticalSkills:   []string{"Track every expense for one week"},
			Resources:         []string{"A beginner's guide to budgeting"},
		},
		Projections: models.Projections{
			NextMonth:      fmt.Sprintf("At the current pace you will spend about %s next month.", req.TotalSpent),
			ThreeMonths:    "Three months of the same habits keep your balance flat.",
			SavingsOneYear: fmt.Sprintf("Saving 10%% of spending adds up to about %.2f in a year.", potential*12),
		},
	}

	c.log.Debugf("Fixture analysis generated for period %q", req.Period)
	return result, nil
}
