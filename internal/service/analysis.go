package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/teenbudget/backend/internal/analytics"
	"github.com/teenbudget/backend/internal/integrations/advisor"
	"github.com/teenbudget/backend/internal/models"
)

// GenerateAnalysis aggregates the user's recent transactions, asks the
// advisor for an analysis and appends it to the analysis history. The
// persistence step is best effort: its failure is logged, not surfaced.
func (s *Service) GenerateAnalysis(ctx context.Context, period string) (*models.AnalysisResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactionsBetween(userID, from, time.Now())
	if err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(transactions)
	if summary.Skipped > 0 {
		s.log.Warnf("Analysis for user %d skipped %d transactions without a usable date",
			userID, summary.Skipped)
	}

	result, err := s.advisor.Analyze(ctx, advisor.Request{
		Transactions:    transactions,
		Period:          period,
		TotalSpent:      summary.TotalExpenses,
		TotalBalance:    summary.Balance,
		TotalIncome:     summary.TotalIncome,
		CategorySummary: summary.CategoryTotals,
		Patterns:        summary.Patterns,
		Trend:           summary.Trend,
	})
	if err != nil {
		return nil, err
	}

	rec, err := FlattenAnalysis(userID, result, summary)
	if err != nil {
		s.log.Errorf("Failed to flatten analysis for user %d: %v", userID, err)
		return result, nil
	}
	if err := s.store.CreateAnalysis(rec); err != nil {
		s.log.Errorf("Failed to persist analysis for user %d: %v", userID, err)
		return result, nil
	}
	s.cache.InvalidateAnalysis(ctx, userID)

	return result, nil
}

// SaveAnalysis appends a client-supplied analysis record to the history
func (s *Service) SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	if err := s.store.CreateAnalysis(rec); err != nil {
		return err
	}
	s.cache.InvalidateAnalysis(ctx, userID)
	return nil
}

// LastAnalysis returns the most recent analysis record, read through cache
func (s *Service) LastAnalysis(ctx context.Context) (*models.AnalysisRecord, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetLastAnalysis(ctx, userID); ok {
		return cached, nil
	}

	rec, err := s.store.LastAnalysis(userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetLastAnalysis(ctx, userID, rec)
	return rec, nil
}

// FlattenAnalysis projects the nested advisor result onto the flat history
// row; list-valued sections are serialized as JSON strings.
func FlattenAnalysis(userID int64, result *models.AnalysisResult, summary analytics.Summary) (*models.AnalysisRecord, error) {
	keyInsights, err := json.Marshal(result.Summary.KeyInsights)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	riskAreas, err := json.Marshal(result.Summary.RiskAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	breakdown, err := json.Marshal(result.CategoryBreakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	triggers, err := json.Marshal(result.Behavioral.EmotionalTriggers)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	immediate, err := json.Marshal(result.Recommendations.Immediate)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	shortTerm, err := json.Marshal(result.Recommendations.ShortTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	longTerm, err := json.Marshal(result.Recommendations.LongTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	skills, err := json.Marshal(result.Education.PracticalSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	resources, err := json.Marshal(result.Education.Resources)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	return &models.AnalysisRecord{
		UserID:                   userID,
		TotalIncome:              summary.TotalIncome,
		TotalExpense:             summary.TotalExpenses,
		TotalBalance:             summary.Balance,
		SavingsRate:              analytics.SavingsRate(summary.TotalIncome, summary.TotalExpenses),
		MainFindings:             result.Summary.MainFindings,
		KeyInsights:              string(keyInsights),
		RiskAreas:                string(riskAreas),
		TopCategory:              analytics.TopCategory(summary.CategoryTotals),
		CategoryBreakdown:        string(breakdown),
		SpendingPatterns:         result.Behavioral.SpendingPatterns,
		EmotionalTriggers:        string(triggers),
		SocialFactors:            result.Behavioral.SocialFactors,
		ImmediateRecommendations: string(immediate),
		ShortTermRecommendations: string(shortTerm),
		LongTermRecommendations:  string(longTerm),
		FinancialLiteracy:        result.Education.FinancialLiteracy,
		PracticalSkills:          string(skills),
		Resources:                string(resources),
		ProjectionNextMonth:      result.Projections.NextMonth,
		ProjectionThreeMonths:    result.Projections.ThreeMonths,
		ProjectionSavingsYear:    result.Projections.SavingsOneYear,
		Date:                     time.Now(),
	}, nil
}

// periodStart maps a period selection onto its range start
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month", "":
		return now.AddDate(0, -1, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	case "all":
		return time.Unix(0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}
