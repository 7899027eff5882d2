package repository

import (
	"database/sql"
	"fmt"

	"github.com/teenbudget/backend/internal/models"
)

// CreateAnalysis appends one analysis-history record for a user
func (r *Repository) CreateAnalysis(rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO teenbudget.expense_analyses (
			user_id, total_income, total_expense, total_balance, savings_rate,
			main_findings, key_insights, risk_areas, top_category, category_breakdown,
			spending_patterns, emotional_triggers, social_factors,
			immediate_recommendations, short_term_recommendations, long_term_recommendations,
			financial_literacy, practical_skills, resources,
			projection_next_month, projection_three_months, projection_savings_year,
			date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		rec.UserID, rec.TotalIncome, rec.TotalExpense, rec.TotalBalance, rec.SavingsRate,
		rec.MainFindings, rec.KeyInsights, rec.RiskAreas, rec.TopCategory, rec.CategoryBreakdown,
		rec.SpendingPatterns, rec.EmotionalTriggers, rec.SocialFactors,
		rec.ImmediateRecommendations, rec.ShortTermRecommendations, rec.LongTermRecommendations,
		rec.FinancialLiteracy, rec.PracticalSkills, rec.Resources,
		rec.ProjectionNextMonth, rec.ProjectionThreeMonths, rec.ProjectionSavingsYear,
		rec.Date,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// LastAnalysis returns the most recent analysis record of a user
func (r *Repository) LastAnalysis(userID int64) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{}
	query := `
		SELECT id, user_id, total_income, total_expense, total_balance, savings_rate,
			main_findings, key_insights, risk_areas, top_category, category_breakdown,
			spending_patterns, emotional_triggers, social_factors,
			immediate_recommendations, short_term_recommendations, long_term_recommendations,
			financial_literacy, practical_skills, resources,
			projection_next_month, projection_three_months, projection_savings_year,
			date, created_at
		FROM teenbudget.expense_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRow(query, userID).Scan(
		&rec.ID, &rec.UserID, &rec.TotalIncome, &rec.TotalExpense, &rec.TotalBalance, &rec.SavingsRate,
		&rec.MainFindings, &rec.KeyInsights, &rec.RiskAreas, &rec.TopCategory, &rec.CategoryBreakdown,
		&rec.SpendingPatterns, &rec.EmotionalTriggers, &rec.SocialFactors,
		&rec.ImmediateRecommendations, &rec.ShortTermRecommendations, &rec.LongTermRecommendations,
		&rec.FinancialLiteracy, &rec.PracticalSkills, &rec.Resources,
		&rec.ProjectionNextMonth, &rec.ProjectionThreeMonths, &rec.ProjectionSavingsYear,
		&rec.Date, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last analysis: %w", err)
	}
	return rec, nil
}
