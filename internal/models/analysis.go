package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisSummary is the overall verdict section of an analysis
type AnalysisSummary struct {
	MainFindings     string   `json:"main_findings"`
	KeyInsights      []string `json:"key_insights"`
	RiskAreas        []string `json:"risk_areas"`
	SavingsPotential float64  `json:"savings_potential"`
}

// CategoryInsight is one entry of the per-category breakdown
type CategoryInsight struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"`
	Comment  string  `json:"comment"`
}

// BehavioralInsights describes spending habits observed in the data
type BehavioralInsights struct {
	SpendingPatterns  string   `json:"spending_patterns"`
	EmotionalTriggers []string `json:"emotional_triggers"`
	SocialFactors     string   `json:"social_factors"`
}

// Recommendations groups advice by time horizon
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// Education is the financial-literacy guidance section
type Education struct {
	FinancialLiteracy string   `json:"financial_literacy"`
	PracticalSkills   []string `json:"practical_skills"`
	Resources         []string `json:"resources"`
}

// Projections holds forward-looking estimates as free text
type Projections struct {
	NextMonth      string `json:"next_month"`
	ThreeMonths    string `json:"three_months"`
	SavingsOneYear string `json:"savings_one_year"`
}

// AnalysisResult is the fixed response shape expected from the advisor
type AnalysisResult struct {
	Summary           AnalysisSummary    `json:"summary"`
	CategoryBreakdown []CategoryInsight  `json:"category_breakdown"`
	Behavioral        BehavioralInsights `json:"behavioral_insights"`
	Recommendations   Recommendations    `json:"recommendations"`
	Education         Education          `json:"education"`
	Projections       Projections        `json:"projections"`
}

// AnalysisRecord is the flattened analysis-history row persisted per
// generation event. List-valued sections are stored as JSON strings.
type AnalysisRecord struct {
	ID                       int64           `json:"id"`
	UserID                   int64           `json:"user_id"`
	TotalIncome              decimal.Decimal `json:"total_income"`
	TotalExpense             decimal.Decimal `json:"total_expense"`
	TotalBalance             decimal.Decimal `json:"total_balance"`
	SavingsRate              float64         `json:"savings_rate"`
	MainFindings             string          `json:"main_findings"`
	KeyInsights              string          `json:"key_insights"`
	RiskAreas                string          `json:"risk_areas"`
	TopCategory              string          `json:"top_category"`
	CategoryBreakdown        string          `json:"category_breakdown"`
	SpendingPatterns         string          `json:"spending_patterns"`
	EmotionalTriggers        string          `json:"emotional_triggers"`
	SocialFactors            string          `json:"social_factors"`
	ImmediateRecommendations string          `json:"immediate_recommendations"`
	ShortTermRecommendations string          `json:"short_term_recommendations"`
	LongTermRecommendations  string          `json:"long_term_recommendations"`
	FinancialLiteracy        string          `json:"financial_literacy"`
	PracticalSkills          string          `json:"practical_skills"`
	Resources                string          `json:"resources"`
	ProjectionNextMonth      string          `json:"projection_next_month"`
	ProjectionThreeMonths    string          `json:"projection_three_months"`
	ProjectionSavingsYear    string          `json:"projection_savings_year"`
	Date                     time.Time       `json:"date"`
	CreatedAt                time.Time       `json:"created_at"`
}
