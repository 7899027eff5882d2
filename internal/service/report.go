package service

import (
	"context"
	"time"

	"github.com/teenbudget/backend/internal/analytics"
	"github.com/teenbudget/backend/internal/report"
)

// buildBundle fetches the range and aggregates it into a report bundle
func (s *Service) buildBundle(userID int64, from, to time.Time) (report.Bundle, error) {
	transactions, err := s.store.ListTransactionsBetween(userID, from, to)
	if err != nil {
		return report.Bundle{}, err
	}

	summary := analytics.Aggregate(transactions)
	if summary.Skipped > 0 {
		s.log.Warnf("Report for user %d skipped %d transactions without a usable date",
			userID, summary.Skipped)
	}

	return report.Bundle{
		TotalIncome:    summary.TotalIncome,
		TotalExpenses:  summary.TotalExpenses,
		Balance:        summary.Balance,
		Transactions:   transactions,
		CategoryTotals: summary.CategoryTotals,
	}, nil
}

// GeneratePDFReport renders the date range as a PDF. With sendEmail set the
// document is also mailed to the user; mail failure only clears the flag.
func (s *Service) GeneratePDFReport(ctx context.Context, from, to time.Time, sendEmail bool) ([]byte, bool, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, false, err
	}

	bundle, err := s.buildBundle(userID, from, to)
	if err != nil {
		return nil, false, err
	}

	data, err := report.RenderPDF(bundle)
	if err != nil {
		return nil, false, err
	}

	emailed := false
	if sendEmail {
		user, err := s.store.FindUserByID(userID)
		if err != nil {
			s.log.Errorf("Failed to load user %d for report delivery: %v", userID, err)
		} else if err := s.mail.SendReport(user.Email, user.Name, data); err != nil {
			s.log.Errorf("Failed to email report to %s: %v", user.Email, err)
		} else {
			emailed = true
		}
	}

	s.log.Infof("PDF report generated for user %d (%d transactions)", userID, len(bundle.Transactions))
	return data, emailed, nil
}

// GenerateExcelReport renders the date range as a spreadsheet
func (s *Service) GenerateExcelReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bundle, err := s.buildBundle(userID, from, to)
	if err != nil {
		return nil, err
	}

	data, err := report.RenderExcel(bundle)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Excel report generated for user %d (%d transactions)", userID, len(bundle.Transactions))
	return data, nil
}

// SendMilestoneReminders emails users about milestones due within the window.
// Per-recipient failures are logged and the sweep continues.
func (s *Service) SendMilestoneReminders(window time.Duration) error {
	now := time.Now()
	reminders, err := s.store.ListUpcomingMilestones(now, now.Add(window))
	if err != nil {
		return err
	}

	for _, rem := range reminders {
		if err := s.mail.SendMilestoneReminder(rem.Email, rem.Name, rem.GoalName,
			rem.DueDate, rem.TargetAmount); err != nil {
			s.log.Errorf("Failed to send milestone reminder to %s: %v", rem.Email, err)
		}
	}

	s.log.Infof("Milestone reminder sweep done: %d upcoming milestones", len(reminders))
	return nil
}
