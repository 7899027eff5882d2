package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendVerificationCode sends the signup email verification code
func (s *Sender) SendVerificationCode(to, name, code string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Confirm your Teen Budget account"

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your verification code is: %s\n"+
			"Enter it in the app to activate your account.\n"+
			"\nBest regards,\nTeen Budget", name, code,
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendPasswordResetCode sends a password reset code
func (s *Sender) SendPasswordResetCode(to, name, code string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Teen Budget password reset"

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your password reset code is: %s\n"+
			"If you did not request a reset, you can ignore this message.\n"+
			"\nBest regards,\nTeen Budget", name, code,
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendMilestoneReminder reminds a user of an upcoming savings milestone
func (s *Sender) SendMilestoneReminder(to, name, goalName string, dueDate time.Time, amount decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Savings milestone for %q is coming up", goalName)

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your next milestone for the goal %q is due on %s.\n"+
			"Target saved amount by then: %s.\n"+
			"Keep it up!\n"+
			"\nBest regards,\nTeen Budget",
		name, goalName, dueDate.Format("2006-01-02"), amount.StringFixed(2),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendReport delivers a generated PDF report as an attachment
func (s *Sender) SendReport(to, name string, pdf []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your financial report"

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your requested financial report is attached.\n"+
			"\nBest regards,\nTeen Budget", name,
	)
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(pdf), "financial-report.pdf", "application/pdf"); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
