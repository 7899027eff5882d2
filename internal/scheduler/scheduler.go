// Package scheduler runs the periodic milestone-reminder sweep.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/service"
)

// reminderWindow is how far ahead the sweep looks for due milestones
const reminderWindow = 3 * 24 * time.Hour

// Scheduler owns the cron instance
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// New creates a scheduler with the milestone reminder job registered
func New(svc *service.Service, schedule string, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}

	if _, err := s.cron.AddFunc(schedule, s.runReminderSweep); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Milestone reminder scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Milestone reminder scheduler stopped")
}

func (s *Scheduler) runReminderSweep() {
	if err := s.svc.SendMilestoneReminders(reminderWindow); err != nil {
		s.log.Errorf("Milestone reminder sweep failed: %v", err)
	}
}
