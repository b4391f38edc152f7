// Package scheduler drives the periodic background refresh.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"SoundTreasury/internal/orchestrator"
)

// Scheduler manages the cron-driven cache refresh.
type Scheduler struct {
	Cron *cron.Cron
	Orch *orchestrator.Orchestrator
	Ctx  context.Context

	log *logrus.Entry
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, orch *orchestrator.Orchestrator) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Orch: orch,
		Ctx:  ctx,
		log:  logrus.WithField("component", "scheduler"),
	}
}

// Register registers the refresh task under the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow executes the refresh task immediately (for manual trigger / run_on_start).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.log.Info("running scheduled refresh")
	s.Orch.RefreshAll(s.Ctx)
}
