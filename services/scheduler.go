package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the visit rollover and, when configured, the daily reminders
// on cron schedules in the local time zone.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewScheduler registers the jobs. reminders may be nil to disable them.
func NewScheduler(visits *VisitScheduler, rolloverSpec string, reminders *ReminderService, reminderSpec string, log *logrus.Logger) (*Scheduler, error) {
	cronLog := cron.PrintfLogger(log)
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := c.AddFunc(rolloverSpec, func() {
		visits.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule visit rollover: %w", err)
	}

	if reminders != nil {
		if _, err := c.AddFunc(reminderSpec, func() {
			if _, err := reminders.SendDailyReminders(context.Background()); err != nil {
				log.WithError(err).Error("Daily reminders failed")
			}
		}); err != nil {
			return nil, fmt.Errorf("schedule reminders: %w", err)
		}
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("Scheduler started")
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.log.Info("Scheduler stopped")
	return ctx
}
