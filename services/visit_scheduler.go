package services

import (
	"context"
	"fmt"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/levomgrup/sales-api/utils"
	"github.com/sirupsen/logrus"
)

// maxRolloverPasses bounds how many generations of catch-up visits a single
// run creates after a long pause of the scheduler.
const maxRolloverPasses = 64

type RolloverResult struct {
	Cancelled int64 `json:"cancelled"`
	Completed int   `json:"completed"`
	Created   int   `json:"created"`
	Failed    int   `json:"failed"`
}

// VisitScheduler cancels missed visits and rolls scheduled visits over to the
// next one once their nextVisitDate has arrived.
type VisitScheduler struct {
	visits    repository.VisitRepository
	customers repository.CustomerRepository
	log       *logrus.Logger
	now       func() time.Time
}

func NewVisitScheduler(store repository.Store, log *logrus.Logger, now func() time.Time) *VisitScheduler {
	if now == nil {
		now = time.Now
	}
	return &VisitScheduler{
		visits:    store.Visits(),
		customers: store.Customers(),
		log:       log,
		now:       now,
	}
}

// Rollover runs one rollover for the current local day. The cancel pass runs
// before the rollover pass. Running it again on the same day changes nothing.
func (s *VisitScheduler) Rollover(ctx context.Context) (RolloverResult, error) {
	var result RolloverResult
	today := utils.BeginningOfDay(s.now())
	entry := s.log.WithField("today", today.Format("2006-01-02"))
	entry.Info("Visit rollover started")

	cancelled, err := s.visits.CancelMissed(ctx, today)
	if err != nil {
		return result, fmt.Errorf("cancel missed visits: %w", err)
	}
	result.Cancelled = cancelled

	failed := make(map[string]bool)
	for pass := 0; pass < maxRolloverPasses; pass++ {
		due, err := s.visits.ListDue(ctx, today)
		if err != nil {
			return result, fmt.Errorf("list due visits: %w", err)
		}

		progressed := false
		for _, visit := range due {
			if failed[visit.ID] {
				continue
			}
			created, err := s.rollOver(ctx, visit, today)
			if err != nil {
				failed[visit.ID] = true
				result.Failed++
				entry.WithError(err).WithFields(logrus.Fields{
					"visit_id":    visit.ID,
					"customer_id": visit.CustomerID,
				}).Error("Visit rollover failed")
				continue
			}
			if created {
				result.Completed++
				result.Created++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	entry.WithFields(logrus.Fields{
		"cancelled": result.Cancelled,
		"completed": result.Completed,
		"created":   result.Created,
		"failed":    result.Failed,
	}).Info("Visit rollover finished")
	return result, nil
}

// rollOver completes visit and schedules its successor. It reports false when
// another run completed the visit first.
func (s *VisitScheduler) rollOver(ctx context.Context, visit models.Visit, today time.Time) (bool, error) {
	customer, err := s.customers.Get(ctx, visit.CustomerID)
	if err != nil {
		return false, fmt.Errorf("load customer: %w", err)
	}

	completed, err := s.visits.MarkCompleted(ctx, visit.ID)
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	if !completed {
		return false, nil
	}

	generatedOn := today
	next := &models.Visit{
		ID:            models.NewID(),
		CustomerID:    visit.CustomerID,
		VisitDate:     visit.NextVisitDate,
		NextVisitDate: models.NextVisitDate(visit.NextVisitDate, customer.VisitFrequency),
		Status:        models.VisitScheduled,
		IsActive:      true,
		GeneratedOn:   &generatedOn,
	}
	if err := s.visits.Create(ctx, next); err != nil {
		// Put the visit back so the next run can retry it.
		visit.Status = models.VisitScheduled
		if revertErr := s.visits.Save(ctx, &visit); revertErr != nil {
			s.log.WithError(revertErr).WithField("visit_id", visit.ID).
				Error("Failed to restore visit after rollover failure")
		}
		return false, fmt.Errorf("create next visit: %w", err)
	}
	return true, nil
}

// Run is the entry point for the periodic trigger. Errors and panics are
// logged and never propagate.
func (s *VisitScheduler) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("Visit rollover panicked")
		}
	}()
	if _, err := s.Rollover(ctx); err != nil {
		s.log.WithError(err).Error("Visit rollover aborted")
	}
}
