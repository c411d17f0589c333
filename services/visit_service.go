package services

import (
	"context"
	"strings"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/levomgrup/sales-api/utils"
	"github.com/sirupsen/logrus"
)

type CreateVisitInput struct {
	CustomerID string      `json:"customerId" validate:"required"`
	VisitDate  *utils.Date `json:"visitDate" validate:"required"`
	Notes      string      `json:"notes"`
}

type UpdateVisitInput struct {
	VisitDate *utils.Date         `json:"visitDate"`
	Status    *models.VisitStatus `json:"status"`
	Notes     *string             `json:"notes"`
}

type VisitQuery struct {
	Status     string
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// VisitDetail is a visit with its customer embedded for display. Customer is
// nil when the referenced customer no longer exists.
type VisitDetail struct {
	models.Visit
	Customer *models.Customer `json:"customer"`
}

type VisitService struct {
	visits    repository.VisitRepository
	customers repository.CustomerRepository
	log       *logrus.Logger
	now       func() time.Time
}

func NewVisitService(store repository.Store, log *logrus.Logger, now func() time.Time) *VisitService {
	if now == nil {
		now = time.Now
	}
	return &VisitService{
		visits:    store.Visits(),
		customers: store.Customers(),
		log:       log,
		now:       now,
	}
}

// Create schedules a visit. The customer only has to exist; a deactivated
// customer can still receive visits.
func (s *VisitService) Create(ctx context.Context, input CreateVisitInput) (*VisitDetail, error) {
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	customer, err := s.customers.Get(ctx, input.CustomerID)
	if err != nil {
		return nil, lookupError(err, MsgCustomerNotFound)
	}

	visit := &models.Visit{
		ID:            models.NewID(),
		CustomerID:    customer.ID,
		VisitDate:     input.VisitDate.Time,
		NextVisitDate: models.NextVisitDate(input.VisitDate.Time, customer.VisitFrequency),
		Status:        models.VisitScheduled,
		Notes:         strings.TrimSpace(input.Notes),
		IsActive:      true,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, internal(MsgServerError, err)
	}

	s.log.WithFields(logrus.Fields{
		"visit_id":    visit.ID,
		"customer_id": customer.ID,
	}).Info("Visit created")
	return &VisitDetail{Visit: *visit, Customer: customer}, nil
}

func (s *VisitService) Get(ctx context.Context, id string) (*VisitDetail, error) {
	visit, err := s.visits.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgVisitNotFound)
	}
	details, err := s.withCustomers(ctx, []models.Visit{*visit})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *VisitService) Update(ctx context.Context, id string, input UpdateVisitInput) (*VisitDetail, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, invalidArgument(MsgInvalidVisitStatus)
	}

	visit, err := s.visits.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgVisitNotFound)
	}

	if input.VisitDate != nil {
		if !input.VisitDate.Time.Equal(visit.VisitDate) {
			// A missing customer leaves nextVisitDate as it was.
			if customer, err := s.customers.Get(ctx, visit.CustomerID); err == nil {
				visit.NextVisitDate = models.NextVisitDate(input.VisitDate.Time, customer.VisitFrequency)
			} else {
				s.log.WithError(err).WithField("visit_id", visit.ID).
					Warn("Customer lookup failed, nextVisitDate not recomputed")
			}
		}
		visit.VisitDate = input.VisitDate.Time
	}
	if input.Status != nil {
		visit.Status = *input.Status
	}
	if input.Notes != nil {
		visit.Notes = strings.TrimSpace(*input.Notes)
	}

	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, internal(MsgServerError, err)
	}
	details, err := s.withCustomers(ctx, []models.Visit{*visit})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *VisitService) Delete(ctx context.Context, id string) error {
	if err := s.visits.Deactivate(ctx, id); err != nil {
		return lookupError(err, MsgVisitNotFound)
	}
	s.log.WithField("visit_id", id).Info("Visit deactivated")
	return nil
}

func (s *VisitService) List(ctx context.Context, query VisitQuery) ([]VisitDetail, error) {
	status := models.VisitStatus(query.Status)
	if status != "" && !status.Valid() {
		return nil, invalidArgument(MsgInvalidVisitStatus)
	}

	visits, err := s.visits.List(ctx, repository.VisitFilter{
		Status:     status,
		CustomerID: query.CustomerID,
		From:       query.From,
		To:         query.To,
	})
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return s.withCustomers(ctx, visits)
}

// Overdue lists visits whose nextVisitDate has already passed and that were
// not cancelled.
func (s *VisitService) Overdue(ctx context.Context) ([]VisitDetail, error) {
	visits, err := s.visits.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return s.withCustomers(ctx, visits)
}

func (s *VisitService) withCustomers(ctx context.Context, visits []models.Visit) ([]VisitDetail, error) {
	details := make([]VisitDetail, len(visits))
	if len(visits) == 0 {
		return details, nil
	}

	ids := make([]string, 0, len(visits))
	seen := make(map[string]bool, len(visits))
	for _, v := range visits {
		if !seen[v.CustomerID] {
			seen[v.CustomerID] = true
			ids = append(ids, v.CustomerID)
		}
	}
	customers, err := s.customers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	byID := make(map[string]*models.Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}

	for i, v := range visits {
		details[i] = VisitDetail{Visit: v, Customer: byID[v.CustomerID]}
	}
	return details, nil
}
