package services

import (
	"context"
	"strings"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/sirupsen/logrus"
)

type CreateCustomerInput struct {
	StoreName         string   `json:"storeName" validate:"required"`
	AuthorizedPersons []string `json:"authorizedPersons"`
	Phone             string   `json:"phone" validate:"required,phone"`
	Address           string   `json:"address" validate:"required"`
	City              string   `json:"city" validate:"required"`
	District          string   `json:"district" validate:"required"`
	LocationLink      string   `json:"locationLink"`
	RoutineName       string   `json:"routineName" validate:"required"`
	InitialPoints     *float64 `json:"initialPoints" validate:"required,gte=0"`
	VisitFrequency    *int     `json:"visitFrequency" validate:"omitnil,gte=1"`
}

// UpdateCustomerInput is a partial update: nil fields keep their stored value.
type UpdateCustomerInput struct {
	StoreName         *string   `json:"storeName"`
	AuthorizedPersons *[]string `json:"authorizedPersons"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	District          *string   `json:"district"`
	LocationLink      *string   `json:"locationLink"`
	RoutineName       *string   `json:"routineName"`
	InitialPoints     *float64  `json:"initialPoints"`
	VisitFrequency    *int      `json:"visitFrequency"`
}

type CustomerService struct {
	customers repository.CustomerRepository
	log       *logrus.Logger
}

func NewCustomerService(store repository.Store, log *logrus.Logger) *CustomerService {
	return &CustomerService{customers: store.Customers(), log: log}
}

func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	trimCustomerInput(&input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:                models.NewID(),
		StoreName:         input.StoreName,
		AuthorizedPersons: cleanNames(input.AuthorizedPersons),
		Phone:             input.Phone,
		Address:           input.Address,
		City:              input.City,
		District:          input.District,
		LocationLink:      input.LocationLink,
		RoutineName:       input.RoutineName,
		InitialPoints:     *input.InitialPoints,
		VisitFrequency:    models.DefaultVisitFrequency,
		IsActive:          true,
	}
	if input.VisitFrequency != nil {
		customer.VisitFrequency = *input.VisitFrequency
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, internal(MsgServerError, err)
	}
	s.log.WithField("customer_id", customer.ID).Info("Customer created")
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.ListActive(ctx)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customers.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgCustomerNotFound)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customers.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgCustomerNotFound)
	}

	mergeString(&customer.StoreName, input.StoreName)
	mergeString(&customer.Phone, input.Phone)
	mergeString(&customer.Address, input.Address)
	mergeString(&customer.City, input.City)
	mergeString(&customer.District, input.District)
	mergeString(&customer.LocationLink, input.LocationLink)
	mergeString(&customer.RoutineName, input.RoutineName)
	if input.AuthorizedPersons != nil {
		customer.AuthorizedPersons = cleanNames(*input.AuthorizedPersons)
	}
	if input.InitialPoints != nil {
		customer.InitialPoints = *input.InitialPoints
	}
	if input.VisitFrequency != nil {
		customer.VisitFrequency = *input.VisitFrequency
	}

	if err := validateStruct(customer); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, internal(MsgServerError, err)
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.customers.Deactivate(ctx, id); err != nil {
		return lookupError(err, MsgCustomerNotFound)
	}
	s.log.WithField("customer_id", id).Info("Customer deactivated")
	return nil
}

func trimCustomerInput(input *CreateCustomerInput) {
	input.StoreName = strings.TrimSpace(input.StoreName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.District = strings.TrimSpace(input.District)
	input.LocationLink = strings.TrimSpace(input.LocationLink)
	input.RoutineName = strings.TrimSpace(input.RoutineName)
}

// mergeString overwrites dst with the trimmed value when one was provided.
func mergeString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
