package services

import (
	"context"
	"strings"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/sirupsen/logrus"
)

type CreateProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

type ProductService struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	log       *logrus.Logger
}

func NewProductService(store repository.Store, log *logrus.Logger) *ProductService {
	return &ProductService{products: store.Products(), customers: store.Customers(), log: log}
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          models.NewID(),
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Stock:       *input.Stock,
		Category:    strings.TrimSpace(input.Category),
		IsActive:    true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, internal(MsgServerError, err)
	}
	s.log.WithField("product_id", product.ID).Info("Product created")
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgProductNotFound)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.products.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgProductNotFound)
	}

	mergeString(&product.Name, input.Name)
	mergeString(&product.Description, input.Description)
	mergeString(&product.Category, input.Category)
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := validateStruct(product); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, internal(MsgServerError, err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Deactivate(ctx, id); err != nil {
		return lookupError(err, MsgProductNotFound)
	}
	s.log.WithField("product_id", id).Info("Product deactivated")
	return nil
}

// Assign marks the product as assigned to an active customer.
func (s *ProductService) Assign(ctx context.Context, id, customerID string) (*models.Product, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, validationFailed([]string{fieldMessages["customerId.required"]})
	}
	if _, err := s.customers.GetActive(ctx, customerID); err != nil {
		return nil, lookupError(err, MsgCustomerNotFound)
	}
	return s.setAssignee(ctx, id, &customerID)
}

func (s *ProductService) Unassign(ctx context.Context, id string) (*models.Product, error) {
	return s.setAssignee(ctx, id, nil)
}

func (s *ProductService) setAssignee(ctx context.Context, id string, customerID *string) (*models.Product, error) {
	if err := s.products.SetAssignee(ctx, id, customerID); err != nil {
		return nil, lookupError(err, MsgProductNotFound)
	}
	product, err := s.products.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgProductNotFound)
	}

	entry := s.log.WithField("product_id", id)
	if customerID != nil {
		entry.WithField("customer_id", *customerID).Info("Product assigned")
	} else {
		entry.Info("Product unassigned")
	}
	return product, nil
}

// ListByCustomer returns the active products assigned to customerID. An empty
// list is a valid result.
func (s *ProductService) ListByCustomer(ctx context.Context, customerID string) ([]models.Product, error) {
	products, err := s.products.ListActiveByAssignee(ctx, customerID)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return products, nil
}
