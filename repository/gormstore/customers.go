package gormstore

import (
	"context"

	"github.com/levomgrup/sales-api/models"
	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) Get(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := first(r.db.WithContext(ctx).Where("id = ?", id), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) GetActive(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := first(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) ListActive(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error) {
	customers := []models.Customer{}
	if len(ids) == 0 {
		return customers, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Save(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, &models.Customer{}, id)
}
