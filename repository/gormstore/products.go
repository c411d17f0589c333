package gormstore

import (
	"context"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := first(r.db.WithContext(ctx).Where("id = ?", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetActive(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := first(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListActiveByAssignee(ctx context.Context, customerID string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where("assigned_to = ? AND is_active = ?", customerID, true).
		Order("created_at").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) SetAssignee(ctx context.Context, id string, customerID *string) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("assigned_to", customerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, &models.Product{}, id)
}
