package gormstore

import (
	"context"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"gorm.io/gorm"
)

type visitRepo struct {
	db *gorm.DB
}

func normalizeVisit(visit *models.Visit) {
	visit.VisitDate = utc(visit.VisitDate)
	visit.NextVisitDate = utc(visit.NextVisitDate)
	if visit.GeneratedOn != nil {
		generated := utc(*visit.GeneratedOn)
		visit.GeneratedOn = &generated
	}
}

func (r *visitRepo) Create(ctx context.Context, visit *models.Visit) error {
	normalizeVisit(visit)
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepo) GetActive(ctx context.Context, id string) (*models.Visit, error) {
	var visit models.Visit
	if err := first(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true), &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepo) Save(ctx context.Context, visit *models.Visit) error {
	normalizeVisit(visit)
	return r.db.WithContext(ctx).Save(visit).Error
}

func (r *visitRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.db, &models.Visit{}, id)
}

func (r *visitRepo) List(ctx context.Context, filter repository.VisitFilter) ([]models.Visit, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("visit_date >= ?", utc(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("visit_date <= ?", utc(*filter.To))
	}

	visits := []models.Visit{}
	err := query.Order("visit_date DESC").Find(&visits).Error
	return visits, err
}

func (r *visitRepo) ListOverdue(ctx context.Context, now time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := r.db.WithContext(ctx).
		Where("next_visit_date < ? AND status <> ? AND is_active = ?",
			utc(now), string(models.VisitCancelled), true).
		Order("next_visit_date ASC").
		Find(&visits).Error
	return visits, err
}

func (r *visitRepo) ListDue(ctx context.Context, cutoff time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := r.db.WithContext(ctx).
		Where("next_visit_date <= ? AND status = ? AND is_active = ?",
			utc(cutoff), string(models.VisitScheduled), true).
		Order("next_visit_date ASC").
		Find(&visits).Error
	return visits, err
}

func (r *visitRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := r.db.WithContext(ctx).
		Where("visit_date >= ? AND visit_date < ? AND status = ? AND is_active = ?",
			utc(from), utc(to), string(models.VisitScheduled), true).
		Order("visit_date ASC").
		Find(&visits).Error
	return visits, err
}

func (r *visitRepo) CancelMissed(ctx context.Context, today time.Time) (int64, error) {
	terminal := []string{string(models.VisitCompleted), string(models.VisitCancelled)}
	day := utc(today)
	result := r.db.WithContext(ctx).Model(&models.Visit{}).
		Where("visit_date < ? AND status NOT IN ? AND is_active = ?", day, terminal, true).
		Where("next_visit_date > ?", day).
		Where("(generated_on IS NULL OR generated_on < ?)", day).
		Update("status", string(models.VisitCancelled))
	return result.RowsAffected, result.Error
}

func (r *visitRepo) MarkCompleted(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Visit{}).
		Where("id = ? AND status = ? AND is_active = ?", id, string(models.VisitScheduled), true).
		Update("status", string(models.VisitCompleted))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
