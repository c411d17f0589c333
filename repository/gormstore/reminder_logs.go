package gormstore

import (
	"context"

	"github.com/levomgrup/sales-api/models"
	"gorm.io/gorm"
)

type reminderLogRepo struct {
	db *gorm.DB
}

func (r *reminderLogRepo) Create(ctx context.Context, entry *models.VisitReminderLog) error {
	entry.SentAt = utc(entry.SentAt)
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *reminderLogRepo) HasSent(ctx context.Context, visitID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VisitReminderLog{}).
		Where("visit_id = ? AND status = ?", visitID, models.ReminderSent).
		Count(&count).Error
	return count > 0, err
}
