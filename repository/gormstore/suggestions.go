package gormstore

import (
	"context"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"gorm.io/gorm"
)

type suggestionRepo struct {
	db *gorm.DB
}

const (
	pairClause = "((source_id = ? AND source_type = ? AND target_id = ? AND target_type = ?) OR " +
		"(source_id = ? AND source_type = ? AND target_id = ? AND target_type = ?))"
	entityClause = "((source_id = ? AND source_type = ?) OR (target_id = ? AND target_type = ?))"
)

func pairArgs(key models.PairKey) []interface{} {
	mirror := key.Transpose()
	return []interface{}{
		key.Source.ID, string(key.Source.Type), key.Target.ID, string(key.Target.Type),
		mirror.Source.ID, string(mirror.Source.Type), mirror.Target.ID, string(mirror.Target.Type),
	}
}

func (r *suggestionRepo) CreateMany(ctx context.Context, suggestions []models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	for i := range suggestions {
		suggestions[i].SuggestedAt = utc(suggestions[i].SuggestedAt)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&suggestions).Error
	})
}

func (r *suggestionRepo) GetActive(ctx context.Context, id string) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	if err := first(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true), &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepo) ListByEntity(ctx context.Context, filter repository.SuggestionFilter) ([]models.Suggestion, error) {
	e := filter.Entity
	query := r.db.WithContext(ctx).
		Where(entityClause, e.ID, string(e.Type), e.ID, string(e.Type)).
		Where("is_active = ?", true)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	suggestions := []models.Suggestion{}
	err := query.Order("suggested_at DESC").Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepo) ListPair(ctx context.Context, key models.PairKey) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	err := r.db.WithContext(ctx).
		Where(pairClause, pairArgs(key)...).
		Where("is_active = ?", true).
		Order("direction").
		Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepo) ResolvePair(ctx context.Context, key models.PairKey, res repository.Resolution) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where(pairClause, pairArgs(key)...).
		Where("is_active = ? AND status = ?", true, string(models.SuggestionPending)).
		Updates(map[string]interface{}{
			"status":        string(res.Status),
			"response_note": res.ResponseNote,
			"responded_at":  utc(res.RespondedAt),
		})
	return result.RowsAffected, result.Error
}

func (r *suggestionRepo) DeactivatePair(ctx context.Context, key models.PairKey) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where(pairClause, pairArgs(key)...).
		Where("is_active = ?", true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
