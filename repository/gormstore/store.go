// Package gormstore implements repository.Store on top of gorm. PostgreSQL is
// the production target; SQLite is used for local runs and tests.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB

	customers    *customerRepo
	products     *productRepo
	visits       *visitRepo
	suggestions  *suggestionRepo
	reminderLogs *reminderLogRepo
}

var _ repository.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		customers:    &customerRepo{db: db},
		products:     &productRepo{db: db},
		visits:       &visitRepo{db: db},
		suggestions:  &suggestionRepo{db: db},
		reminderLogs: &reminderLogRepo{db: db},
	}
}

func (s *Store) Customers() repository.CustomerRepository       { return s.customers }
func (s *Store) Products() repository.ProductRepository         { return s.products }
func (s *Store) Visits() repository.VisitRepository             { return s.visits }
func (s *Store) Suggestions() repository.SuggestionRepository   { return s.suggestions }
func (s *Store) ReminderLogs() repository.ReminderLogRepository { return s.reminderLogs }

// DB exposes the underlying handle, mainly for tests that seed fixtures.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Visit{},
		&models.Suggestion{},
		&models.VisitReminderLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// first runs a single-record lookup and maps gorm's not-found error.
func first(tx *gorm.DB, dest interface{}) error {
	if err := tx.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

// deactivate flips is_active on one active row of model's table.
func deactivate(ctx context.Context, db *gorm.DB, model interface{}, id string) error {
	result := db.WithContext(ctx).Model(model).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SQLite compares timestamps as text, so every stored or compared time is
// normalized to UTC.
func utc(t time.Time) time.Time {
	return t.UTC()
}
