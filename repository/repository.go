// Package repository defines the persistence contract shared by the gorm and
// MongoDB stores. Every "List"/"GetActive" style method applies the isActive
// filter itself; callers never see soft-deleted records through them.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/levomgrup/sales-api/models"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Visits() VisitRepository
	Suggestions() SuggestionRepository
	ReminderLogs() ReminderLogRepository

	// Migrate creates the tables or collections and their indexes.
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	// Get returns the customer regardless of its isActive flag.
	Get(ctx context.Context, id string) (*models.Customer, error)
	GetActive(ctx context.Context, id string) (*models.Customer, error)
	ListActive(ctx context.Context) ([]models.Customer, error)
	// FindByIDs returns the customers that exist among ids, active or not.
	FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) error
	// Deactivate flips isActive to false on an active customer.
	Deactivate(ctx context.Context, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	GetActive(ctx context.Context, id string) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	ListActiveByAssignee(ctx context.Context, customerID string) ([]models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	// SetAssignee sets (or clears, when customerID is nil) assignedTo on an
	// active product.
	SetAssignee(ctx context.Context, id string, customerID *string) error
	Deactivate(ctx context.Context, id string) error
}

type VisitFilter struct {
	Status     models.VisitStatus
	CustomerID string
	// From and To bound visitDate, both inclusive.
	From *time.Time
	To   *time.Time
}

type VisitRepository interface {
	Create(ctx context.Context, visit *models.Visit) error
	GetActive(ctx context.Context, id string) (*models.Visit, error)
	Save(ctx context.Context, visit *models.Visit) error
	Deactivate(ctx context.Context, id string) error

	// List returns active visits matching filter, newest visitDate first.
	List(ctx context.Context, filter VisitFilter) ([]models.Visit, error)
	// ListOverdue returns active, non-cancelled visits whose nextVisitDate is
	// strictly before now, oldest nextVisitDate first.
	ListOverdue(ctx context.Context, now time.Time) ([]models.Visit, error)
	// ListDue returns active scheduled visits whose nextVisitDate is at or
	// before cutoff.
	ListDue(ctx context.Context, cutoff time.Time) ([]models.Visit, error)
	// ListScheduledBetween returns active scheduled visits with from <= visitDate < to.
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Visit, error)

	// CancelMissed cancels active visits with visitDate before today that are
	// neither completed nor cancelled. Visits already due for rollover
	// (nextVisitDate <= today) and visits generated on today itself are left
	// alone. It returns how many visits changed.
	CancelMissed(ctx context.Context, today time.Time) (int64, error)
	// MarkCompleted moves a scheduled visit to completed. It reports false
	// when the visit was no longer scheduled.
	MarkCompleted(ctx context.Context, id string) (bool, error)
}

type SuggestionFilter struct {
	Entity models.EntityRef
	Status models.SuggestionStatus
}

// Resolution is written identically to both records of a suggestion pair.
type Resolution struct {
	Status       models.SuggestionStatus
	ResponseNote string
	RespondedAt  time.Time
}

type SuggestionRepository interface {
	// CreateMany inserts all suggestions or none of them.
	CreateMany(ctx context.Context, suggestions []models.Suggestion) error
	GetActive(ctx context.Context, id string) (*models.Suggestion, error)
	// ListByEntity returns active suggestions in which the entity appears as
	// source or target.
	ListByEntity(ctx context.Context, filter SuggestionFilter) ([]models.Suggestion, error)
	// ListPair returns the active records addressed by key or its transpose.
	ListPair(ctx context.Context, key models.PairKey) ([]models.Suggestion, error)
	// ResolvePair applies res to the still pending, active records of the pair
	// in a single write and returns how many records changed.
	ResolvePair(ctx context.Context, key models.PairKey, res Resolution) (int64, error)
	// DeactivatePair soft-deletes both records of the pair in a single write.
	DeactivatePair(ctx context.Context, key models.PairKey) (int64, error)
}

type ReminderLogRepository interface {
	Create(ctx context.Context, entry *models.VisitReminderLog) error
	// HasSent reports whether a reminder for the visit was already delivered.
	HasSent(ctx context.Context, visitID string) (bool, error)
}
