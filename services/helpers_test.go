package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/levomgrup/sales-api/logging"
	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository/gormstore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is mid-morning on a day far from any DST change.
var fixedNow = time.Date(2024, 6, 20, 10, 30, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func today() time.Time {
	return time.Date(2024, 6, 20, 0, 0, 0, 0, time.Local)
}

func newTestStore(t *testing.T) *gormstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sales.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := gormstore.New(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func ptr[T any](v T) *T { return &v }

func mustCreateCustomer(t *testing.T, store *gormstore.Store, name string, frequency int) *models.Customer {
	t.Helper()
	svc := NewCustomerService(store, logging.Discard())
	customer, err := svc.Create(context.Background(), CreateCustomerInput{
		StoreName:      name,
		Phone:          "+90 532 123 45 67",
		Address:        "Bağdat Cad. 10",
		City:           "İstanbul",
		District:       "Kadıköy",
		RoutineName:    "Salı",
		InitialPoints:  ptr(0.0),
		VisitFrequency: ptr(frequency),
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func mustCreateProduct(t *testing.T, store *gormstore.Store, name string) *models.Product {
	t.Helper()
	svc := NewProductService(store, logging.Discard())
	product, err := svc.Create(context.Background(), CreateProductInput{
		Name:  name,
		Price: ptr(12.5),
		Stock: ptr(40),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustSeedVisit(t *testing.T, store *gormstore.Store, customerID string, visitDate, nextVisitDate time.Time) *models.Visit {
	t.Helper()
	visit := &models.Visit{
		CustomerID:    customerID,
		VisitDate:     visitDate,
		NextVisitDate: nextVisitDate,
		Status:        models.VisitScheduled,
		IsActive:      true,
	}
	if err := store.Visits().Create(context.Background(), visit); err != nil {
		t.Fatalf("seed visit: %v", err)
	}
	return visit
}

func loadVisit(t *testing.T, store *gormstore.Store, id string) models.Visit {
	t.Helper()
	var v models.Visit
	if err := store.DB().First(&v, "id = ?", id).Error; err != nil {
		t.Fatalf("load visit %s: %v", id, err)
	}
	return v
}

func countRows(t *testing.T, store *gormstore.Store, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := store.DB().Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %s", want)
	}
	var serviceErr *Error
	if !errors.As(err, &serviceErr) {
		t.Fatalf("error %v is not a service error", err)
	}
	if serviceErr.Kind != want {
		t.Fatalf("error kind = %s (%v), want %s", serviceErr.Kind, err, want)
	}
}
