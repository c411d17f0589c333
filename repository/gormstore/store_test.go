package gormstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sales.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := New(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func createCustomer(t *testing.T, store *Store, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		StoreName:      name,
		Phone:          "05321234567",
		Address:        "Atatürk Cad. 1",
		City:           "İstanbul",
		District:       "Kadıköy",
		RoutineName:    "Pazartesi",
		VisitFrequency: 7,
		IsActive:       true,
	}
	if err := store.Customers().Create(context.Background(), customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func createProduct(t *testing.T, store *Store, name string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: 10, Stock: 5, IsActive: true}
	if err := store.Products().Create(context.Background(), product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func createVisit(t *testing.T, store *Store, v models.Visit) *models.Visit {
	t.Helper()
	v.IsActive = true
	if v.Status == "" {
		v.Status = models.VisitScheduled
	}
	if err := store.Visits().Create(context.Background(), &v); err != nil {
		t.Fatalf("create visit: %v", err)
	}
	return &v
}

func visitStatus(t *testing.T, store *Store, id string) models.VisitStatus {
	t.Helper()
	var v models.Visit
	if err := store.DB().First(&v, "id = ?", id).Error; err != nil {
		t.Fatalf("load visit %s: %v", id, err)
	}
	return v.Status
}

func TestCustomerSoftDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	kept := createCustomer(t, store, "Kept")
	gone := createCustomer(t, store, "Gone")

	if err := store.Customers().Deactivate(ctx, gone.ID); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}
	if err := store.Customers().Deactivate(ctx, gone.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Deactivate() error = %v, want ErrNotFound", err)
	}

	list, err := store.Customers().ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error: %v", err)
	}
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Errorf("ListActive() = %+v, want only %s", list, kept.ID)
	}

	if _, err := store.Customers().GetActive(ctx, gone.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetActive(deleted) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Customers().Get(ctx, gone.ID); err != nil {
		t.Errorf("Get(deleted) error = %v, want nil", err)
	}
}

func TestCustomerAuthorizedPersonsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	customer := createCustomer(t, store, "Market")
	customer.AuthorizedPersons = []string{"Ayşe", "Mehmet"}
	if err := store.Customers().Save(ctx, customer); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Customers().GetActive(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetActive() error: %v", err)
	}
	if len(got.AuthorizedPersons) != 2 || got.AuthorizedPersons[1] != "Mehmet" {
		t.Errorf("AuthorizedPersons = %v", got.AuthorizedPersons)
	}
}

func TestProductAssignee(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	customer := createCustomer(t, store, "Market")
	product := createProduct(t, store, "Çay")
	createProduct(t, store, "Kahve")

	if err := store.Products().SetAssignee(ctx, product.ID, &customer.ID); err != nil {
		t.Fatalf("SetAssignee() error: %v", err)
	}
	assigned, err := store.Products().ListActiveByAssignee(ctx, customer.ID)
	if err != nil {
		t.Fatalf("ListActiveByAssignee() error: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != product.ID {
		t.Fatalf("ListActiveByAssignee() = %+v, want %s", assigned, product.ID)
	}

	if err := store.Products().SetAssignee(ctx, product.ID, nil); err != nil {
		t.Fatalf("SetAssignee(nil) error: %v", err)
	}
	got, err := store.Products().GetActive(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetActive() error: %v", err)
	}
	if got.AssignedTo != nil {
		t.Errorf("AssignedTo = %v, want nil", *got.AssignedTo)
	}

	if err := store.Products().SetAssignee(ctx, "missing", &customer.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("SetAssignee(missing) error = %v, want ErrNotFound", err)
	}
}

func TestVisitListFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	a := createCustomer(t, store, "A")
	b := createCustomer(t, store, "B")
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	v1 := createVisit(t, store, models.Visit{CustomerID: a.ID, VisitDate: day(1), NextVisitDate: day(8)})
	v2 := createVisit(t, store, models.Visit{CustomerID: a.ID, VisitDate: day(10), NextVisitDate: day(17), Status: models.VisitCompleted})
	v3 := createVisit(t, store, models.Visit{CustomerID: b.ID, VisitDate: day(20), NextVisitDate: day(27)})
	deleted := createVisit(t, store, models.Visit{CustomerID: a.ID, VisitDate: day(5), NextVisitDate: day(12)})
	if err := store.Visits().Deactivate(ctx, deleted.ID); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}

	from, to := day(1), day(10)
	tests := []struct {
		name   string
		filter repository.VisitFilter
		want   []string
	}{
		{"all newest first", repository.VisitFilter{}, []string{v3.ID, v2.ID, v1.ID}},
		{"by status", repository.VisitFilter{Status: models.VisitScheduled}, []string{v3.ID, v1.ID}},
		{"by customer", repository.VisitFilter{CustomerID: a.ID}, []string{v2.ID, v1.ID}},
		{"inclusive range", repository.VisitFilter{From: &from, To: &to}, []string{v2.ID, v1.ID}},
		{"from only", repository.VisitFilter{From: &to}, []string{v3.ID, v2.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Visits().List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d visits, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("List()[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestVisitListOverdue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := createCustomer(t, store, "A")
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	older := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: now.AddDate(0, 0, -20), NextVisitDate: now.AddDate(0, 0, -13)})
	newer := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: now.AddDate(0, 0, -8), NextVisitDate: now.AddDate(0, 0, -1), Status: models.VisitCompleted})
	createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: now.AddDate(0, 0, -9), NextVisitDate: now.AddDate(0, 0, -2), Status: models.VisitCancelled})
	createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: now, NextVisitDate: now.AddDate(0, 0, 7)})

	got, err := store.Visits().ListOverdue(ctx, now)
	if err != nil {
		t.Fatalf("ListOverdue() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != older.ID || got[1].ID != newer.ID {
		t.Errorf("ListOverdue() = %+v, want [%s %s]", got, older.ID, newer.ID)
	}
}

func TestVisitCancelMissed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := createCustomer(t, store, "A")
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	missed := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: yesterday, NextVisitDate: today.AddDate(0, 0, 6)})
	due := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: today.AddDate(0, 0, -7), NextVisitDate: today})
	completed := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: yesterday, NextVisitDate: today.AddDate(0, 0, 6), Status: models.VisitCompleted})
	upcoming := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: today, NextVisitDate: today.AddDate(0, 0, 7)})
	generatedToday := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: today.AddDate(0, 0, -3), NextVisitDate: today.AddDate(0, 0, 4), GeneratedOn: &today})
	generatedEarlier := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: today.AddDate(0, 0, -3), NextVisitDate: today.AddDate(0, 0, 4), GeneratedOn: &yesterday})

	n, err := store.Visits().CancelMissed(ctx, today)
	if err != nil {
		t.Fatalf("CancelMissed() error: %v", err)
	}
	if n != 2 {
		t.Errorf("CancelMissed() = %d, want 2", n)
	}

	want := map[string]models.VisitStatus{
		missed.ID:           models.VisitCancelled,
		due.ID:              models.VisitScheduled,
		completed.ID:        models.VisitCompleted,
		upcoming.ID:         models.VisitScheduled,
		generatedToday.ID:   models.VisitScheduled,
		generatedEarlier.ID: models.VisitCancelled,
	}
	for id, status := range want {
		if got := visitStatus(t, store, id); got != status {
			t.Errorf("visit %s status = %s, want %s", id, got, status)
		}
	}
}

func TestVisitMarkCompletedOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := createCustomer(t, store, "A")
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	v := createVisit(t, store, models.Visit{CustomerID: c.ID, VisitDate: today.AddDate(0, 0, -7), NextVisitDate: today})

	due, err := store.Visits().ListDue(ctx, today)
	if err != nil {
		t.Fatalf("ListDue() error: %v", err)
	}
	if len(due) != 1 || due[0].ID != v.ID {
		t.Fatalf("ListDue() = %+v, want %s", due, v.ID)
	}

	ok, err := store.Visits().MarkCompleted(ctx, v.ID)
	if err != nil || !ok {
		t.Fatalf("MarkCompleted() = %v, %v, want true", ok, err)
	}
	ok, err = store.Visits().MarkCompleted(ctx, v.ID)
	if err != nil || ok {
		t.Errorf("second MarkCompleted() = %v, %v, want false", ok, err)
	}
}

func TestSuggestionPairLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := createCustomer(t, store, "A")
	p := createProduct(t, store, "Çay")
	other := createProduct(t, store, "Kahve")
	at := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	pair := models.NewSuggestionPair(c.ID, p.ID, "deneyin", at)
	otherPair := models.NewSuggestionPair(c.ID, other.ID, "", at)
	records := append(pair[:], otherPair[:]...)
	if err := store.Suggestions().CreateMany(ctx, records); err != nil {
		t.Fatalf("CreateMany() error: %v", err)
	}

	byCustomer, err := store.Suggestions().ListByEntity(ctx, repository.SuggestionFilter{
		Entity: models.EntityRef{ID: c.ID, Type: models.EntityCustomer},
	})
	if err != nil {
		t.Fatalf("ListByEntity() error: %v", err)
	}
	if len(byCustomer) != 4 {
		t.Fatalf("ListByEntity() returned %d records, want 4", len(byCustomer))
	}

	// Resolving through the customer_to_product record must reach its mirror.
	key := pair[1].Key()
	res := repository.Resolution{Status: models.SuggestionAccepted, ResponseNote: "tamam", RespondedAt: at.Add(time.Hour)}
	n, err := store.Suggestions().ResolvePair(ctx, key, res)
	if err != nil || n != 2 {
		t.Fatalf("ResolvePair() = %d, %v, want 2", n, err)
	}
	n, err = store.Suggestions().ResolvePair(ctx, key, res)
	if err != nil || n != 0 {
		t.Errorf("second ResolvePair() = %d, %v, want 0", n, err)
	}

	resolved, err := store.Suggestions().ListPair(ctx, pair[0].Key())
	if err != nil {
		t.Fatalf("ListPair() error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("ListPair() returned %d records, want 2", len(resolved))
	}
	for _, s := range resolved {
		if s.Status != models.SuggestionAccepted || s.ResponseNote != "tamam" || s.RespondedAt == nil {
			t.Errorf("record %s not resolved: %+v", s.ID, s)
		}
	}

	n, err = store.Suggestions().DeactivatePair(ctx, key)
	if err != nil || n != 2 {
		t.Fatalf("DeactivatePair() = %d, %v, want 2", n, err)
	}
	accepted, err := store.Suggestions().ListByEntity(ctx, repository.SuggestionFilter{
		Entity: models.EntityRef{ID: c.ID, Type: models.EntityCustomer},
		Status: models.SuggestionPending,
	})
	if err != nil {
		t.Fatalf("ListByEntity() error: %v", err)
	}
	if len(accepted) != 2 {
		t.Errorf("pending records after delete = %d, want 2 (the untouched pair)", len(accepted))
	}
	if _, err := store.Suggestions().GetActive(ctx, pair[0].ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetActive(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestReminderLogHasSent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	failed := &models.VisitReminderLog{VisitID: "v1", CustomerID: "c1", Status: models.ReminderFailed, SentAt: time.Now()}
	if err := store.ReminderLogs().Create(ctx, failed); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if sent, err := store.ReminderLogs().HasSent(ctx, "v1"); err != nil || sent {
		t.Errorf("HasSent() after failure = %v, %v, want false", sent, err)
	}

	ok := &models.VisitReminderLog{VisitID: "v1", CustomerID: "c1", Status: models.ReminderSent, SentAt: time.Now()}
	if err := store.ReminderLogs().Create(ctx, ok); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if sent, err := store.ReminderLogs().HasSent(ctx, "v1"); err != nil || !sent {
		t.Errorf("HasSent() = %v, %v, want true", sent, err)
	}
}
