package mongostore

import (
	"context"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type visitRepo struct {
	coll *mongo.Collection
}

func (r *visitRepo) Create(ctx context.Context, visit *models.Visit) error {
	if visit.ID == "" {
		visit.ID = models.NewID()
	}
	now := time.Now().UTC()
	visit.CreatedAt, visit.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, visit)
	return err
}

func (r *visitRepo) GetActive(ctx context.Context, id string) (*models.Visit, error) {
	var visit models.Visit
	if err := findOne(ctx, r.coll, activeByID(id), &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepo) Save(ctx context.Context, visit *models.Visit) error {
	visit.UpdatedAt = time.Now().UTC()
	return replace(ctx, r.coll, visit.ID, visit)
}

func (r *visitRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.coll, id)
}

func visitListFilter(filter repository.VisitFilter) bson.M {
	query := bson.M{"isActive": true}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CustomerID != "" {
		query["customerId"] = filter.CustomerID
	}
	if filter.From != nil || filter.To != nil {
		dateRange := bson.M{}
		if filter.From != nil {
			dateRange["$gte"] = *filter.From
		}
		if filter.To != nil {
			dateRange["$lte"] = *filter.To
		}
		query["visitDate"] = dateRange
	}
	return query
}

func (r *visitRepo) List(ctx context.Context, filter repository.VisitFilter) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := findAll(ctx, r.coll, visitListFilter(filter), &visits, sortBy("visitDate", -1))
	return visits, err
}

func overdueFilter(now time.Time) bson.M {
	return bson.M{
		"nextVisitDate": bson.M{"$lt": now},
		"status":        bson.M{"$ne": models.VisitCancelled},
		"isActive":      true,
	}
}

func (r *visitRepo) ListOverdue(ctx context.Context, now time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := findAll(ctx, r.coll, overdueFilter(now), &visits, sortBy("nextVisitDate", 1))
	return visits, err
}

func (r *visitRepo) ListDue(ctx context.Context, cutoff time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	filter := bson.M{
		"nextVisitDate": bson.M{"$lte": cutoff},
		"status":        models.VisitScheduled,
		"isActive":      true,
	}
	err := findAll(ctx, r.coll, filter, &visits, sortBy("nextVisitDate", 1))
	return visits, err
}

func (r *visitRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Visit, error) {
	visits := []models.Visit{}
	filter := bson.M{
		"visitDate": bson.M{"$gte": from, "$lt": to},
		"status":    models.VisitScheduled,
		"isActive":  true,
	}
	err := findAll(ctx, r.coll, filter, &visits, sortBy("visitDate", 1))
	return visits, err
}

func missedFilter(today time.Time) bson.M {
	return bson.M{
		"visitDate":     bson.M{"$lt": today},
		"nextVisitDate": bson.M{"$gt": today},
		"status":        bson.M{"$nin": []models.VisitStatus{models.VisitCompleted, models.VisitCancelled}},
		"isActive":      true,
		"$or": bson.A{
			bson.M{"generatedOn": nil},
			bson.M{"generatedOn": bson.M{"$lt": today}},
		},
	}
}

func (r *visitRepo) CancelMissed(ctx context.Context, today time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, missedFilter(today), bson.M{
		"$set": bson.M{"status": models.VisitCancelled, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *visitRepo) MarkCompleted(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.VisitScheduled, "isActive": true},
		bson.M{"$set": bson.M{"status": models.VisitCompleted, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
