package mongostore

import (
	"context"
	"time"

	"github.com/levomgrup/sales-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type customerRepo struct {
	coll *mongo.Collection
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = models.NewID()
	}
	now := time.Now().UTC()
	customer.CreatedAt, customer.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, customer)
	return err
}

func (r *customerRepo) Get(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := findOne(ctx, r.coll, bson.M{"_id": id}, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) GetActive(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := findOne(ctx, r.coll, activeByID(id), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) ListActive(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := findAll(ctx, r.coll, bson.M{"isActive": true}, &customers, sortBy("createdAt", 1))
	return customers, err
}

func (r *customerRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error) {
	customers := []models.Customer{}
	if len(ids) == 0 {
		return customers, nil
	}
	err := findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, &customers)
	return customers, err
}

func (r *customerRepo) Save(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now().UTC()
	return replace(ctx, r.coll, customer.ID, customer)
}

func (r *customerRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.coll, id)
}
