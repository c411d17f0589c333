package mongostore

import (
	"context"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepo struct {
	coll *mongo.Collection
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = models.NewID()
	}
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, product)
	return err
}

func (r *productRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := findOne(ctx, r.coll, bson.M{"_id": id}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetActive(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := findOne(ctx, r.coll, activeByID(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := findAll(ctx, r.coll, bson.M{"isActive": true}, &products, sortBy("createdAt", 1))
	return products, err
}

func (r *productRepo) ListActiveByAssignee(ctx context.Context, customerID string) ([]models.Product, error) {
	products := []models.Product{}
	err := findAll(ctx, r.coll, bson.M{"assignedTo": customerID, "isActive": true}, &products, sortBy("createdAt", 1))
	return products, err
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := findAll(ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, &products)
	return products, err
}

func (r *productRepo) Save(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	return replace(ctx, r.coll, product.ID, product)
}

func (r *productRepo) SetAssignee(ctx context.Context, id string, customerID *string) error {
	res, err := r.coll.UpdateOne(ctx, activeByID(id), bson.M{
		"$set": bson.M{"assignedTo": customerID, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Deactivate(ctx context.Context, id string) error {
	return deactivate(ctx, r.coll, id)
}
