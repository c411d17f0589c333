// Package mongostore implements repository.Store on MongoDB. Documents use the
// record's string id as _id and the same camelCase field names as the JSON API.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/levomgrup/sales-api/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customersCollection    = "customers"
	productsCollection     = "products"
	visitsCollection       = "visits"
	suggestionsCollection  = "suggestions"
	reminderLogsCollection = "visit_reminder_logs"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	customers    *customerRepo
	products     *productRepo
	visits       *visitRepo
	suggestions  *suggestionRepo
	reminderLogs *reminderLogRepo
}

var _ repository.Store = (*Store)(nil)

func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:       client,
		db:           db,
		customers:    &customerRepo{coll: db.Collection(customersCollection)},
		products:     &productRepo{coll: db.Collection(productsCollection)},
		visits:       &visitRepo{coll: db.Collection(visitsCollection)},
		suggestions:  &suggestionRepo{coll: db.Collection(suggestionsCollection)},
		reminderLogs: &reminderLogRepo{coll: db.Collection(reminderLogsCollection)},
	}
}

func (s *Store) Customers() repository.CustomerRepository       { return s.customers }
func (s *Store) Products() repository.ProductRepository         { return s.products }
func (s *Store) Visits() repository.VisitRepository             { return s.visits }
func (s *Store) Suggestions() repository.SuggestionRepository   { return s.suggestions }
func (s *Store) ReminderLogs() repository.ReminderLogRepository { return s.reminderLogs }

func (s *Store) Migrate(ctx context.Context) error {
	for name, indexes := range indexModels() {
		if len(indexes) == 0 {
			continue
		}
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		customersCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}}},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "isActive", Value: 1}}},
		},
		visitsCollection: {
			{Keys: bson.D{{Key: "visitDate", Value: 1}}},
			{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "visitDate", Value: 1}}},
			{Keys: bson.D{{Key: "nextVisitDate", Value: 1}}},
		},
		suggestionsCollection: {
			{Keys: bson.D{{Key: "sourceId", Value: 1}, {Key: "targetId", Value: 1}, {Key: "isActive", Value: 1}}},
			{Keys: bson.D{{Key: "direction", Value: 1}, {Key: "isActive", Value: 1}}},
			{Keys: bson.D{{Key: "suggestedAt", Value: -1}}},
		},
		reminderLogsCollection: {
			{Keys: bson.D{{Key: "visitId", Value: 1}, {Key: "status", Value: 1}}},
		},
	}
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, dest interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, dest interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cursor.All(ctx, dest)
}

func activeByID(id string) bson.M {
	return bson.M{"_id": id, "isActive": true}
}

func deactivate(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.UpdateOne(ctx, activeByID(id), bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func sortBy(field string, order int) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: order}})
}
