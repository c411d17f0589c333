package mongostore

import (
	"context"
	"time"

	"github.com/levomgrup/sales-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type reminderLogRepo struct {
	coll *mongo.Collection
}

func (r *reminderLogRepo) Create(ctx context.Context, entry *models.VisitReminderLog) error {
	if entry.ID == "" {
		entry.ID = models.NewID()
	}
	entry.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *reminderLogRepo) HasSent(ctx context.Context, visitID string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"visitId": visitID, "status": models.ReminderSent})
	return count > 0, err
}
