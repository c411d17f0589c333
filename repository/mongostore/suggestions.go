package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type suggestionRepo struct {
	coll *mongo.Collection
}

func refMatch(source, target models.EntityRef) bson.M {
	return bson.M{
		"sourceId":   source.ID,
		"sourceType": source.Type,
		"targetId":   target.ID,
		"targetType": target.Type,
	}
}

// pairFilter matches both records of the link addressed by key.
func pairFilter(key models.PairKey) bson.M {
	mirror := key.Transpose()
	return bson.M{
		"$or": bson.A{
			refMatch(key.Source, key.Target),
			refMatch(mirror.Source, mirror.Target),
		},
		"isActive": true,
	}
}

func entityFilter(filter repository.SuggestionFilter) bson.M {
	e := filter.Entity
	query := bson.M{
		"$or": bson.A{
			bson.M{"sourceId": e.ID, "sourceType": e.Type},
			bson.M{"targetId": e.ID, "targetType": e.Type},
		},
		"isActive": true,
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

// CreateMany inserts the batch and removes whatever was written if the insert
// fails part way, since standalone servers offer no multi-document transaction.
func (r *suggestionRepo) CreateMany(ctx context.Context, suggestions []models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(suggestions))
	ids := make([]string, len(suggestions))
	for i := range suggestions {
		if suggestions[i].ID == "" {
			suggestions[i].ID = models.NewID()
		}
		suggestions[i].CreatedAt, suggestions[i].UpdatedAt = now, now
		docs[i] = suggestions[i]
		ids[i] = suggestions[i].ID
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		if _, cleanupErr := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); cleanupErr != nil {
			return fmt.Errorf("insert suggestions: %w (cleanup failed: %v)", err, cleanupErr)
		}
		return fmt.Errorf("insert suggestions: %w", err)
	}
	return nil
}

func (r *suggestionRepo) GetActive(ctx context.Context, id string) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	if err := findOne(ctx, r.coll, activeByID(id), &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepo) ListByEntity(ctx context.Context, filter repository.SuggestionFilter) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	err := findAll(ctx, r.coll, entityFilter(filter), &suggestions, sortBy("suggestedAt", -1))
	return suggestions, err
}

func (r *suggestionRepo) ListPair(ctx context.Context, key models.PairKey) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	err := findAll(ctx, r.coll, pairFilter(key), &suggestions, sortBy("direction", 1))
	return suggestions, err
}

func (r *suggestionRepo) ResolvePair(ctx context.Context, key models.PairKey, res repository.Resolution) (int64, error) {
	filter := pairFilter(key)
	filter["status"] = models.SuggestionPending
	result, err := r.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{
			"status":       res.Status,
			"responseNote": res.ResponseNote,
			"respondedAt":  res.RespondedAt,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *suggestionRepo) DeactivatePair(ctx context.Context, key models.PairKey) (int64, error) {
	result, err := r.coll.UpdateMany(ctx, pairFilter(key), bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
