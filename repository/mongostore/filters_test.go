package mongostore

import (
	"reflect"
	"testing"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPairFilterMatchesBothDirections(t *testing.T) {
	key := models.PairKey{
		Source: models.EntityRef{ID: "c1", Type: models.EntityCustomer},
		Target: models.EntityRef{ID: "p1", Type: models.EntityProduct},
	}

	got := pairFilter(key)
	alts, ok := got["$or"].(bson.A)
	if !ok || len(alts) != 2 {
		t.Fatalf("pairFilter $or = %#v, want two alternatives", got["$or"])
	}
	if !reflect.DeepEqual(alts[0], refMatch(key.Source, key.Target)) {
		t.Errorf("first alternative = %#v", alts[0])
	}
	if !reflect.DeepEqual(alts[1], refMatch(key.Target, key.Source)) {
		t.Errorf("second alternative = %#v", alts[1])
	}
	if got["isActive"] != true {
		t.Errorf("pairFilter must restrict to active records")
	}

	// The filter addresses the same link from either side.
	mirrored := pairFilter(key.Transpose())
	if !reflect.DeepEqual(mirrored["$or"].(bson.A)[0], alts[1]) {
		t.Errorf("transposed key does not address the same pair")
	}
}

func TestEntityFilter(t *testing.T) {
	entity := models.EntityRef{ID: "p1", Type: models.EntityProduct}

	plain := entityFilter(repository.SuggestionFilter{Entity: entity})
	if _, ok := plain["status"]; ok {
		t.Errorf("status must not be filtered when empty")
	}
	if plain["isActive"] != true {
		t.Errorf("entityFilter must restrict to active records")
	}

	withStatus := entityFilter(repository.SuggestionFilter{Entity: entity, Status: models.SuggestionRejected})
	if withStatus["status"] != models.SuggestionRejected {
		t.Errorf("status = %v, want rejected", withStatus["status"])
	}
}

func TestVisitListFilter(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	got := visitListFilter(repository.VisitFilter{
		Status:     models.VisitScheduled,
		CustomerID: "c1",
		From:       &from,
		To:         &to,
	})

	want := bson.M{
		"isActive":   true,
		"status":     models.VisitScheduled,
		"customerId": "c1",
		"visitDate":  bson.M{"$gte": from, "$lte": to},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visitListFilter() = %#v, want %#v", got, want)
	}

	if got := visitListFilter(repository.VisitFilter{}); len(got) != 1 || got["isActive"] != true {
		t.Errorf("empty filter = %#v, want only isActive", got)
	}
}

func TestMissedFilterSkipsDueAndFreshVisits(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	got := missedFilter(today)

	if got["nextVisitDate"].(bson.M)["$gt"] != today {
		t.Errorf("missed visits must exclude those due for rollover: %#v", got["nextVisitDate"])
	}
	alts := got["$or"].(bson.A)
	if len(alts) != 2 {
		t.Fatalf("generatedOn alternatives = %#v", alts)
	}
	if alts[1].(bson.M)["generatedOn"].(bson.M)["$lt"] != today {
		t.Errorf("visits generated today must be spared: %#v", alts[1])
	}
}
