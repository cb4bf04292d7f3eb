package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// SequenceRepository backs identifier allocation with an atomic
// find-and-increment on a named counter document. findAndModify is atomic
// per document on the server, so concurrent callers always observe
// distinct, strictly increasing values, across service instances too.
type SequenceRepository struct {
	col *mongo.Collection
}

func NewSequenceRepository(db *mongo.Database) *SequenceRepository {
	return &SequenceRepository{col: db.Collection(collectionCounters)}
}

// Next increments the named counter and returns the post-increment value.
// The counter document is created on first use, so the first allocation
// returns 1.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, mapStoreErr("increment counter", err)
	}
	return counter.Value, nil
}
