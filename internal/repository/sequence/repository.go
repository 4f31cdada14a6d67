package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type counterDocument struct {
	Kind  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// repository hands out per-kind code numbers from one counter document per
// kind. $inc is atomic, so concurrent creates never share a number.
type repository struct {
	coll *mongo.Collection
}

func NewSequenceRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

// Seed raises the counter of kind to at least floor. It never lowers it.
func (r *repository) Seed(ctx context.Context, kind model.EntityKind, floor int64) error {
	const op = "sequence.repository.Seed"

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": string(kind)},
		bson.M{"$max": bson.M{"value": floor}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *repository) Next(ctx context.Context, kind model.EntityKind) (int64, error) {
	const op = "sequence.repository.Next"

	var doc counterDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": string(kind)},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return doc.Value, nil
}
