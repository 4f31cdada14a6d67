package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewUnitRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

// EnsureIndexes creates the product lookup index used by roll-ups.
func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "unit.repository.EnsureIndexes"

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "purchase_order_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *repository) UnitByID(ctx context.Context, id string) (*model.Unit, error) {
	const op = "unit.repository.UnitByID"

	var ent UnitEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUnitNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u, err := EntityToModel(&ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*model.Unit, error) {
	const op = "unit.repository.ListByProduct"

	cur, err := r.coll.Find(ctx,
		bson.M{"product_id": productID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, op+": close cursor", logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Unit, 0)
	for cur.Next(ctx) {
		var ent UnitEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		u, err := EntityToModel(&ent)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

func (r *repository) CreateBatch(ctx context.Context, units []*model.Unit) error {
	const op = "unit.repository.CreateBatch"

	docs := make([]any, 0, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		if u.ID == "" {
			return fmt.Errorf("%s: unit ID is empty", op)
		}

		ent, err := EntityFromModel(u)
		if err != nil {
			return fmt.Errorf("%s: unit %s cost: %w", op, u.ID, err)
		}
		docs = append(docs, ent)
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateLifecycle persists u only if the stored unit is still in state from.
func (r *repository) UpdateLifecycle(ctx context.Context, u *model.Unit, from model.UnitState) error {
	const op = "unit.repository.UpdateLifecycle"

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": u.ID, "state": string(from)},
		bson.M{"$set": lifecycleSet(u)},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": u.ID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return model.ErrUnitNotFound
	}
	return errors.Join(model.ErrInvalidTransition,
		fmt.Errorf("unit %s is no longer %s", u.ID, from))
}
