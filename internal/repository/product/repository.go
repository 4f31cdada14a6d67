package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

// EnsureIndexes creates the back-reference indexes propagation queries by.
func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "product.repository.EnsureIndexes"

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_ids", Value: 1}}},
		{Keys: bson.D{{Key: "tag_ids", Value: 1}}},
		{Keys: bson.D{{Key: "product_type_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *repository) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	const op = "product.repository.ProductByID"

	var ent ProductEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(&ent), nil
}

// ListByReference returns the products whose back-reference for kind contains
// id.
func (r *repository) ListByReference(ctx context.Context, kind model.EntityKind, id string) ([]*model.Product, error) {
	const op = "product.repository.ListByReference"

	field, ok := referenceField(kind)
	if !ok {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}

	return r.find(ctx, op, bson.M{field: id})
}

func (r *repository) find(ctx context.Context, op string, filter bson.M) ([]*model.Product, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, op+": close cursor", logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Product, 0)
	for cur.Next(ctx) {
		var ent ProductEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, EntityToModel(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

// CreateBatch inserts catalogue products. The catalogue owns products; this
// exists for seeding and tests.
func (r *repository) CreateBatch(ctx context.Context, products []*model.Product) error {
	const op = "product.repository.CreateBatch"

	docs := make([]any, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return fmt.Errorf("%s: product ID is empty", op)
		}
		docs = append(docs, EntityFromModel(p))
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// versionFilter matches productID at version. Catalogue documents written
// without a version field count as version 0.
func versionFilter(productID string, version int64) bson.M {
	if version == 0 {
		return bson.M{"_id": productID, "version": bson.M{"$in": bson.A{int64(0), nil}}}
	}
	return bson.M{"_id": productID, "version": version}
}

// UpdateSnapshots replaces the embedded snapshots of kind when the stored
// version still equals version, and bumps the version.
func (r *repository) UpdateSnapshots(
	ctx context.Context,
	productID string,
	kind model.EntityKind,
	snaps []model.Snapshot,
	version int64,
) error {
	const op = "product.repository.UpdateSnapshots"

	field, value, ok := snapshotValue(kind, snaps)
	if !ok {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}

	res, err := r.coll.UpdateOne(ctx,
		versionFilter(productID, version),
		bson.M{
			"$set": bson.M{field: value, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return model.ErrProductNotFound
	}
	return model.ErrVersionConflict
}
