package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

const (
	nameIndex = "uniq_normalized_name"
	codeIndex = "uniq_code"
)

// repository keeps each entity kind in its own collection.
type repository struct {
	colls map[model.EntityKind]*mongo.Collection
}

func NewClassificationRepository(colls map[model.EntityKind]*mongo.Collection) *repository {
	return &repository{colls: colls}
}

func (r *repository) coll(kind model.EntityKind) (*mongo.Collection, error) {
	c, ok := r.colls[kind]
	if !ok || c == nil {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	return c, nil
}

// EnsureIndexes makes names and codes unique per kind and indexes category
// parents.
func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "classification.repository.EnsureIndexes"

	for kind, c := range r.colls {
		models := []mongo.IndexModel{
			{Keys: bson.D{{Key: "normalized_name", Value: 1}}, Options: options.Index().SetName(nameIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetName(codeIndex).SetUnique(true)},
		}
		if kind == model.KindCategory {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: "parent_id", Value: 1}}})
		}
		if _, err := c.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s %s: %w", op, kind, err)
		}
	}
	return nil
}

func (r *repository) ByID(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	const op = "classification.repository.ByID"
	return r.findOne(ctx, op, kind, bson.M{"_id": id})
}

func (r *repository) ByNormalizedName(ctx context.Context, kind model.EntityKind, normalized string) (*model.Entity, error) {
	const op = "classification.repository.ByNormalizedName"
	return r.findOne(ctx, op, kind, bson.M{"normalized_name": normalized})
}

func (r *repository) findOne(ctx context.Context, op string, kind model.EntityKind, filter bson.M) (*model.Entity, error) {
	c, err := r.coll(kind)
	if err != nil {
		return nil, err
	}

	var doc EntityDocument
	if err := c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrEntityNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return DocumentToModel(kind, &doc), nil
}

func (r *repository) List(ctx context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error) {
	const op = "classification.repository.List"

	c, err := r.coll(kind)
	if err != nil {
		return nil, err
	}

	cur, err := c.Find(ctx, BuildMongoFilter(filter), options.Find().SetSort(bson.D{
		{Key: "level", Value: 1},
		{Key: "order", Value: 1},
		{Key: "code", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, op+": close cursor", logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Entity, 0)
	for cur.Next(ctx) {
		var doc EntityDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, DocumentToModel(kind, &doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

func (r *repository) Create(ctx context.Context, e *model.Entity) error {
	const op = "classification.repository.Create"

	c, err := r.coll(e.Kind)
	if err != nil {
		return err
	}

	if _, err := c.InsertOne(ctx, DocumentFromModel(e)); err != nil {
		return duplicateError(op, e, err)
	}
	return nil
}

// Update replaces the stored entity. Metrics are left to UpdateMetrics.
func (r *repository) Update(ctx context.Context, e *model.Entity) error {
	const op = "classification.repository.Update"

	c, err := r.coll(e.Kind)
	if err != nil {
		return err
	}

	doc := DocumentFromModel(e)
	res, err := c.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{
		"name":            doc.Name,
		"normalized_name": doc.NormalizedName,
		"slug":            doc.Slug,
		"description":     doc.Description,
		"icon":            doc.Icon,
		"color":           doc.Color,
		"active":          doc.Active,
		"parent_id":       doc.ParentID,
		"order":           doc.Order,
		"updated_at":      doc.UpdatedAt,
	}})
	if err != nil {
		return duplicateError(op, e, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrEntityNotFound
	}
	return nil
}

func (r *repository) UpdateMetrics(ctx context.Context, kind model.EntityKind, id string, m model.EntityMetrics) error {
	const op = "classification.repository.UpdateMetrics"

	c, err := r.coll(kind)
	if err != nil {
		return err
	}

	res, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"metrics": MetricsDocument{ActiveProducts: m.ActiveProducts, TotalProducts: m.TotalProducts},
	}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrEntityNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, kind model.EntityKind, id string) error {
	const op = "classification.repository.Delete"

	c, err := r.coll(kind)
	if err != nil {
		return err
	}

	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrEntityNotFound
	}
	return nil
}

// CountChildren counts level-2 categories whose parent is id.
func (r *repository) CountChildren(ctx context.Context, id string) (int, error) {
	const op = "classification.repository.CountChildren"

	c, err := r.coll(model.KindCategory)
	if err != nil {
		return 0, err
	}

	n, err := c.CountDocuments(ctx, bson.M{"parent_id": id})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

// Codes returns every code issued for kind; used to seed the sequence.
func (r *repository) Codes(ctx context.Context, kind model.EntityKind) ([]string, error) {
	const op = "classification.repository.Codes"

	c, err := r.coll(kind)
	if err != nil {
		return nil, err
	}

	cur, err := c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"code": 1}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rows []struct {
		Code string `bson:"code"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Code)
	}
	return out, nil
}

// duplicateError maps a unique index violation on the name to
// ErrDuplicateName. A clash on the code means the sequence fell behind the
// stored codes and stays an internal error.
func duplicateError(op string, e *model.Entity, err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if strings.Contains(err.Error(), codeIndex) {
		return fmt.Errorf("%s: code %s already issued for %s: %w", op, e.Code, e.Kind, err)
	}
	return errors.Join(model.ErrDuplicateName, fmt.Errorf("%s %q", e.Kind, e.Name))
}
