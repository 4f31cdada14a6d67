package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type ClassificationRepository struct {
	mu       sync.RWMutex
	entities map[model.EntityKind]map[string]*model.Entity
}

func NewClassificationRepository() *ClassificationRepository {
	r := &ClassificationRepository{entities: make(map[model.EntityKind]map[string]*model.Entity, len(model.Kinds))}
	for _, k := range model.Kinds {
		r.entities[k] = make(map[string]*model.Entity)
	}
	return r
}

func (r *ClassificationRepository) bucket(kind model.EntityKind) (map[string]*model.Entity, error) {
	b, ok := r.entities[kind]
	if !ok {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	return b, nil
}

func (r *ClassificationRepository) ByID(_ context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := r.bucket(kind)
	if err != nil {
		return nil, err
	}
	e, ok := b[id]
	if !ok {
		return nil, model.ErrEntityNotFound
	}
	return cloneEntity(e), nil
}

func (r *ClassificationRepository) ByNormalizedName(_ context.Context, kind model.EntityKind, normalized string) (*model.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := r.bucket(kind)
	if err != nil {
		return nil, err
	}
	for _, e := range b {
		if e.NormalizedName == normalized {
			return cloneEntity(e), nil
		}
	}
	return nil, model.ErrEntityNotFound
}

func (r *ClassificationRepository) List(_ context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := r.bucket(kind)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Entity, 0, len(b))
	for _, e := range b {
		if filter.Match(e) {
			out = append(out, cloneEntity(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *ClassificationRepository) Create(_ context.Context, e *model.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.bucket(e.Kind)
	if err != nil {
		return err
	}
	if _, ok := b[e.ID]; ok {
		return fmt.Errorf("memory.ClassificationRepository.Create: %s %s already exists", e.Kind, e.ID)
	}
	if err := uniqueIn(b, e); err != nil {
		return err
	}

	b[e.ID] = cloneEntity(e)
	return nil
}

func (r *ClassificationRepository) Update(_ context.Context, e *model.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.bucket(e.Kind)
	if err != nil {
		return err
	}
	cur, ok := b[e.ID]
	if !ok {
		return model.ErrEntityNotFound
	}
	if err := uniqueIn(b, e); err != nil {
		return err
	}

	next := cloneEntity(e)
	next.Code = cur.Code
	next.Level = cur.Level
	next.Metrics = cur.Metrics
	next.CreatedAt = copyPtr(cur.CreatedAt)
	b[e.ID] = next
	return nil
}

func (r *ClassificationRepository) UpdateMetrics(_ context.Context, kind model.EntityKind, id string, m model.EntityMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.bucket(kind)
	if err != nil {
		return err
	}
	e, ok := b[id]
	if !ok {
		return model.ErrEntityNotFound
	}

	next := cloneEntity(e)
	next.Metrics = m
	b[id] = next
	return nil
}

func (r *ClassificationRepository) Delete(_ context.Context, kind model.EntityKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.bucket(kind)
	if err != nil {
		return err
	}
	if _, ok := b[id]; !ok {
		return model.ErrEntityNotFound
	}
	delete(b, id)
	return nil
}

func (r *ClassificationRepository) CountChildren(_ context.Context, id string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.entities[model.KindCategory] {
		if e.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r *ClassificationRepository) Codes(_ context.Context, kind model.EntityKind) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := r.bucket(kind)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(b))
	for _, e := range b {
		out = append(out, e.Code)
	}
	sort.Strings(out)
	return out, nil
}

// uniqueIn mirrors the unique indexes on normalized_name and code.
func uniqueIn(b map[string]*model.Entity, e *model.Entity) error {
	for id, other := range b {
		if id == e.ID {
			continue
		}
		if other.NormalizedName == e.NormalizedName {
			return errors.Join(model.ErrDuplicateName, fmt.Errorf("%s %q", e.Kind, e.Name))
		}
		if e.Code != "" && other.Code == e.Code {
			return fmt.Errorf("memory.ClassificationRepository: code %s already issued", e.Code)
		}
	}
	return nil
}
