package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*model.Product)}
}

func (r *ProductRepository) ProductByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepository) ListByReference(_ context.Context, kind model.EntityKind, id string) ([]*model.Product, error) {
	if !kind.Valid() {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	return r.filter(func(p *model.Product) bool { return p.References(kind, id) }), nil
}

func (r *ProductRepository) filter(keep func(*model.Product) bool) []*model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Product, 0)
	for _, p := range r.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ProductRepository) CreateBatch(_ context.Context, products []*model.Product) error {
	const op = "memory.ProductRepository.CreateBatch"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range products {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return fmt.Errorf("%s: product ID is empty", op)
		}
		r.products[p.ID] = cloneProduct(p)
	}
	return nil
}

func (r *ProductRepository) UpdateSnapshots(
	_ context.Context,
	productID string,
	kind model.EntityKind,
	snaps []model.Snapshot,
	version int64,
) error {
	if !kind.Valid() {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return model.ErrProductNotFound
	}
	if p.Version != version {
		return model.ErrVersionConflict
	}

	next := cloneProduct(p)
	next.SetSnapshots(kind, append([]model.Snapshot(nil), snaps...))
	next.Version++
	next.UpdatedAt = lo.ToPtr(time.Now().UTC())
	r.products[productID] = next
	return nil
}
