// Package memory holds process-local stores used by STORAGE_DRIVER=memory and
// by tests. Every read and write clones, so callers never share state with the
// store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type UnitRepository struct {
	mu    sync.RWMutex
	units map[string]*model.Unit
}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{units: make(map[string]*model.Unit)}
}

func (r *UnitRepository) UnitByID(_ context.Context, id string) (*model.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[id]
	if !ok {
		return nil, model.ErrUnitNotFound
	}
	return cloneUnit(u), nil
}

func (r *UnitRepository) ListByProduct(_ context.Context, productID string) ([]*model.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Unit, 0)
	for _, u := range r.units {
		if u.ProductID == productID {
			out = append(out, cloneUnit(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UnitRepository) CreateBatch(_ context.Context, units []*model.Unit) error {
	const op = "memory.UnitRepository.CreateBatch"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range units {
		if u == nil {
			continue
		}
		if u.ID == "" {
			return fmt.Errorf("%s: unit ID is empty", op)
		}
		if _, ok := r.units[u.ID]; ok {
			return fmt.Errorf("%s: unit %s already exists", op, u.ID)
		}
	}
	for _, u := range units {
		if u != nil {
			r.units[u.ID] = cloneUnit(u)
		}
	}
	return nil
}

func (r *UnitRepository) UpdateLifecycle(_ context.Context, u *model.Unit, from model.UnitState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.units[u.ID]
	if !ok {
		return model.ErrUnitNotFound
	}
	if cur.State != from {
		return errors.Join(model.ErrInvalidTransition,
			fmt.Errorf("unit %s is no longer %s", u.ID, from))
	}

	next := cloneUnit(u)
	next.Cost = cur.Cost
	next.ProductID = cur.ProductID
	next.SKU = cur.SKU
	next.LotCode = cur.LotCode
	next.PurchaseOrderID = cur.PurchaseOrderID
	next.ExpirationDate = copyPtr(cur.ExpirationDate)
	next.ReceivedAt = copyPtr(cur.ReceivedAt)
	r.units[u.ID] = next
	return nil
}
