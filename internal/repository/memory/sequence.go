package memory

import (
	"context"
	"sync"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type SequenceRepository struct {
	mu     sync.Mutex
	values map[model.EntityKind]int64
}

func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{values: make(map[model.EntityKind]int64)}
}

func (r *SequenceRepository) Seed(_ context.Context, kind model.EntityKind, floor int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if floor > r.values[kind] {
		r.values[kind] = floor
	}
	return nil
}

func (r *SequenceRepository) Next(_ context.Context, kind model.EntityKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[kind]++
	return r.values[kind], nil
}
