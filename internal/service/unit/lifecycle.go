package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/model"
)

// applyTransition returns a copy of u moved to target. u is left untouched.
func applyTransition(u *model.Unit, target model.UnitState, meta model.TransitionMetadata, now time.Time) (*model.Unit, error) {
	if !model.CanTransition(u.State, target) {
		return nil, errors.Join(model.ErrInvalidTransition,
			fmt.Errorf("unit %s: %s -> %s", u.ID, u.State, target))
	}

	warehouseID := strings.TrimSpace(meta.WarehouseID)
	country := strings.TrimSpace(meta.Country)
	reference := strings.TrimSpace(meta.Reference)
	reason := strings.TrimSpace(meta.Reason)

	movesWarehouse := target == model.StateInTransitDestination || target == model.StateAvailableDestination
	if (warehouseID != "" || country != "") && !movesWarehouse {
		return nil, errors.Join(model.ErrInvalidArgument,
			fmt.Errorf("warehouse can only change when entering %s or %s",
				model.StateInTransitDestination, model.StateAvailableDestination))
	}
	if reference != "" && target != model.StateReserved && target != model.StateSold {
		return nil, errors.Join(model.ErrInvalidArgument,
			fmt.Errorf("reference only applies to %s and %s", model.StateReserved, model.StateSold))
	}
	if reason != "" && !target.Problem() {
		return nil, errors.Join(model.ErrInvalidArgument,
			fmt.Errorf("reason only applies to %s and %s", model.StateExpired, model.StateDamaged))
	}

	at := meta.At
	if at.IsZero() {
		at = now
	}
	at = at.UTC()

	next := *u
	next.State = target
	next.UpdatedAt = lo.ToPtr(now.UTC())

	if warehouseID != "" {
		next.WarehouseID = warehouseID
	}
	if country != "" {
		next.Country = country
	}
	if reference != "" {
		next.Reference = reference
	}
	if reason != "" {
		next.Reason = reason
	}

	switch target {
	case model.StateInTransitOrigin:
		next.TransferredAt = lo.ToPtr(at)
	case model.StateAvailableDestination:
		next.ArrivedAt = lo.ToPtr(at)
	case model.StateReserved:
		next.ReservedAt = lo.ToPtr(at)
	case model.StateSold:
		next.SoldAt = lo.ToPtr(at)
	case model.StateExpired, model.StateDamaged:
		next.DisposedAt = lo.ToPtr(at)
	}

	return &next, nil
}
