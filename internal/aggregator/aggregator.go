// Package aggregator computes per-product inventory roll-ups from unit
// records. Everything here is pure: the same units and parameters always yield
// the same roll-up.
package aggregator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/you-humble/supplement-inventory/internal/model"
)

const (
	DefaultExpiryWindowDays = 30
	averageCostPlaces       = 4
)

// Aggregate builds the roll-up of units, which are expected to belong to one
// product. params.Now is the reference instant for expiration alerts.
func Aggregate(units []*model.Unit, params model.RollupParams) *model.ProductRollup {
	window := params.ExpiryWindowDays
	if window <= 0 {
		window = DefaultExpiryWindowDays
	}
	today := dayOf(params.Now)

	r := &model.ProductRollup{
		Counts:          make(map[model.UnitState]int, len(model.States)),
		ByWarehouse:     make(map[string]int),
		TotalValue:      decimal.Zero,
		AverageCost:     decimal.Zero,
		AllocationOrder: []string{},
		ComputedAt:      params.Now,
	}
	for _, s := range model.States {
		r.Counts[s] = 0
	}

	for _, u := range units {
		if u == nil {
			continue
		}
		if r.ProductID == "" {
			r.ProductID = u.ProductID
			r.SKU = u.SKU
		}

		r.Counts[u.State]++
		r.TotalUnits++

		if !u.State.Terminal() {
			r.TotalValue = r.TotalValue.Add(u.Cost)
			r.ByWarehouse[u.WarehouseID]++
		}

		if u.ExpirationDate == nil {
			continue
		}
		days := daysBetween(today, dayOf(*u.ExpirationDate))
		if u.State != model.StateSold && days >= 0 && days <= window {
			r.ExpiringSoon++
		}
		if !u.State.Terminal() {
			if days < 0 {
				r.PastExpiration++
			}
			if r.NextExpiration == nil || u.ExpirationDate.Before(*r.NextExpiration) {
				exp := *u.ExpirationDate
				r.NextExpiration = &exp
			}
		}
	}

	r.ReceivedOrigin = r.Counts[model.StateReceivedOrigin]
	r.InTransitOrigin = r.Counts[model.StateInTransitOrigin]
	r.InTransitDestination = r.Counts[model.StateInTransitDestination]
	r.AvailableAtDestination = r.Counts[model.StateAvailableDestination]
	r.Reserved = r.Counts[model.StateReserved]
	r.Sold = r.Counts[model.StateSold]
	r.Expired = r.Counts[model.StateExpired]
	r.Damaged = r.Counts[model.StateDamaged]

	r.InTransit = r.InTransitOrigin + r.InTransitDestination
	r.Problems = r.Expired + r.Damaged

	if r.TotalUnits > 0 {
		r.AverageCost = r.TotalValue.DivRound(decimal.NewFromInt(int64(r.TotalUnits)), averageCostPlaces)
	}

	for _, u := range SortFEFO(units) {
		if u.State == model.StateAvailableDestination {
			r.AllocationOrder = append(r.AllocationOrder, u.ID)
		}
	}

	r.StockCritical = StockCritical(r.AvailableAtDestination, params)
	r.Alerts = alerts(r)

	return r
}

// StockCritical reports whether available is below the fixed reorder point or
// below the configured share of capacity.
func StockCritical(available int, params model.RollupParams) bool {
	if params.ReorderPoint > 0 && available < params.ReorderPoint {
		return true
	}
	if params.Capacity > 0 && params.CriticalRatio > 0 {
		return float64(available) < params.CriticalRatio*float64(params.Capacity)
	}
	return false
}

// SortFEFO returns a copy of units ordered first-expire-first-out. Units
// without an expiration date go last; ties are broken by id.
func SortFEFO(units []*model.Unit) []*model.Unit {
	out := make([]*model.Unit, 0, len(units))
	for _, u := range units {
		if u != nil {
			out = append(out, u)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ExpirationDate, out[j].ExpirationDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return out[i].ID < out[j].ID
		}
	})

	return out
}

func alerts(r *model.ProductRollup) []model.Alert {
	out := make([]model.Alert, 0, 4)
	if r.ExpiringSoon > 0 {
		out = append(out, model.Alert{Code: model.AlertExpiringSoon, Count: r.ExpiringSoon})
	}
	if r.PastExpiration > 0 {
		out = append(out, model.Alert{Code: model.AlertPastExpiration, Count: r.PastExpiration})
	}
	if r.StockCritical {
		out = append(out, model.Alert{Code: model.AlertStockCritical, Count: r.AvailableAtDestination})
	}
	if r.Problems > 0 {
		out = append(out, model.Alert{Code: model.AlertProblems, Count: r.Problems})
	}
	return out
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
