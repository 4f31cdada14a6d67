package aggregator

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/supplement-inventory/internal/model"
)

var now = time.Date(2024, time.November, 20, 15, 30, 0, 0, time.UTC)

func unit(id string, state model.UnitState, cost int64, exp *time.Time) *model.Unit {
	return &model.Unit{
		ID:             id,
		ProductID:      "prod-1",
		SKU:            "SKU-1",
		WarehouseID:    "wh-lima",
		State:          state,
		Cost:           decimal.NewFromInt(cost),
		ExpirationDate: exp,
	}
}

func date(y int, m time.Month, d int) *time.Time {
	return lo.ToPtr(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestAggregateScenario(t *testing.T) {
	t.Parallel()

	units := []*model.Unit{
		unit("u1", model.StateAvailableDestination, 10, nil),
		unit("u2", model.StateAvailableDestination, 12, nil),
		unit("u3", model.StateReserved, 8, nil),
	}

	r := Aggregate(units, model.RollupParams{Now: now})

	assert.Equal(t, "prod-1", r.ProductID)
	assert.Equal(t, 2, r.AvailableAtDestination)
	assert.Equal(t, 1, r.Reserved)
	assert.Equal(t, 3, r.TotalUnits)
	assert.True(t, decimal.NewFromInt(30).Equal(r.TotalValue), r.TotalValue.String())
	assert.True(t, decimal.NewFromInt(10).Equal(r.AverageCost), r.AverageCost.String())
	assert.Equal(t, 0, r.ExpiringSoon)
	assert.Equal(t, []string{"u1", "u2"}, r.AllocationOrder)
	assert.Equal(t, map[string]int{"wh-lima": 3}, r.ByWarehouse)
	assert.Empty(t, r.Alerts)
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	r := Aggregate(nil, model.RollupParams{Now: now})

	assert.Equal(t, 0, r.TotalUnits)
	assert.True(t, r.TotalValue.IsZero())
	assert.True(t, r.AverageCost.IsZero())
	assert.Nil(t, r.NextExpiration)
	assert.Empty(t, r.AllocationOrder)
	for _, s := range model.States {
		assert.Zero(t, r.Counts[s])
	}
}

func TestAggregateCountsAndValueInvariants(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)

	for round := 0; round < 50; round++ {
		n := faker.IntRange(1, 40)
		units := make([]*model.Unit, 0, n)
		for i := 0; i < n; i++ {
			state := model.States[faker.IntRange(0, len(model.States)-1)]
			var exp *time.Time
			if faker.Bool() {
				exp = lo.ToPtr(now.AddDate(0, 0, faker.IntRange(-60, 400)))
			}
			u := unit(faker.UUID(), state, int64(faker.IntRange(0, 500)), exp)
			u.Cost = u.Cost.Add(decimal.New(int64(faker.IntRange(0, 99)), -2))
			units = append(units, u)
		}

		r := Aggregate(units, model.RollupParams{Now: now})

		sum := 0
		for _, c := range r.Counts {
			sum += c
		}
		require.Equal(t, r.TotalUnits, sum)
		require.Equal(t, r.TotalUnits,
			r.ReceivedOrigin+r.InTransit+r.AvailableAtDestination+r.Reserved+r.Sold+r.Problems)

		want := r.TotalValue.Div(decimal.NewFromInt(int64(r.TotalUnits)))
		assert.True(t, want.Sub(r.AverageCost).Abs().LessThan(decimal.New(1, -averageCostPlaces)),
			"average %s vs %s", r.AverageCost, want)

		again := Aggregate(units, model.RollupParams{Now: now})
		assert.Equal(t, r, again)
	}
}

func TestAggregateValuationExcludesSoldAndProblems(t *testing.T) {
	t.Parallel()

	units := []*model.Unit{
		unit("a", model.StateReceivedOrigin, 5, nil),
		unit("b", model.StateInTransitOrigin, 7, nil),
		unit("c", model.StateSold, 100, nil),
		unit("d", model.StateExpired, 100, nil),
		unit("e", model.StateDamaged, 100, nil),
	}

	r := Aggregate(units, model.RollupParams{Now: now})

	assert.True(t, decimal.NewFromInt(12).Equal(r.TotalValue))
	assert.True(t, decimal.RequireFromString("2.4").Equal(r.AverageCost), r.AverageCost.String())
	assert.Equal(t, 1, r.InTransit)
	assert.Equal(t, 2, r.Problems)
	assert.Contains(t, r.Alerts, model.Alert{Code: model.AlertProblems, Count: 2})
	assert.Equal(t, map[string]int{"wh-lima": 2}, r.ByWarehouse)
}

func TestAggregateExpiringSoon(t *testing.T) {
	t.Parallel()

	units := []*model.Unit{
		unit("today", model.StateAvailableDestination, 1, date(2024, time.November, 20)),
		unit("edge", model.StateReceivedOrigin, 1, date(2024, time.December, 20)),
		unit("later", model.StateAvailableDestination, 1, date(2024, time.December, 21)),
		unit("past", model.StateAvailableDestination, 1, date(2024, time.November, 19)),
		unit("sold", model.StateSold, 1, date(2024, time.November, 25)),
		unit("expired", model.StateExpired, 1, date(2024, time.November, 25)),
		unit("none", model.StateReserved, 1, nil),
	}

	r := Aggregate(units, model.RollupParams{Now: now})

	assert.Equal(t, 3, r.ExpiringSoon) // today, edge, expired
	assert.Equal(t, 1, r.PastExpiration)
	require.NotNil(t, r.NextExpiration)
	assert.Equal(t, *date(2024, time.November, 19), *r.NextExpiration)
	assert.Equal(t, []string{"past", "today", "later"}, r.AllocationOrder)
	assert.Contains(t, r.Alerts, model.Alert{Code: model.AlertExpiringSoon, Count: 3})
	assert.Contains(t, r.Alerts, model.Alert{Code: model.AlertPastExpiration, Count: 1})

	narrow := Aggregate(units, model.RollupParams{Now: now, ExpiryWindowDays: 5})
	assert.Equal(t, 2, narrow.ExpiringSoon) // today, expired
}

func TestSortFEFO(t *testing.T) {
	t.Parallel()

	units := []*model.Unit{
		unit("none", model.StateAvailableDestination, 1, nil),
		unit("jan", model.StateAvailableDestination, 1, date(2025, time.January, 10)),
		unit("dec", model.StateAvailableDestination, 1, date(2024, time.December, 1)),
	}

	got := lo.Map(SortFEFO(units), func(u *model.Unit, _ int) string { return u.ID })
	assert.Equal(t, []string{"dec", "jan", "none"}, got)
	assert.Equal(t, "none", units[0].ID, "input must not be reordered")

	ties := []*model.Unit{
		unit("b", model.StateAvailableDestination, 1, date(2025, time.March, 1)),
		unit("z", model.StateAvailableDestination, 1, nil),
		unit("a", model.StateAvailableDestination, 1, date(2025, time.March, 1)),
		unit("y", model.StateAvailableDestination, 1, nil),
		nil,
	}
	got = lo.Map(SortFEFO(ties), func(u *model.Unit, _ int) string { return u.ID })
	assert.Equal(t, []string{"a", "b", "y", "z"}, got)
}

func TestStockCritical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		available int
		params    model.RollupParams
		want      bool
	}{
		{name: "no thresholds", available: 0, params: model.RollupParams{}, want: false},
		{name: "below reorder point", available: 4, params: model.RollupParams{ReorderPoint: 5}, want: true},
		{name: "at reorder point", available: 5, params: model.RollupParams{ReorderPoint: 5}, want: false},
		{name: "below capacity share", available: 19, params: model.RollupParams{Capacity: 100, CriticalRatio: 0.2}, want: true},
		{name: "at capacity share", available: 20, params: model.RollupParams{Capacity: 100, CriticalRatio: 0.2}, want: false},
		{name: "capacity without ratio", available: 0, params: model.RollupParams{Capacity: 100}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StockCritical(tt.available, tt.params))
		})
	}
}

func TestAggregateStockCriticalAlert(t *testing.T) {
	t.Parallel()

	units := []*model.Unit{unit("u1", model.StateAvailableDestination, 3, nil)}

	r := Aggregate(units, model.RollupParams{Now: now, ReorderPoint: 10})

	assert.True(t, r.StockCritical)
	assert.Equal(t, []model.Alert{{Code: model.AlertStockCritical, Count: 1}}, r.Alerts)
}
