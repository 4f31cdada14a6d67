package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func TestEntityToModelCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cost    string
		want    decimal.Decimal
		wantErr bool
	}{
		{name: "exact cost", cost: "10.50", want: decimal.RequireFromString("10.5")},
		{name: "zero", cost: "0", want: decimal.Zero},
		{name: "not a number", cost: "NaN", wantErr: true},
		{name: "infinite", cost: "Infinity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cost, err := bson.ParseDecimal128(tt.cost)
			require.NoError(t, err)

			u, err := EntityToModel(&UnitEntity{ID: "u-1", State: string(model.StateAvailableDestination), Cost: cost})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, "u-1")
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(u.Cost), "got %s", u.Cost)
			assert.Equal(t, model.StateAvailableDestination, u.State)
		})
	}
}

func TestEntityRoundTripKeepsCost(t *testing.T) {
	t.Parallel()

	in := &model.Unit{ID: "u-2", ProductID: "p-1", State: model.StateReceivedOrigin, Cost: decimal.RequireFromString("12.3456")}

	ent, err := EntityFromModel(in)
	require.NoError(t, err)

	out, err := EntityToModel(ent)
	require.NoError(t, err)
	assert.True(t, in.Cost.Equal(out.Cost))
	assert.Equal(t, in.ProductID, out.ProductID)
}
