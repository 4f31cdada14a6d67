package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(SetNopLogger)

	require.NoError(t, Init("info", true))
	require.NoError(t, Init(" DEBUG ", false))

	err := Init("loud", true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse level")
}

func TestContextWith(t *testing.T) {
	ctx := ContextWith(context.Background(), String("request_id", "r-1"))
	ctx = ContextWith(ctx, String("unit_id", "u-1"))

	got := fieldsFrom(ctx, []Field{Int("n", 1)})
	require.Len(t, got, 3)
	assert.Equal(t, "request_id", got[0].Key)
	assert.Equal(t, "unit_id", got[1].Key)
	assert.Equal(t, "n", got[2].Key)

	assert.Len(t, fieldsFrom(context.Background(), nil), 0)
}

func TestSyncNop(t *testing.T) {
	t.Cleanup(SetNopLogger)

	SetNopLogger()
	assert.NoError(t, Sync())
}
