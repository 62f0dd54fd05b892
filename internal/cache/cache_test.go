package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aperture/internal/core"
	"aperture/internal/log"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "cache.db"), log.New(log.DefaultConfig()))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleMonth() core.MonthData {
	return core.MonthData{
		Total: decimal.NewFromInt(500),
		Transactions: []core.Transaction{{
			Date:     "2026-03-05",
			Category: "飲食",
			Amount:   decimal.NewFromInt(500),
			Item:     "午餐",
			User:     "Annie",
			Currency: core.DefaultCurrency,
		}},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "2026-03", "Annie", sampleMonth()))

	got, fetchedAt, ok, err := store.Get(ctx, "2026-03", "Annie")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, fetchedAt.IsZero())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(500)))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, core.Date("2026-03-05"), got.Transactions[0].Date)
	assert.Equal(t, "午餐", got.Transactions[0].Item)
}

func TestGetMiss(t *testing.T) {
	store := newTestStore(t)
	_, _, ok, err := store.Get(context.Background(), "2026-04", "Annie")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "2026-03", "Annie", sampleMonth()))
	require.NoError(t, store.Put(ctx, "2026-03", "Annie", core.EmptyMonth()))

	got, _, ok, err := store.Get(ctx, "2026-03", "Annie")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.Transactions)
}

func TestUsersAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "2026-03", "Annie", sampleMonth()))

	_, _, ok, err := store.Get(ctx, "2026-03", "Aki")
	require.NoError(t, err)
	assert.False(t, ok)
}
