package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
)

func testPeriod(t *testing.T, start, end string) domain.Period {
	t.Helper()
	s, err := time.Parse(time.DateOnly, start)
	require.NoError(t, err)
	e, err := time.Parse(time.DateOnly, end)
	require.NoError(t, err)
	p, err := domain.NewPeriod(s, e)
	require.NoError(t, err)
	return p
}

func TestMemoryStore_GetSetExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	store := NewMemoryStore(5000*time.Millisecond, clk)
	key := NewKey("biz-1", testPeriod(t, "2024-01-01", "2024-01-14"))

	entry, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry, "cache vazio deve devolver nil")

	require.NoError(t, store.Set(ctx, key, []byte(`{"x":1}`)))

	clk.Advance(4999 * time.Millisecond)
	entry, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, entry, "dentro do TTL deve haver HIT")
	assert.Equal(t, []byte(`{"x":1}`), entry.Payload)

	clk.Advance(2 * time.Millisecond)
	entry, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry, "após o TTL a entrada deve expirar")
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_DeleteBusiness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute, nil)

	k1 := NewKey("biz-1", testPeriod(t, "2024-01-01", "2024-01-14"))
	k2 := NewKey("biz-1", testPeriod(t, "2024-02-01", "2024-02-29"))
	k3 := NewKey("biz-2", testPeriod(t, "2024-01-01", "2024-01-14"))

	for _, k := range []Key{k1, k2, k3} {
		require.NoError(t, store.Set(ctx, k, []byte("payload")))
	}

	removed, err := store.DeleteBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "todas as janelas do negócio devem ser removidas")

	entry, _ := store.Get(ctx, k3)
	assert.NotNil(t, entry, "outros negócios não devem ser afetados")
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	store := NewMemoryStore(time.Second, clk)

	require.NoError(t, store.Set(ctx, NewKey("biz-1", testPeriod(t, "2024-01-01", "2024-01-02")), []byte("a")))
	clk.Advance(2 * time.Second)
	require.NoError(t, store.Set(ctx, NewKey("biz-1", testPeriod(t, "2024-01-03", "2024-01-04")), []byte("b")))

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
}

func TestKey_String(t *testing.T) {
	key := NewKey("biz-1", testPeriod(t, "2024-01-01", "2024-01-14"))
	assert.Equal(t, "abc:cache:biz-1:2024-01-01:2024-01-14", key.String())
	assert.Equal(t, `abc:cache:biz\*1:*`, businessPattern("biz*1"))
}
