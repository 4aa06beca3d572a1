package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type doc struct {
	Jobs []string `json:"jobs"`
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var out doc
	hit, err := m.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, m.SetJSON(ctx, "k", doc{Jobs: []string{"a", "b"}}, time.Minute))
	hit, err = m.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out.Jobs)
}

func TestMemory_ReadersGetIndependentCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetJSON(ctx, "k", doc{Jobs: []string{"a"}}, time.Minute))

	var first doc
	_, _ = m.GetJSON(ctx, "k", &first)
	first.Jobs[0] = "mutated"

	var second doc
	_, _ = m.GetJSON(ctx, "k", &second)
	assert.Equal(t, []string{"a"}, second.Jobs)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.SetJSON(ctx, "k", doc{}, time.Minute))

	now = now.Add(59 * time.Second)
	hit, _ := m.GetJSON(ctx, "k", &doc{})
	assert.True(t, hit)

	now = now.Add(time.Second)
	hit, _ = m.GetJSON(ctx, "k", &doc{})
	assert.False(t, hit)
}

func TestMemory_DeleteAndPattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, k := range []string{"jobs:snapshot:1", "jobs:snapshot:2", "other"} {
		require.NoError(t, m.SetJSON(ctx, k, doc{}, time.Minute))
	}

	require.NoError(t, m.Delete(ctx, "other"))
	require.NoError(t, m.DeleteByPattern(ctx, "jobs:snapshot:*"))

	for _, k := range []string{"jobs:snapshot:1", "jobs:snapshot:2", "other"} {
		hit, _ := m.GetJSON(ctx, k, &doc{})
		assert.False(t, hit, k)
	}
	assert.Error(t, m.DeleteByPattern(ctx, "["))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.SetJSON(ctx, "k", doc{Jobs: []string{"x", "y"}}, time.Minute)
				var out doc
				if hit, err := m.GetJSON(ctx, "k", &out); hit && err == nil {
					assert.Len(t, out.Jobs, 2)
				}
			}
		}()
	}
	wg.Wait()
}

func TestRedis_BypassWithoutAddr(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(RedisOptions{}, zap.NewNop())

	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	hit, err := r.GetJSON(ctx, "k", &doc{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.SetJSON(ctx, "k", doc{}, time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "*"))
	assert.NoError(t, r.Close())
}

func TestRedis_BypassWhenUnreachable(t *testing.T) {
	r := NewRedis(RedisOptions{Addr: "127.0.0.1:1"}, zap.NewNop())
	assert.False(t, r.Available())

	var nilRedis *Redis
	hit, err := nilRedis.GetJSON(context.Background(), "k", &doc{})
	assert.NoError(t, err)
	assert.False(t, hit)
}
