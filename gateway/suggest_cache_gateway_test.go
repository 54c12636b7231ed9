package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCacheGateway_SetAndGet(t *testing.T) {
	_, client := newTestRedis(t)
	g := NewSuggestCacheGateway(client, 15*time.Minute)

	ctx := context.Background()
	want := []string{"go generics", "go modules", "goroutines"}

	require.NoError(t, g.Set(ctx, "go", want))

	got, hit, err := g.Get(ctx, "go")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestSuggestCacheGateway_Miss(t *testing.T) {
	_, client := newTestRedis(t)
	g := NewSuggestCacheGateway(client, 15*time.Minute)

	_, hit, err := g.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSuggestCacheGateway_EntryExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	g := NewSuggestCacheGateway(client, time.Minute)

	ctx := context.Background()
	require.NoError(t, g.Set(ctx, "re", []string{"redis"}))

	mr.FastForward(2 * time.Minute)

	_, hit, err := g.Get(ctx, "re")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSuggestCacheGateway_CorruptEntryIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	g := NewSuggestCacheGateway(client, time.Minute)

	mr.Set("search:suggest:bad", "{not json")

	_, hit, err := g.Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSuggestCacheGateway_EmptyListIsCacheable(t *testing.T) {
	_, client := newTestRedis(t)
	g := NewSuggestCacheGateway(client, time.Minute)

	ctx := context.Background()
	require.NoError(t, g.Set(ctx, "zz", []string{}))

	got, hit, err := g.Get(ctx, "zz")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, got)
}
