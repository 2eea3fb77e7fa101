package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shazoom/cache"
	"shazoom/fingerprint"
)

func TestNewKeyIsStableAndLabelSensitive(t *testing.T) {
	k1 := cache.NewKey(42, "song-a")
	k2 := cache.NewKey(42, "song-a")
	k3 := cache.NewKey(42, "song-b")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestEntriesRoundTripThroughFingerprintTriples(t *testing.T) {
	triples := []fingerprint.Triple{
		{Key: fingerprint.Key(7), AnchorSlice: 3},
		{Key: fingerprint.Key(9), AnchorSlice: 4},
	}

	entries := cache.ToEntries(triples)
	require.Len(t, entries, 2)

	back := cache.FromEntries(entries)
	assert.Equal(t, triples, back)
}

func TestFileCacheMissThenHit(t *testing.T) {
	dir := t.TempDir()
	c := cache.NewFileCache(dir)
	key := cache.NewKey(1, "song")

	_, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, hit)

	entries := []cache.Entry{{Key: fingerprint.Key(5), AnchorSlice: 2}}
	require.NoError(t, c.Put(context.Background(), key, entries))

	got, hit, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, entries, got)
}

func TestFileCacheCreatesDirOnFirstPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := cache.NewFileCache(dir)

	require.NoError(t, c.Put(context.Background(), cache.NewKey(1, "song"), nil))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestNullCacheAlwaysMisses(t *testing.T) {
	var c cache.NullCache
	_, hit, err := c.Get(context.Background(), cache.NewKey(1, "song"))
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.Put(context.Background(), cache.NewKey(1, "song"), []cache.Entry{{Key: fingerprint.Key(1)}}))

	_, hit, err = c.Get(context.Background(), cache.NewKey(1, "song"))
	require.NoError(t, err)
	assert.False(t, hit)
}
