package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Hash   string `json:"hash"`
	Amount string `json:"amount"`
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	var out entry
	found, err := store.Read(ctx, "thor1abc", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Write(ctx, "thor1abc", entry{Hash: "AAA", Amount: "100"}))

	raw, err := os.ReadFile(filepath.Join(store.Dir, "thor1abc.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "    \"hash\": \"AAA\"")

	found, err = store.Read(ctx, "thor1abc", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Hash: "AAA", Amount: "100"}, out)

	require.NoError(t, store.Clear(ctx, "thor1abc"))
	found, err = store.Read(ctx, "thor1abc", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Clear(ctx, "never-written"))
}

func TestFileStoreReadsFilesWrittenByAnotherProcess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tx.json"), []byte(`{"hash":"BBB"}`), 0o644))

	var out entry
	found, err := NewFileStore(dir).Read(ctx, "tx", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "BBB", out.Hash)
}

func TestFileStoreClearAll(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, store.Write(ctx, "a", entry{Hash: "1"}))
	require.NoError(t, store.ClearAll())

	var out entry
	found, err := store.Read(ctx, "a", &out)
	require.NoError(t, err)
	assert.False(t, found)
	_, err = os.Stat(store.Dir)
	assert.True(t, os.IsNotExist(err))
}

func TestRedisStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping test: Redis not available")
	}

	store := NewRedisStore(client, "thorchain-cryptotax-test:", time.Minute)
	require.NoError(t, store.Write(ctx, "key", entry{Hash: "CCC"}))

	var out entry
	found, err := store.Read(ctx, "key", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "CCC", out.Hash)

	require.NoError(t, store.Clear(ctx, "key"))
	found, err = store.Read(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
