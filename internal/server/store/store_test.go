package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := map[string]any{"name": "Alice", "email": "alice@example.com"}
	require.NoError(t, s.Put(ctx, "users/u1", value))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, value, got)

	name, err := s.Get(ctx, "users/u1/name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestMemoryStore_AbsentNodeIsNil(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Get(context.Background(), "nothing/here")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_PatchMergesSiblings(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "users/u1", map[string]any{"name": "Alice", "email": "alice@example.com"}))
	require.NoError(t, s.Patch(ctx, "users/u1", map[string]any{"name": "Alicia"}))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Alicia", "email": "alice@example.com"}, got)
}

func TestMemoryStore_PatchCreatesNode(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Patch(ctx, "users/u9", map[string]any{"name": "New"}))
	got, err := s.Get(ctx, "users/u9")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "New"}, got)
}

func TestMemoryStore_PostGeneratesOrderedKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Post(ctx, "questions", map[string]any{"n": i})
		require.NoError(t, err)
		assert.Len(t, id, 20)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	got, err := s.Get(ctx, "questions")
	require.NoError(t, err)
	assert.Len(t, got.(map[string]any), 3)
}

func TestMemoryStore_PutNilDeletes(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "users/u1", map[string]any{"name": "Alice"}))
	require.NoError(t, s.Put(ctx, "users/u1", nil))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetReturnsDetachedValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "users/u1", map[string]any{"name": "Alice"}))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	got.(map[string]any)["name"] = "Mallory"

	again, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.(map[string]any)["name"])
}

func TestMemoryStore_ConcurrentReadWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if err := s.Put(ctx, fmt.Sprintf("questions/q%03d", i), map[string]any{"body": "hello"}); err != nil {
				t.Errorf("put: %v", err)
				return
			}
		}
	}()

	// Encoding the result is the point: handlers marshal Get results after
	// the store lock is released, so the value must not alias the tree.
	for {
		got, err := s.Get(ctx, "questions")
		require.NoError(t, err)
		if _, err := json.Marshal(got); err != nil {
			t.Fatalf("marshal: %v", err)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestNewPushID_TimestampPrefixOrders(t *testing.T) {
	a := newPushID(time.UnixMilli(1_000_000))
	b := newPushID(time.UnixMilli(2_000_000))
	assert.Less(t, a[:8], b[:8])
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "users/u1", map[string]any{"name": "Alice"}))
	id, err := s.Post(ctx, "questions", map[string]any{"name": "Lunch?"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	name, err := s2.Get(ctx, "users/u1/name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	q, err := s2.Get(ctx, "questions/"+id+"/name")
	require.NoError(t, err)
	assert.Equal(t, "Lunch?", q)
}
