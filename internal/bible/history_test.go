package bible

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
)

func newTestHistory(t *testing.T) (*History, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewHistory(context.Background(), kv, zap.NewNop()), kv
}

func TestHistoryNewestFirstWithDedup(t *testing.T) {
	h, _ := newTestHistory(t)
	ctx := context.Background()

	h.Add(ctx, "love")
	h.Add(ctx, "faith")
	h.Add(ctx, "hope")
	assert.Equal(t, []string{"hope", "faith", "love"}, h.Queries())

	// Re-searching moves the query to the front, no duplicate.
	h.Add(ctx, "love")
	assert.Equal(t, []string{"love", "hope", "faith"}, h.Queries())
}

func TestHistoryIgnoresBlankQueries(t *testing.T) {
	h, _ := newTestHistory(t)

	h.Add(context.Background(), "   ")
	assert.Empty(t, h.Queries())
}

func TestHistoryCappedAtLimit(t *testing.T) {
	h, _ := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < historyLimit+5; i++ {
		h.Add(ctx, fmt.Sprintf("query-%d", i))
	}

	queries := h.Queries()
	require.Len(t, queries, historyLimit)
	assert.Equal(t, fmt.Sprintf("query-%d", historyLimit+4), queries[0])
}

func TestHistoryRemoveAndClear(t *testing.T) {
	h, _ := newTestHistory(t)
	ctx := context.Background()

	h.Add(ctx, "love")
	h.Add(ctx, "faith")

	h.Remove(ctx, "love")
	assert.Equal(t, []string{"faith"}, h.Queries())

	h.Remove(ctx, "never-searched")
	assert.Equal(t, []string{"faith"}, h.Queries())

	h.Clear(ctx)
	assert.Empty(t, h.Queries())
}

func TestHistorySurvivesReload(t *testing.T) {
	h, kv := newTestHistory(t)
	ctx := context.Background()

	h.Add(ctx, "love")
	h.Add(ctx, "faith")

	reloaded := NewHistory(ctx, kv, zap.NewNop())
	assert.Equal(t, []string{"faith", "love"}, reloaded.Queries())
}
