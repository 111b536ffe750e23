package bible

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
)

const historyStorageKey = "bible-sage-search-history"

// historyLimit caps stored queries; re-searching an old query moves it back
// to the front instead of duplicating it.
const historyLimit = 10

// History keeps the reader's recent search queries, newest first.
type History struct {
	mu      sync.RWMutex
	queries []string
	kv      storage.Store
	log     *zap.Logger
}

func NewHistory(ctx context.Context, kv storage.Store, log *zap.Logger) *History {
	h := &History{kv: kv, log: log}

	data, err := kv.Get(ctx, historyStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("failed to load search history, starting empty", zap.Error(err))
		}
		return h
	}
	if err := json.Unmarshal(data, &h.queries); err != nil {
		log.Warn("corrupt search history, starting empty", zap.Error(err))
		h.queries = nil
	}
	return h
}

// Add records a query at the head of the history, deduplicating and
// trimming to the limit. Blank queries are ignored.
func (h *History) Add(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}

	h.mu.Lock()
	filtered := make([]string, 0, len(h.queries)+1)
	filtered = append(filtered, trimmed)
	for _, q := range h.queries {
		if q != trimmed {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > historyLimit {
		filtered = filtered[:historyLimit]
	}
	h.queries = filtered
	h.mu.Unlock()

	h.save(ctx)
}

// Remove drops one query from the history; absent queries are a no-op.
func (h *History) Remove(ctx context.Context, query string) {
	h.mu.Lock()
	filtered := h.queries[:0]
	for _, q := range h.queries {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	h.queries = filtered
	h.mu.Unlock()

	h.save(ctx)
}

// Clear empties the history.
func (h *History) Clear(ctx context.Context) {
	h.mu.Lock()
	h.queries = nil
	h.mu.Unlock()

	h.save(ctx)
}

// Queries returns the history, newest first.
func (h *History) Queries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.queries))
	copy(out, h.queries)
	return out
}

func (h *History) save(ctx context.Context) {
	h.mu.RLock()
	data, err := json.Marshal(h.queries)
	h.mu.RUnlock()
	if err != nil {
		h.log.Error("failed to marshal search history", zap.Error(err))
		return
	}
	if err := h.kv.Set(ctx, historyStorageKey, data); err != nil {
		h.log.Error("failed to persist search history", zap.Error(err))
	}
}
