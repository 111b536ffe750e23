package study

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Persistence is write-behind: mutations mark their collection dirty and
// return; a background flusher drains dirty collections to storage. A
// failed flush leaves the collection dirty and the in-memory state stands —
// callers are never rolled back for a storage fault.

// flushAttempts bounds the immediate retries of one collection write
// before deferring to the next flusher tick.
const flushAttempts = 3

// PersistStatus is the observable state of the write-behind queue.
type PersistStatus struct {
	Dirty         bool   `json:"dirty"`
	FlushCount    int64  `json:"flush_count"`
	FailedFlushes int64  `json:"failed_flushes"`
	LastError     string `json:"last_error,omitempty"`
}

// markDirtyLocked bumps the collection's generation. The flusher only
// clears the flag when the generation it snapshotted is still current, so
// a mutation landing mid-flush is never lost.
func (s *Store) markDirtyLocked(key string) {
	s.dirty[key]++
}

// Status reports whether unsaved changes exist and how flushing has fared.
func (s *Store) Status() PersistStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Dirty = len(s.dirty) > 0
	return status
}

// StartFlusher drains dirty collections on the given interval until the
// context is cancelled, then performs a final synchronous drain so shutdown
// does not lose the tail of the session.
func (s *Store) StartFlusher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("study flusher started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.SaveNow(flushCtx); err != nil {
				s.log.Error("final flush failed", zap.Error(err))
			}
			cancel()
			s.log.Info("study flusher stopped")
			return
		case <-ticker.C:
			if err := s.SaveNow(ctx); err != nil {
				s.log.Warn("flush failed, collections stay dirty", zap.Error(err))
			}
		}
	}
}

// SaveNow synchronously persists every dirty collection. Collections that
// fail all attempts stay dirty for the next call.
func (s *Store) SaveNow(ctx context.Context) error {
	s.mu.RLock()
	pending := make(map[string][]byte, len(s.dirty))
	gens := make(map[string]int64, len(s.dirty))
	for key, gen := range s.dirty {
		data, err := s.snapshotLocked(key)
		if err != nil {
			s.mu.RUnlock()
			return fmt.Errorf("snapshot %q: %w", key, err)
		}
		pending[key] = data
		gens[key] = gen
	}
	s.mu.RUnlock()

	if len(pending) == 0 {
		return nil
	}

	var firstErr error
	for key, data := range pending {
		if err := s.writeWithRetry(ctx, key, data); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.mu.Lock()
			s.status.FailedFlushes++
			s.status.LastError = err.Error()
			s.mu.Unlock()
			continue
		}

		s.mu.Lock()
		if s.dirty[key] == gens[key] {
			delete(s.dirty, key)
		}
		s.status.FlushCount++
		s.mu.Unlock()
	}

	return firstErr
}

func (s *Store) writeWithRetry(ctx context.Context, key string, data []byte) error {
	var err error
	for attempt := 1; attempt <= flushAttempts; attempt++ {
		if err = s.kv.Set(ctx, key, data); err == nil {
			return nil
		}
		s.log.Warn("persist attempt failed",
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return fmt.Errorf("persist %q: %w", key, err)
}

// snapshotLocked marshals one collection; callers hold at least the read lock.
func (s *Store) snapshotLocked(key string) ([]byte, error) {
	switch key {
	case notesStorageKey:
		return json.Marshal(s.notes)
	case highlightsStorageKey:
		return json.Marshal(s.highlights)
	case annotationsStorageKey:
		return json.Marshal(s.annotations)
	case crossRefsStorageKey:
		return json.Marshal(s.crossRefs)
	default:
		return nil, fmt.Errorf("unknown collection key %q", key)
	}
}
