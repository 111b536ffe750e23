// Package bookmark owns the reader's bookmark list. Adding a bookmark for
// an already-bookmarked verse removes it instead (toggle), and the list is
// kept newest-first.
package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
)

const bookmarksStorageKey = "bible-sage-bookmarks"

// flushAttempts bounds immediate retries of a persist before deferring to
// the next flusher tick.
const flushAttempts = 3

type Bookmark struct {
	ID        string `json:"id"`
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// BookmarkID derives the deterministic id for a verse coordinate. The id
// doubles as the uniqueness key that drives toggle behavior.
func BookmarkID(book string, chapter, verse int) string {
	return fmt.Sprintf("%s-%d-%d", book, chapter, verse)
}

// PersistStatus is the observable state of the write-behind queue.
type PersistStatus struct {
	Dirty         bool   `json:"dirty"`
	FlushCount    int64  `json:"flush_count"`
	FailedFlushes int64  `json:"failed_flushes"`
	LastError     string `json:"last_error,omitempty"`
}

type Store struct {
	mu        sync.RWMutex
	bookmarks []Bookmark
	dirtyGen  int64
	savedGen  int64
	status    PersistStatus

	kv  storage.Store
	log *zap.Logger
}

// NewStore loads the bookmark list from storage; a failed or corrupt load
// logs and starts empty rather than blocking startup.
func NewStore(ctx context.Context, kv storage.Store, log *zap.Logger) *Store {
	s := &Store{kv: kv, log: log}

	data, err := kv.Get(ctx, bookmarksStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("failed to load bookmarks, starting empty", zap.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(data, &s.bookmarks); err != nil {
		log.Warn("corrupt bookmark data, starting empty", zap.Error(err))
		s.bookmarks = nil
	}
	return s
}

// Add toggles: if the verse is already bookmarked the existing record is
// removed and (Bookmark{}, false) comes back; otherwise the new bookmark
// is prepended so the list stays newest-first.
func (s *Store) Add(book string, chapter, verse int, text string) (Bookmark, bool) {
	id := BookmarkID(book, chapter, verse)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookmarks {
		if b.ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			s.dirtyGen++
			return Bookmark{}, false
		}
	}

	bookmark := Bookmark{
		ID:        id,
		Book:      book,
		Chapter:   chapter,
		Verse:     verse,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	s.bookmarks = append([]Bookmark{bookmark}, s.bookmarks...)
	s.dirtyGen++
	return bookmark, true
}

// Remove deletes by id; absent ids are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookmarks {
		if b.ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			s.dirtyGen++
			return
		}
	}
}

// ClearAll unconditionally empties the list. Confirming with the user
// first is the caller's job.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookmarks = nil
	s.dirtyGen++
}

// IsBookmarked recomputes the coordinate id and checks membership.
func (s *Store) IsBookmarked(book string, chapter, verse int) bool {
	id := BookmarkID(book, chapter, verse)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookmarks {
		if b.ID == id {
			return true
		}
	}
	return false
}

// All returns the bookmarks, newest first.
func (s *Store) All() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// Status reports unsaved changes and flush history.
func (s *Store) Status() PersistStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Dirty = s.dirtyGen != s.savedGen
	return status
}

// StartFlusher persists dirty state on the given interval until the
// context is cancelled, then drains one final time.
func (s *Store) StartFlusher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("bookmark flusher started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.SaveNow(flushCtx); err != nil {
				s.log.Error("final flush failed", zap.Error(err))
			}
			cancel()
			s.log.Info("bookmark flusher stopped")
			return
		case <-ticker.C:
			if err := s.SaveNow(ctx); err != nil {
				s.log.Warn("flush failed, bookmarks stay dirty", zap.Error(err))
			}
		}
	}
}

// SaveNow synchronously persists the list if it has unsaved changes.
func (s *Store) SaveNow(ctx context.Context) error {
	s.mu.RLock()
	gen := s.dirtyGen
	if gen == s.savedGen {
		s.mu.RUnlock()
		return nil
	}
	data, err := json.Marshal(s.bookmarks)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("snapshot bookmarks: %w", err)
	}

	var setErr error
	for attempt := 1; attempt <= flushAttempts; attempt++ {
		if setErr = s.kv.Set(ctx, bookmarksStorageKey, data); setErr == nil {
			break
		}
		s.log.Warn("persist attempt failed",
			zap.Int("attempt", attempt), zap.Error(setErr))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if setErr != nil {
		s.status.FailedFlushes++
		s.status.LastError = setErr.Error()
		return fmt.Errorf("persist bookmarks: %w", setErr)
	}
	s.savedGen = gen
	s.status.FlushCount++
	return nil
}
