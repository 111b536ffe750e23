// Package study owns the reader's personal study records: notes,
// highlights, annotations and cross-references, keyed by verse id.
// Collections live in memory and are written through to the key-value
// store by a write-behind flusher; in-memory state is authoritative for
// the session.
package study

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
)

// Storage keys, one full JSON array per collection.
const (
	notesStorageKey       = "bible-sage-notes"
	highlightsStorageKey  = "bible-sage-highlights"
	annotationsStorageKey = "bible-sage-annotations"
	crossRefsStorageKey   = "bible-sage-cross-references"
)

var (
	// ErrEmptyContent rejects blank note/annotation bodies at the store.
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrUnknownColor rejects highlight colors outside the palette.
	ErrUnknownColor = errors.New("unknown highlight color")
)

// Store is the verse annotation store. Update and delete against an absent
// id are silent no-ops; the only failure the store itself reports to
// callers is input validation.
type Store struct {
	mu          sync.RWMutex
	notes       []Note
	highlights  []Highlight
	annotations []Annotation
	crossRefs   []CrossReference

	kv  storage.Store
	log *zap.Logger

	dirty  map[string]int64
	status PersistStatus
}

// NewStore loads all four collections from storage. A failed or corrupt
// load logs and falls back to an empty collection, the first-run state;
// startup never blocks on storage faults.
func NewStore(ctx context.Context, kv storage.Store, log *zap.Logger) *Store {
	s := &Store{
		kv:    kv,
		log:   log,
		dirty: make(map[string]int64),
	}

	loadCollection(ctx, kv, log, notesStorageKey, &s.notes)
	loadCollection(ctx, kv, log, highlightsStorageKey, &s.highlights)
	loadCollection(ctx, kv, log, annotationsStorageKey, &s.annotations)
	loadCollection(ctx, kv, log, crossRefsStorageKey, &s.crossRefs)

	return s
}

func loadCollection[T any](ctx context.Context, kv storage.Store, log *zap.Logger, key string, dst *[]T) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("failed to load collection, starting empty",
				zap.String("key", key), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Warn("corrupt collection, starting empty",
			zap.String("key", key), zap.Error(err))
		*dst = nil
	}
}

// Notes

// AddNote always appends a fresh record; many notes per verse is the
// intended cardinality.
func (s *Store) AddNote(verseID, content string) (Note, error) {
	if content == "" {
		return Note{}, ErrEmptyContent
	}

	now := nowMillis()
	note := Note{
		ID:        newRecordID(),
		VerseID:   verseID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.markDirtyLocked(notesStorageKey)
	s.mu.Unlock()

	return note, nil
}

func (s *Store) UpdateNote(id, content string) error {
	if content == "" {
		return ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Content = content
			s.notes[i].UpdatedAt = nowMillis()
			s.markDirtyLocked(notesStorageKey)
			return nil
		}
	}
	// Absent id: silently do nothing.
	return nil
}

func (s *Store) DeleteNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notes[:0]
	removed := false
	for _, n := range s.notes {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.notes = kept
	if removed {
		s.markDirtyLocked(notesStorageKey)
	}
}

// NotesByVerse returns the verse's notes in insertion order.
func (s *Store) NotesByVerse(verseID string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Note{}
	for _, n := range s.notes {
		if n.VerseID == verseID {
			out = append(out, n)
		}
	}
	return out
}

// Highlights

// AddHighlight upserts the verse's single highlight slot: an existing
// record keeps its id and gets the new color, otherwise a record is
// created. This is deliberately not the append path notes use.
func (s *Store) AddHighlight(verseID string, color HighlightColor) (Highlight, error) {
	hex, ok := highlightColors[color]
	if !ok {
		return Highlight{}, ErrUnknownColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.highlights {
		if s.highlights[i].VerseID == verseID {
			s.highlights[i].Color = hex
			s.highlights[i].UpdatedAt = nowMillis()
			s.markDirtyLocked(highlightsStorageKey)
			return s.highlights[i], nil
		}
	}

	h := Highlight{
		ID:        newRecordID(),
		VerseID:   verseID,
		Color:     hex,
		CreatedAt: nowMillis(),
	}
	s.highlights = append(s.highlights, h)
	s.markDirtyLocked(highlightsStorageKey)
	return h, nil
}

func (s *Store) RemoveHighlight(verseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.highlights[:0]
	removed := false
	for _, h := range s.highlights {
		if h.VerseID == verseID {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	s.highlights = kept
	if removed {
		s.markDirtyLocked(highlightsStorageKey)
	}
}

// HighlightForVerse returns the verse's highlight, if any.
func (s *Store) HighlightForVerse(verseID string) (Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.highlights {
		if h.VerseID == verseID {
			return h, true
		}
	}
	return Highlight{}, false
}

// Annotations (same contract shape as notes, separate collection)

func (s *Store) AddAnnotation(verseID, text string) (Annotation, error) {
	if text == "" {
		return Annotation{}, ErrEmptyContent
	}

	now := nowMillis()
	a := Annotation{
		ID:        newRecordID(),
		VerseID:   verseID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.annotations = append(s.annotations, a)
	s.markDirtyLocked(annotationsStorageKey)
	s.mu.Unlock()

	return a, nil
}

func (s *Store) UpdateAnnotation(id, text string) error {
	if text == "" {
		return ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.annotations {
		if s.annotations[i].ID == id {
			s.annotations[i].Text = text
			s.annotations[i].UpdatedAt = nowMillis()
			s.markDirtyLocked(annotationsStorageKey)
			return nil
		}
	}
	return nil
}

func (s *Store) DeleteAnnotation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.annotations[:0]
	removed := false
	for _, a := range s.annotations {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.annotations = kept
	if removed {
		s.markDirtyLocked(annotationsStorageKey)
	}
}

func (s *Store) AnnotationsByVerse(verseID string) []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Annotation{}
	for _, a := range s.annotations {
		if a.VerseID == verseID {
			out = append(out, a)
		}
	}
	return out
}

// Cross references

// AddCrossReference creates a directed edge. There is no duplicate-edge
// check: the same (source, target) pair can be linked any number of times.
func (s *Store) AddCrossReference(sourceVerseID, targetVerseID, note string) CrossReference {
	ref := CrossReference{
		ID:            newRecordID(),
		SourceVerseID: sourceVerseID,
		TargetVerseID: targetVerseID,
		Note:          note,
		CreatedAt:     nowMillis(),
	}

	s.mu.Lock()
	s.crossRefs = append(s.crossRefs, ref)
	s.markDirtyLocked(crossRefsStorageKey)
	s.mu.Unlock()

	return ref
}

// UpdateCrossReference replaces the edge's note; absent id is a no-op.
func (s *Store) UpdateCrossReference(id, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.crossRefs {
		if s.crossRefs[i].ID == id {
			s.crossRefs[i].Note = note
			s.markDirtyLocked(crossRefsStorageKey)
			return
		}
	}
}

func (s *Store) DeleteCrossReference(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.crossRefs[:0]
	removed := false
	for _, ref := range s.crossRefs {
		if ref.ID == id {
			removed = true
			continue
		}
		kept = append(kept, ref)
	}
	s.crossRefs = kept
	if removed {
		s.markDirtyLocked(crossRefsStorageKey)
	}
}

// CrossReferencesByVerse returns every edge touching the verse, whether it
// is the source or the target.
func (s *Store) CrossReferencesByVerse(verseID string) []CrossReference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []CrossReference{}
	for _, ref := range s.crossRefs {
		if ref.SourceVerseID == verseID || ref.TargetVerseID == verseID {
			out = append(out, ref)
		}
	}
	return out
}
