package study

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(context.Background(), kv, zap.NewNop()), kv
}

func TestAddNoteAppendsPerVerse(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddNote("Genesis:1:1", "x")
	require.NoError(t, err)
	_, err = s.AddNote("Genesis:1:1", "y")
	require.NoError(t, err)

	notes := s.NotesByVerse("Genesis:1:1")
	require.Len(t, notes, 2)
	assert.Equal(t, "x", notes[0].Content)
	assert.Equal(t, "y", notes[1].Content)
	assert.NotEqual(t, notes[0].ID, notes[1].ID)
}

func TestAddNoteRejectsEmptyContent(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddNote("Genesis:1:1", "")
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, s.NotesByVerse("Genesis:1:1"))
}

func TestUpdateNoteAbsentIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	note, err := s.AddNote("Genesis:1:1", "original")
	require.NoError(t, err)

	require.NoError(t, s.UpdateNote("no-such-id", "changed"))

	notes := s.NotesByVerse("Genesis:1:1")
	require.Len(t, notes, 1)
	assert.Equal(t, "original", notes[0].Content)
	assert.Equal(t, note.UpdatedAt, notes[0].UpdatedAt)
}

func TestDeleteNoteAbsentIDLeavesCollectionUnchanged(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddNote("Genesis:1:1", "keep me")
	require.NoError(t, err)
	before := s.NotesByVerse("Genesis:1:1")

	s.DeleteNote("no-such-id")

	assert.Equal(t, before, s.NotesByVerse("Genesis:1:1"))
}

func TestNoteLifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	note, err := s.AddNote("Genesis:1:1", "test")
	require.NoError(t, err)

	notes := s.NotesByVerse("Genesis:1:1")
	require.Len(t, notes, 1)
	assert.Equal(t, "test", notes[0].Content)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.UpdateNote(note.ID, "edited"))

	notes = s.NotesByVerse("Genesis:1:1")
	require.Len(t, notes, 1)
	assert.Equal(t, "edited", notes[0].Content)
	assert.Greater(t, notes[0].UpdatedAt, notes[0].CreatedAt)

	s.DeleteNote(note.ID)
	assert.Empty(t, s.NotesByVerse("Genesis:1:1"))
}

func TestAddHighlightUpsertsSingleSlot(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.AddHighlight("John:3:16", ColorYellow)
	require.NoError(t, err)
	second, err := s.AddHighlight("John:3:16", ColorGreen)
	require.NoError(t, err)

	// Same slot, same id, new color.
	assert.Equal(t, first.ID, second.ID)

	got, ok := s.HighlightForVerse("John:3:16")
	require.True(t, ok)
	assert.Equal(t, "#4CAF5080", got.Color)
}

func TestAddHighlightRejectsUnknownColor(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddHighlight("John:3:16", HighlightColor("magenta"))
	require.ErrorIs(t, err, ErrUnknownColor)
	_, ok := s.HighlightForVerse("John:3:16")
	assert.False(t, ok)
}

func TestRemoveHighlightAbsentVerseIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddHighlight("John:3:16", ColorBlue)
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.RemoveHighlight("Genesis:1:1") })

	_, ok := s.HighlightForVerse("John:3:16")
	assert.True(t, ok)
}

func TestAnnotationsAreSeparateFromNotes(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddNote("Genesis:1:1", "a note")
	require.NoError(t, err)
	annotation, err := s.AddAnnotation("Genesis:1:1", "a remark")
	require.NoError(t, err)
	_, err = s.AddAnnotation("Genesis:1:1", "another remark")
	require.NoError(t, err)

	assert.Len(t, s.NotesByVerse("Genesis:1:1"), 1)
	require.Len(t, s.AnnotationsByVerse("Genesis:1:1"), 2)

	require.NoError(t, s.UpdateAnnotation(annotation.ID, "edited remark"))
	assert.Equal(t, "edited remark", s.AnnotationsByVerse("Genesis:1:1")[0].Text)

	s.DeleteAnnotation(annotation.ID)
	assert.Len(t, s.AnnotationsByVerse("Genesis:1:1"), 1)
	assert.Len(t, s.NotesByVerse("Genesis:1:1"), 1)
}

func TestCrossReferenceSymmetricLookup(t *testing.T) {
	s, _ := newTestStore(t)

	ref := s.AddCrossReference("Genesis:1:1", "John:1:1", "both open with creation")

	bySource := s.CrossReferencesByVerse("Genesis:1:1")
	byTarget := s.CrossReferencesByVerse("John:1:1")

	require.Len(t, bySource, 1)
	require.Len(t, byTarget, 1)
	assert.Equal(t, ref.ID, bySource[0].ID)
	assert.Equal(t, ref.ID, byTarget[0].ID)
}

func TestCrossReferenceAllowsDuplicateEdges(t *testing.T) {
	// Duplicate edges are allowed on purpose; pinned here so any future
	// dedup key is a conscious change.
	s, _ := newTestStore(t)

	first := s.AddCrossReference("Genesis:1:1", "John:1:1", "")
	second := s.AddCrossReference("Genesis:1:1", "John:1:1", "")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.CrossReferencesByVerse("Genesis:1:1"), 2)
}

func TestCrossReferenceUpdateAndDelete(t *testing.T) {
	s, _ := newTestStore(t)

	ref := s.AddCrossReference("Genesis:1:1", "John:1:1", "")

	s.UpdateCrossReference(ref.ID, "the Word at creation")
	refs := s.CrossReferencesByVerse("Genesis:1:1")
	require.Len(t, refs, 1)
	assert.Equal(t, "the Word at creation", refs[0].Note)

	s.UpdateCrossReference("no-such-id", "ignored")
	s.DeleteCrossReference("no-such-id")
	assert.Len(t, s.CrossReferencesByVerse("Genesis:1:1"), 1)

	s.DeleteCrossReference(ref.ID)
	assert.Empty(t, s.CrossReferencesByVerse("Genesis:1:1"))
}

func TestRoundTripThroughStorage(t *testing.T) {
	s, kv := newTestStore(t)

	_, err := s.AddNote("Genesis:1:1", "first")
	require.NoError(t, err)
	_, err = s.AddNote("Psalms:23:1", "second")
	require.NoError(t, err)
	_, err = s.AddHighlight("John:3:16", ColorPink)
	require.NoError(t, err)
	_, err = s.AddAnnotation("John:3:16", "margin mark")
	require.NoError(t, err)
	s.AddCrossReference("Genesis:1:1", "John:1:1", "")

	require.NoError(t, s.SaveNow(context.Background()))

	reloaded := NewStore(context.Background(), kv, zap.NewNop())

	assert.Equal(t, s.NotesByVerse("Genesis:1:1"), reloaded.NotesByVerse("Genesis:1:1"))
	assert.Equal(t, s.NotesByVerse("Psalms:23:1"), reloaded.NotesByVerse("Psalms:23:1"))
	assert.Equal(t, s.AnnotationsByVerse("John:3:16"), reloaded.AnnotationsByVerse("John:3:16"))
	assert.Equal(t, s.CrossReferencesByVerse("Genesis:1:1"), reloaded.CrossReferencesByVerse("Genesis:1:1"))

	want, ok := s.HighlightForVerse("John:3:16")
	require.True(t, ok)
	got, ok := reloaded.HighlightForVerse("John:3:16")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoadFallsBackToEmptyOnStorageFault(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), notesStorageKey, []byte("{not json")))

	s := NewStore(context.Background(), kv, zap.NewNop())

	assert.Empty(t, s.NotesByVerse("Genesis:1:1"))
	// A corrupt load behaves like first run: the store stays usable.
	_, err := s.AddNote("Genesis:1:1", "still works")
	require.NoError(t, err)
}

func TestRecordIDsAreUniqueUnderBurst(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		note, err := s.AddNote("Genesis:1:1", "n")
		require.NoError(t, err)
		require.False(t, seen[note.ID], "duplicate id %s", note.ID)
		seen[note.ID] = true
	}
}

func TestStorageFaultSentinel(t *testing.T) {
	kv := storage.NewMemoryStore()
	_, err := kv.Get(context.Background(), "never-written")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
