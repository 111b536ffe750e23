package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/database"
	"github.com/taiwoajasa245/bible-sage-api/pkg/config"
	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		AppEnv:        "development",
		Port:          "0",
		FlushInterval: 50 * time.Millisecond,
	}

	srv, err := NewServer(db, cfg, zap.NewNop())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestWelcomeRoute(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestBookmarkToggleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]interface{}{
		"book": "John", "chapter": 3, "verse": 16,
		"text": "For God so loved the world...",
	}

	rec, resp := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/bookmarks", body)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["is_bookmarked"])

	// Toggling again removes it.
	rec, resp = doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/bookmarks", body)
	require.Equal(t, http.StatusOK, rec.Code)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["is_bookmarked"])

	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/bookmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Data)
}

func TestBookmarkValidation(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/bookmarks",
		map[string]interface{}{"book": "", "chapter": 0, "verse": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestNoteLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/study/notes",
		map[string]string{"verse_id": "Genesis:1:1", "content": "test"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := resp.Data.(map[string]interface{})
	noteID := created["id"].(string)
	require.NotEmpty(t, noteID)

	rec, _ = doJSON(t, srv.handler, http.MethodPatch, "/bible-sage-api/v1/study/notes/"+noteID,
		map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/study/notes?verse_id=Genesis:1:1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notes := resp.Data.([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, "edited", notes[0].(map[string]interface{})["content"])

	// Deleting an id that does not exist still answers 200 (silent no-op).
	rec, _ = doJSON(t, srv.handler, http.MethodDelete, "/bible-sage-api/v1/study/notes/nonexistent", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmptyNoteContentRejected(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/study/notes",
		map[string]string{"verse_id": "Genesis:1:1", "content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestHighlightUpsertOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv.handler, http.MethodPut, "/bible-sage-api/v1/study/highlights",
		map[string]string{"verse_id": "John:3:16", "color": "yellow"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := doJSON(t, srv.handler, http.MethodPut, "/bible-sage-api/v1/study/highlights",
		map[string]string{"verse_id": "John:3:16", "color": "green"})
	require.Equal(t, http.StatusOK, rec.Code)
	highlight := resp.Data.(map[string]interface{})
	assert.Equal(t, "#4CAF5080", highlight["color"])

	rec, resp = doJSON(t, srv.handler, http.MethodPut, "/bible-sage-api/v1/study/highlights",
		map[string]string{"verse_id": "John:3:16", "color": "magenta"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestCrossReferenceSymmetryOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec, _ := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/study/cross-references",
		map[string]string{"source_verse_id": "Genesis:1:1", "target_verse_id": "John:1:1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doJSON(t, srv.handler, http.MethodGet,
		"/bible-sage-api/v1/study/cross-references?verse_id=John:1:1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	refs := resp.Data.([]interface{})
	require.Len(t, refs, 1)
	assert.Equal(t, "Genesis:1:1", refs[0].(map[string]interface{})["sourceVerseId"])
}

func TestChapterAndSearchRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/bible/Genesis/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	chapter := resp.Data.(map[string]interface{})
	assert.Equal(t, "Genesis", chapter["book"])

	rec, _ = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/bible/Hezekiah/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/bible/search?q=shepherd", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	search := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), search["count"])

	// No matches is still a 200.
	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/bible/search?q=zzzzzz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	search = resp.Data.(map[string]interface{})
	assert.Equal(t, float64(0), search["count"])

	// Both searches were recorded, newest first.
	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/search/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := resp.Data.([]interface{})
	require.Len(t, history, 2)
	assert.Equal(t, "zzzzzz", history[0])
}

func TestAssistantRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/assistant/messages",
		map[string]string{"content": "tell me about love"})
	require.Equal(t, http.StatusOK, rec.Code)
	reply := resp.Data.(map[string]interface{})
	assert.Equal(t, "assistant", reply["role"])

	rec, resp = doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/assistant/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data.([]interface{}), 2)
}

func TestStudyStatusRoute(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/study/notes",
		map[string]string{"verse_id": "Genesis:1:1", "content": "dirty"})

	rec, resp := doJSON(t, srv.handler, http.MethodGet, "/bible-sage-api/v1/study/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := resp.Data.(map[string]interface{})
	assert.Equal(t, true, status["dirty"])
}

func TestBackgroundFlushersDrainOnStop(t *testing.T) {
	srv := newTestServer(t)
	srv.StartBackgroundJobs()

	doJSON(t, srv.handler, http.MethodPost, "/bible-sage-api/v1/study/notes",
		map[string]string{"verse_id": "Genesis:1:1", "content": "persist me"})

	srv.StopBackgroundJobs()
	assert.False(t, srv.studyStore.Status().Dirty)
}
