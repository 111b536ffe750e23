package bookmark

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) Handler {
	return Handler{store: store}
}

type toggleBookmarkRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// ToggleBookmarkHandler adds the bookmark, or removes it if the verse was
// already bookmarked. The response reports which way the toggle went.
func (h *Handler) ToggleBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	var req toggleBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.Book == "" || req.Chapter < 1 || req.Verse < 1 {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"book":    "book is required",
			"chapter": "chapter must be a positive integer",
			"verse":   "verse must be a positive integer",
		})
		return
	}

	bookmark, added := h.store.Add(req.Book, req.Chapter, req.Verse, req.Text)
	if !added {
		response.Success(w, map[string]bool{"is_bookmarked": false}, "successfully")
		return
	}

	response.Success(w, map[string]interface{}{
		"is_bookmarked": true,
		"bookmark":      bookmark,
	}, "successfully")
}

func (h *Handler) ListBookmarksHandler(w http.ResponseWriter, r *http.Request) {
	bookmarks := h.store.All()
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	response.Success(w, bookmarks, "successfully")
}

func (h *Handler) RemoveBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	h.store.Remove(chi.URLParam(r, "id"))
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) ClearBookmarksHandler(w http.ResponseWriter, r *http.Request) {
	h.store.ClearAll()
	response.Success(w, "Ok", "successfully")
}

// GetBookmarkStatusHandler answers the membership query the reading screen
// uses to decorate each verse.
func (h *Handler) GetBookmarkStatusHandler(w http.ResponseWriter, r *http.Request) {
	book := r.URL.Query().Get("book")
	chapter, chErr := strconv.Atoi(r.URL.Query().Get("chapter"))
	verse, vErr := strconv.Atoi(r.URL.Query().Get("verse"))

	if book == "" || chErr != nil || vErr != nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"book":    "book is required",
			"chapter": "chapter must be an integer",
			"verse":   "verse must be an integer",
		})
		return
	}

	response.Success(w, map[string]bool{
		"is_bookmarked": h.store.IsBookmarked(book, chapter, verse),
	}, "successfully")
}
