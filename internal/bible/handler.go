package bible

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

type Handler struct {
	provider *Provider
	history  *History
}

func NewHandler(provider *Provider, history *History) Handler {
	return Handler{provider: provider, history: history}
}

func (h *Handler) ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, Books(), "successfully")
}

func (h *Handler) GetChapterHandler(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid chapter number", map[string]string{
			"chapter": "chapter must be a positive integer",
		})
		return
	}

	content, err := h.provider.Chapter(r.Context(), book, chapter)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrChapterNotFound) {
			response.Error(w, http.StatusNotFound, "Failed to load Bible content", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to load Bible content", err.Error())
		return
	}

	response.Success(w, content, "successfully")
}

func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.provider.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
				"q": "search query is required",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	h.history.Add(r.Context(), query)

	// Zero matches is a valid outcome, not an error.
	response.Success(w, map[string]interface{}{
		"results": results,
		"count":   len(results),
	}, "successfully")
}

func (h *Handler) GetSearchHistoryHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.history.Queries(), "successfully")
}

func (h *Handler) RemoveSearchHistoryHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"q": "query to remove is required",
		})
		return
	}

	h.history.Remove(r.Context(), query)
	response.Success(w, h.history.Queries(), "successfully")
}

func (h *Handler) ClearSearchHistoryHandler(w http.ResponseWriter, r *http.Request) {
	h.history.Clear(r.Context())
	response.Success(w, []string{}, "successfully")
}
