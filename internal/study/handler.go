package study

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) Handler {
	return Handler{store: store}
}

type addNoteRequest struct {
	VerseID string `json:"verse_id"`
	Content string `json:"content"`
}

type updateContentRequest struct {
	Content string `json:"content"`
}

type addHighlightRequest struct {
	VerseID string `json:"verse_id"`
	Color   string `json:"color"`
}

type addCrossReferenceRequest struct {
	SourceVerseID string `json:"source_verse_id"`
	TargetVerseID string `json:"target_verse_id"`
	Note          string `json:"note,omitempty"`
}

type updateCrossReferenceRequest struct {
	Note string `json:"note"`
}

// Notes

func (h *Handler) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.VerseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	note, err := h.store.AddNote(req.VerseID, req.Content)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
				"content": "content must not be empty",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to save note", err.Error())
		return
	}

	response.Created(w, note, "successfully")
}

func (h *Handler) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req updateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	// Absent ids are a silent no-op, so this never 404s.
	if err := h.store.UpdateNote(chi.URLParam(r, "id"), req.Content); err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to update note", err.Error())
		return
	}

	response.Success(w, "Ok", "successfully")
}

func (h *Handler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteNote(chi.URLParam(r, "id"))
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	verseID := r.URL.Query().Get("verse_id")
	if verseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	response.Success(w, h.store.NotesByVerse(verseID), "successfully")
}

// Highlights

func (h *Handler) SetHighlightHandler(w http.ResponseWriter, r *http.Request) {
	var req addHighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.VerseID == "" || req.Color == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
			"color":    "color is required",
		})
		return
	}

	highlight, err := h.store.AddHighlight(req.VerseID, HighlightColor(req.Color))
	if err != nil {
		if errors.Is(err, ErrUnknownColor) {
			response.Error(w, http.StatusBadRequest, "Unknown highlight color", map[string]string{
				"color": "color must be one of yellow, green, blue, pink, purple",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to save highlight", err.Error())
		return
	}

	response.Success(w, highlight, "successfully")
}

func (h *Handler) RemoveHighlightHandler(w http.ResponseWriter, r *http.Request) {
	verseID := r.URL.Query().Get("verse_id")
	if verseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	h.store.RemoveHighlight(verseID)
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) GetHighlightHandler(w http.ResponseWriter, r *http.Request) {
	verseID := r.URL.Query().Get("verse_id")
	if verseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	highlight, ok := h.store.HighlightForVerse(verseID)
	if !ok {
		// No highlight is a normal state for a verse, not an error.
		response.Success(w, nil, "successfully")
		return
	}

	response.Success(w, highlight, "successfully")
}

func (h *Handler) GetPaletteHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HighlightPalette(), "successfully")
}

// Annotations

func (h *Handler) AddAnnotationHandler(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.VerseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	annotation, err := h.store.AddAnnotation(req.VerseID, req.Content)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
				"content": "content must not be empty",
			})
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to save annotation", err.Error())
		return
	}

	response.Created(w, annotation, "successfully")
}

func (h *Handler) UpdateAnnotationHandler(w http.ResponseWriter, r *http.Request) {
	var req updateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if err := h.store.UpdateAnnotation(chi.URLParam(r, "id"), req.Content); err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to update annotation", err.Error())
		return
	}

	response.Success(w, "Ok", "successfully")
}

func (h *Handler) DeleteAnnotationHandler(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteAnnotation(chi.URLParam(r, "id"))
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) GetAnnotationsHandler(w http.ResponseWriter, r *http.Request) {
	verseID := r.URL.Query().Get("verse_id")
	if verseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	response.Success(w, h.store.AnnotationsByVerse(verseID), "successfully")
}

// Cross references

func (h *Handler) AddCrossReferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req addCrossReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.SourceVerseID == "" || req.TargetVerseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"source_verse_id": "source_verse_id is required",
			"target_verse_id": "target_verse_id is required",
		})
		return
	}

	ref := h.store.AddCrossReference(req.SourceVerseID, req.TargetVerseID, req.Note)
	response.Created(w, ref, "successfully")
}

func (h *Handler) UpdateCrossReferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req updateCrossReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	h.store.UpdateCrossReference(chi.URLParam(r, "id"), req.Note)
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) DeleteCrossReferenceHandler(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteCrossReference(chi.URLParam(r, "id"))
	response.Success(w, "Ok", "successfully")
}

func (h *Handler) GetCrossReferencesHandler(w http.ResponseWriter, r *http.Request) {
	verseID := r.URL.Query().Get("verse_id")
	if verseID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"verse_id": "verse_id is required",
		})
		return
	}

	response.Success(w, h.store.CrossReferencesByVerse(verseID), "successfully")
}

// Persistence status

func (h *Handler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Status(), "successfully")
}
