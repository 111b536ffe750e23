package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/bible-sage-api/internal/assistant"
	"github.com/taiwoajasa245/bible-sage-api/internal/bible"
	"github.com/taiwoajasa245/bible-sage-api/internal/bookmark"
	"github.com/taiwoajasa245/bible-sage-api/internal/study"
	"github.com/taiwoajasa245/bible-sage-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Get home route
	r.Get("/", s.ServerIsWorking)

	r.Route("/bible-sage-api/v1", func(r chi.Router) {
		s.loadBibleRoutes(r)
		s.loadBookmarkRoutes(r)
		s.loadStudyRoutes(r)
		s.loadAssistantRoutes(r)
	})
	r.Get("/bible-sage-api/v1", s.ServerIsWorking)

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Bible Sage api"
	response.Success(w, resp, "Success")
}

func (s *Server) loadBibleRoutes(router chi.Router) {
	bibleHandler := bible.NewHandler(s.provider, s.history)

	router.Get("/bible/books", bibleHandler.ListBooksHandler)
	router.Get("/bible/{book}/{chapter}", bibleHandler.GetChapterHandler)
	router.Get("/bible/search", bibleHandler.SearchHandler)

	router.Get("/search/history", bibleHandler.GetSearchHistoryHandler)
	router.Delete("/search/history/entry", bibleHandler.RemoveSearchHistoryHandler)
	router.Delete("/search/history", bibleHandler.ClearSearchHistoryHandler)
}

func (s *Server) loadBookmarkRoutes(router chi.Router) {
	bookmarkHandler := bookmark.NewHandler(s.bookmarkStore)

	router.Get("/bookmarks", bookmarkHandler.ListBookmarksHandler)
	router.Post("/bookmarks", bookmarkHandler.ToggleBookmarkHandler)
	router.Get("/bookmarks/status", bookmarkHandler.GetBookmarkStatusHandler)
	router.Delete("/bookmarks/{id}", bookmarkHandler.RemoveBookmarkHandler)
	router.Delete("/bookmarks", bookmarkHandler.ClearBookmarksHandler)
}

func (s *Server) loadStudyRoutes(router chi.Router) {
	studyHandler := study.NewHandler(s.studyStore)

	router.Route("/study", func(r chi.Router) {
		r.Post("/notes", studyHandler.AddNoteHandler)
		r.Patch("/notes/{id}", studyHandler.UpdateNoteHandler)
		r.Delete("/notes/{id}", studyHandler.DeleteNoteHandler)
		r.Get("/notes", studyHandler.GetNotesHandler)

		r.Put("/highlights", studyHandler.SetHighlightHandler)
		r.Delete("/highlights", studyHandler.RemoveHighlightHandler)
		r.Get("/highlights", studyHandler.GetHighlightHandler)
		r.Get("/highlights/palette", studyHandler.GetPaletteHandler)

		r.Post("/annotations", studyHandler.AddAnnotationHandler)
		r.Patch("/annotations/{id}", studyHandler.UpdateAnnotationHandler)
		r.Delete("/annotations/{id}", studyHandler.DeleteAnnotationHandler)
		r.Get("/annotations", studyHandler.GetAnnotationsHandler)

		r.Post("/cross-references", studyHandler.AddCrossReferenceHandler)
		r.Patch("/cross-references/{id}", studyHandler.UpdateCrossReferenceHandler)
		r.Delete("/cross-references/{id}", studyHandler.DeleteCrossReferenceHandler)
		r.Get("/cross-references", studyHandler.GetCrossReferencesHandler)

		r.Get("/status", studyHandler.GetStatusHandler)
	})
}

func (s *Server) loadAssistantRoutes(router chi.Router) {
	assistantHandler := assistant.NewHandler(s.assistant)

	router.Post("/assistant/messages", assistantHandler.SendMessageHandler)
	router.Get("/assistant/messages", assistantHandler.GetTranscriptHandler)
}
