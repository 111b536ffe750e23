package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/assistant"
	"github.com/taiwoajasa245/bible-sage-api/internal/bible"
	"github.com/taiwoajasa245/bible-sage-api/internal/bookmark"
	"github.com/taiwoajasa245/bible-sage-api/internal/database"
	"github.com/taiwoajasa245/bible-sage-api/internal/storage"
	"github.com/taiwoajasa245/bible-sage-api/internal/study"
	"github.com/taiwoajasa245/bible-sage-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config
	log     *zap.Logger

	studyStore    *study.Store
	bookmarkStore *bookmark.Store
	provider      *bible.Provider
	history       *bible.History
	assistant     *assistant.Service

	cancel  context.CancelFunc
	flusher sync.WaitGroup
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config, log *zap.Logger) (*Server, error) {
	stats := db.Health()
	if stats["status"] != "up" {
		return nil, fmt.Errorf("database health check failed: %s", stats["error"])
	}
	log.Info("database ready", zap.String("path", stats["path"]))

	provider, err := bible.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("load bible content: %w", err)
	}

	kv := storage.NewSQLiteStore(db)
	ctx := context.Background()

	s := &Server{
		port:          cfg.Port,
		db:            db,
		cfg:           cfg,
		log:           log,
		studyStore:    study.NewStore(ctx, kv, log),
		bookmarkStore: bookmark.NewStore(ctx, kv, log),
		provider:      provider,
		history:       bible.NewHistory(ctx, kv, log),
		assistant:     assistant.NewService(),
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the configured *http.Server instance.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs launches the write-behind flushers.
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.flusher.Add(2)
	go func() {
		defer s.flusher.Done()
		s.studyStore.StartFlusher(ctx, s.cfg.FlushInterval)
	}()
	go func() {
		defer s.flusher.Done()
		s.bookmarkStore.StartFlusher(ctx, s.cfg.FlushInterval)
	}()
	s.log.Info("write-behind flushers started")
}

// StopBackgroundJobs cancels the flushers; each drains once more before
// exiting, so pending mutations reach storage.
func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.flusher.Wait()
		s.log.Info("background jobs stopped gracefully")
	}
}
