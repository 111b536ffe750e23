package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-sage-api/internal/database"
	"github.com/taiwoajasa245/bible-sage-api/internal/server"
	"github.com/taiwoajasa245/bible-sage-api/pkg/config"
	"github.com/taiwoajasa245/bible-sage-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	srv, err := server.NewServer(db, cfg, log)
	if err != nil {
		log.Fatal("failed to construct server", zap.Error(err))
	}

	srv.StartBackgroundJobs()

	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}

	// Flushers drain pending mutations on cancel; stop them after the
	// HTTP layer so no request can dirty a collection post-drain.
	srv.StopBackgroundJobs()
}
