package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/farthing/internal/clock"
	"github.com/dukerupert/farthing/internal/config"
	"github.com/dukerupert/farthing/internal/database"
	"github.com/dukerupert/farthing/internal/engine"
	"github.com/dukerupert/farthing/internal/events"
	"github.com/dukerupert/farthing/internal/logging"
	"github.com/dukerupert/farthing/internal/payday"
	"github.com/dukerupert/farthing/internal/server"
	"github.com/dukerupert/farthing/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	collections := store.NewCollectionStore(db, logger.With("component", "store"))
	defer collections.Close()

	state, err := collections.LoadSnapshot()
	if err != nil {
		log.Fatalf("failed to load state: %v", err)
	}

	hub := events.NewHub(logger.With("component", "events"))
	clk := clock.System()
	eng := engine.New(state, collections, hub, clk, logger.With("component", "engine"))

	scheduler := payday.NewScheduler(eng, clk, cfg.TickInterval, logger.With("component", "payday"))
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	srv := server.New(eng, hub, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("farthing running", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
	collections.Flush()
}
