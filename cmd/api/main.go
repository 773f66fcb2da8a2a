package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/linerecords/internal/buildinfo"
	"github.com/xelth-com/linerecords/internal/config"
	"github.com/xelth-com/linerecords/internal/database"
	"github.com/xelth-com/linerecords/internal/handlers"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/middleware"
	"github.com/xelth-com/linerecords/internal/seed"
	"github.com/xelth-com/linerecords/internal/services/bom"
	"github.com/xelth-com/linerecords/internal/services/checklist"
	"github.com/xelth-com/linerecords/internal/services/equipment"
	"github.com/xelth-com/linerecords/internal/services/storage"
	"github.com/xelth-com/linerecords/internal/websocket"
)

func main() {
	log := logs.WithComponent("main")

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logs.Init(logs.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	log.Infof("linerecords %s", buildinfo.String())

	// 2. Initialize database (embedded Postgres, external Postgres or SQLite)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Info("Synchronizing database schema...")
	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.SeedOnStart {
		if _, err := seed.Run(ctx, db.DB); err != nil {
			log.Warnf("Seeding failed: %v", err)
		}
	}

	// 4. Storage for photos and BOM images
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 5. Realtime hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// 6. Services and router
	checklistSvc := checklist.NewService(db.DB)
	router := handlers.NewRouter(handlers.Services{
		Equipment:   equipment.NewService(db.DB, checklistSvc),
		Checklist:   checklistSvc,
		BOM:         bom.NewService(db.DB),
		Storage:     store,
		Hub:         hub,
		PublicURL:   cfg.Storage.PublicURL,
		LabelSuffix: cfg.LabelSuffix,
	})

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, write endpoints are open")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.Logging(middleware.CaseInsensitiveMiddleware(middleware.AuthMiddleware(cfg.JWTSecret)(router))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("Server starting on port %s (db: %s)", cfg.Port, cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Warnf("Received signal: %v. Shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	// Stop the hub and its websocket clients
	stop()

	// Close database (this also stops embedded PostgreSQL)
	log.Info("Closing database connection...")
	if err := db.Close(); err != nil {
		log.Errorf("Database close error: %v", err)
	}

	log.Info("Shutdown complete")
}
