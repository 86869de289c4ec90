package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/obs"
	"jobboard-backend/internal/server"
)

const blacklistCleanupInterval = 10 * time.Minute

// @title Job Board API
// @version 1.0
// @description REST API for posting jobs and tracking applications.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Bearer token, e.g. "Bearer <token>"
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := obs.InitTracer(ctx, server.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Printf("Tracer shutdown: %v", err)
			}
		}()
	}

	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if _, err := db.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	blacklist := auth.NewInMemoryBlacklistStore(ctx, blacklistCleanupInterval)
	srv := server.NewServer(server.NewMyServer(cfg, db, blacklist))

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")
}
