package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"quotefolio/api/internal/app"
	"quotefolio/api/internal/archive"
	"quotefolio/api/internal/blob"
	"quotefolio/api/internal/config"
	"quotefolio/api/internal/kv"
	"quotefolio/api/internal/search"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store connection failed: %v", err)
	}

	opts := app.Options{}

	if strings.TrimSpace(cfg.MeiliURL) != "" {
		opts.Meili = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
	}

	if strings.TrimSpace(cfg.ArchiveDir) != "" {
		if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
			log.Fatalf("failed to create archive dir: %v", err)
		}
		opts.Archive = archive.New(cfg.ArchiveDir, "Quotefolio")
	}

	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		assets, err := blob.New(ctx, blob.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("asset store connection failed: %v", err)
		}
		opts.Assets = assets
	}

	service := app.New(store, opts)
	defer service.Close()

	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap recovered from corrupt state: %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Quotefolio API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openStore picks the persistence backend: Redis wins, then Postgres, then
// the local SQLite file.
func openStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis state storage")
		return kv.NewRedisStore(cfg.RedisURL)
	}
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		log.Printf("Using PostgreSQL state storage")
		return kv.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	log.Printf("Using SQLite state storage at %s", cfg.DBPath)
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, err
	}
	return kv.NewSQLiteStore(cfg.DBPath)
}
