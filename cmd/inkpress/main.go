// Package main is the entry point for the inkpress API server.
// It loads configuration, connects to backing services, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/handlers"
	"inkpress/internal/mailer"
	"inkpress/internal/middleware"
	"inkpress/internal/router"
	"inkpress/internal/service"
	"inkpress/internal/storage"
	"inkpress/internal/store"
	"inkpress/internal/token"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The API runs without it; list caching is
	// simply disabled.
	var listCache *cache.ListCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, list caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		listCache = cache.NewListCache(valkeyClient, cache.DefaultListTTL)
	}

	// Pick the image storage backend: S3-compatible when configured,
	// local disk otherwise.
	var storageBackend storage.Storage
	var uploadDir string
	if cfg.UseS3() {
		storageBackend, err = storage.NewS3(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		storageBackend, err = storage.NewLocal(cfg.UploadDir, "/uploads")
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		uploadDir = cfg.UploadDir
		slog.Info("local storage ready", "dir", cfg.UploadDir)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)

	// JWT manager.
	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	// Password-reset mail (logs instead of sending when SMTP is unset).
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Services and handler groups.
	authSvc := service.NewAuthService(userStore, tokens, storageBackend, mail, cfg.ClientOrigin)
	contentSvc := service.NewContentService(categoryStore, postStore, storageBackend, listCache)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	r := router.New(router.Options{
		Auth:         handlers.NewAuth(authSvc),
		Posts:        handlers.NewPosts(contentSvc),
		Categories:   handlers.NewCategories(contentSvc),
		Tokens:       tokens,
		Users:        userStore,
		RateLimiter:  rateLimiter,
		ClientOrigin: cfg.ClientOrigin,
		UploadDir:    uploadDir,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout
	// accommodates image uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
