package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/microbrands/app/api"
	"github.com/lysyi3m/microbrands/app/catalog"
	"github.com/lysyi3m/microbrands/app/cfg"
	"github.com/lysyi3m/microbrands/app/database"
	"github.com/lysyi3m/microbrands/app/feed"
	"github.com/lysyi3m/microbrands/app/gallery"
	"github.com/lysyi3m/microbrands/app/metrics"
	"github.com/lysyi3m/microbrands/app/session"
)

func main() {
	appConfig, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appConfig.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Microbrands server", "version", appConfig.Version, "timezone", appConfig.Timezone)

	if err := run(appConfig); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Microbrands server shutdown complete")
}

func run(appConfig *cfg.Cfg) error {
	g, repo, closeDB, err := loadGallery(appConfig)
	if err != nil {
		return err
	}
	defer closeDB()

	m := metrics.New()
	m.SetCatalogPosts(g.Len())

	store, err := session.NewStore(g, session.Options{
		TTL:           appConfig.SessionTTL,
		SweepInterval: appConfig.SessionSweepInterval,
		MaxSessions:   appConfig.MaxSessions,
		CreateRate:    appConfig.SessionCreateRate,
	})
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}
	m.RegisterActiveSessions(store.Count)

	store.Start()
	defer store.Stop()

	baseURL := appConfig.BaseUrl
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", appConfig.Port)
	}

	apiHandler := api.NewHandler(g, store, repo, feed.NewGenerator(baseURL, appConfig.Version), m, appConfig.Version)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port, "base_url", baseURL,
			"session_auth", appConfig.APIAccessKey != "")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serveErr = <-serverErrChan:
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}

// loadGallery syncs the catalog files into the sqlite snapshot and builds the
// gallery from the stored posts.
func loadGallery(appConfig *cfg.Cfg) (*gallery.Gallery, database.PostRepository, func(), error) {
	posts, err := catalog.NewLoader(appConfig.CatalogDir).Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("Catalog loaded", "dir", appConfig.CatalogDir, "posts", len(posts))

	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Database migrations applied", "version", version, "dirty", dirty)

	repo := database.NewPostRepository(db)
	ctx := context.Background()

	if err := repo.SyncPosts(ctx, posts); err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("failed to sync catalog: %w", err)
	}

	stored, err := repo.GetAllPosts(ctx)
	if err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	g := gallery.NewGallery(stored)
	slog.Info("Gallery ready", "posts", g.Len(), "industries", len(g.Industries())-1, "tags", len(g.Tags()))

	return g, repo, closeDB, nil
}
