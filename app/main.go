package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polysend/notifeed/app/api"
	"github.com/polysend/notifeed/app/cfg"
	"github.com/polysend/notifeed/app/database"
	"github.com/polysend/notifeed/app/feed"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting notifeed", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DatabasePath)

	defaults := database.DefaultSettings()
	seed, err := cfg.LoadSeed(appCfg.SeedFile)
	if err != nil {
		slog.Error("Failed to load seed file", "path", appCfg.SeedFile, "error", err)
		os.Exit(1)
	}
	applySeed(&defaults, seed)

	settingsRepo := database.NewSettingsRepository(db, defaults)
	if err := settingsRepo.Seed(); err != nil {
		slog.Error("Failed to seed settings", "error", err)
		os.Exit(1)
	}

	itemRepo := database.NewItemRepository(db)
	generator := feed.NewGenerator(appCfg.PublicUrl())
	handler := api.NewHandler(itemRepo, settingsRepo, generator)
	server := api.NewServer(handler, appCfg.AdminToken)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "url", appCfg.PublicUrl())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

// applySeed overlays seed-file values onto the built-in channel defaults.
func applySeed(defaults *database.Settings, seed *cfg.Seed) {
	if seed == nil {
		return
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&defaults.Title, seed.Title)
	set(&defaults.Description, seed.Description)
	set(&defaults.Link, seed.Link)
	set(&defaults.Language, seed.Language)
	set(&defaults.Copyright, seed.Copyright)
	set(&defaults.ManagingEditor, seed.ManagingEditor)
	set(&defaults.Webmaster, seed.Webmaster)
	set(&defaults.Generator, seed.Generator)
	set(&defaults.ImageURL, seed.ImageURL)
	set(&defaults.ImageTitle, seed.ImageTitle)
	set(&defaults.ImageLink, seed.ImageLink)
}
