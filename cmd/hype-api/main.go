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

	"github.com/nicholaihel7/hype-intelligence-backend/api"
	"github.com/nicholaihel7/hype-intelligence-backend/api/handler"
	"github.com/nicholaihel7/hype-intelligence-backend/browser"
	"github.com/nicholaihel7/hype-intelligence-backend/cache"
	"github.com/nicholaihel7/hype-intelligence-backend/config"
	"github.com/nicholaihel7/hype-intelligence-backend/engine"
	"github.com/nicholaihel7/hype-intelligence-backend/platforms"
	"github.com/nicholaihel7/hype-intelligence-backend/search"
	"github.com/nicholaihel7/hype-intelligence-backend/storage"
	"github.com/nicholaihel7/hype-intelligence-backend/storage/sqlite"
	"github.com/nicholaihel7/hype-intelligence-backend/useragent"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("hype-api starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"browser", cfg.Browser.Enabled,
	)

	// ── 3. Launch browser (optional) ─────────────────────────────────
	// A failed launch degrades the service to HTTP-only fetching rather
	// than aborting startup.
	var br *browser.Browser
	var stats handler.StatsFunc
	if cfg.Browser.Enabled {
		b, err := browser.New(cfg.Browser)
		if err != nil {
			slog.Warn("browser launch failed, continuing HTTP-only", "error", err)
		} else {
			br = b
			stats = br.Stats
			defer br.Close()
		}
	}

	// ── 4. Assemble the fetch engines ────────────────────────────────
	agents := useragent.NewPool(nil)
	engines := []engine.Engine{engine.NewHTTPEngine(agents, cfg.Engine.HTTPTimeout)}
	if br != nil {
		engines = append(engines,
			engine.NewRodEngine(br.Fetch, false),
			engine.NewRodEngine(br.Fetch, true),
		)
	}

	memory := engine.NewDomainMemory(cfg.Engine.DomainMemoryTTL)
	defer memory.Stop()
	dispatcher := engine.NewDispatcher(engines, cfg.Engine.EscalationDelays, memory)
	slog.Info("fetch dispatcher ready",
		"engines", len(engines),
		"delays", cfg.Engine.EscalationDelays,
	)

	// ── 5. Platform registry ─────────────────────────────────────────
	registry := platforms.DefaultRegistry(dispatcher)

	// ── 6. Cache and storage ─────────────────────────────────────────
	var cc *cache.Cache
	if cfg.Cache.TTL > 0 {
		cc = cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	var store storage.Backend
	switch cfg.Storage.Driver {
	case "":
		// History disabled.
	case "sqlite":
		s, err := sqlite.New(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "dsn", cfg.Storage.DSN, "error", err)
			os.Exit(1)
		}
		store = s
		defer store.Close()
		slog.Info("price history enabled", "driver", "sqlite", "dsn", cfg.Storage.DSN)
	default:
		slog.Error("unknown storage driver", "driver", cfg.Storage.Driver)
		os.Exit(1)
	}

	// ── 7. Search service and router ─────────────────────────────────
	svc := search.New(registry, cc, store, cfg.Search, slog.Default())

	startTime := time.Now()
	router := api.NewRouter(svc, registry, stats, cfg, startTime)

	// ── 8. Start HTTP server ─────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 9. Graceful shutdown ─────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight searches 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// br.Close() runs via defer — drains the page pool and kills Chrome.
	slog.Info("hype-api stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
