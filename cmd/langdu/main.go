// Command langdu is the read-along sync server: it aligns noisy speech
// transcripts from the audio-player frontend to positions in a reference
// script.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/langdu/langdu/internal/config"
	"github.com/langdu/langdu/internal/health"
	"github.com/langdu/langdu/internal/locate"
	"github.com/langdu/langdu/internal/observe"
	"github.com/langdu/langdu/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "langdu: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "langdu: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("langdu starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"script", cfg.Script.Path,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdownObserve, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName: "langdu",
	})
	if err != nil {
		slog.Error("failed to initialise observability", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownObserve(sctx); err != nil {
			slog.Warn("observability shutdown", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Script locator ────────────────────────────────────────────────────────
	script, err := os.ReadFile(cfg.Script.Path)
	if err != nil {
		slog.Error("failed to read script", "path", cfg.Script.Path, "err", err)
		return 1
	}

	locator := locate.New(
		locate.WithWindowWords(cfg.Locator.WindowWords),
		locate.WithStepWords(cfg.Locator.StepWords),
		locate.WithTopK(cfg.Locator.TopK),
	)
	start := time.Now()
	locator.Build(string(script))
	slog.Info("script indexed",
		"words", locator.WordCount(),
		"duration", time.Since(start),
	)

	// ── HTTP routes ───────────────────────────────────────────────────────────
	mux := http.NewServeMux()

	server.New(locator, cfg.Similarity.Weights.Weights(), metrics).Register(mux)

	health.New(health.Check{
		Name: "locator",
		Probe: func(context.Context) error {
			if !locator.Ready() {
				return errors.New("locator has no script windows")
			}
			return nil
		},
	}).Register(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	listenAddr := cfg.Server.ListenAddr
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           observe.Middleware(metrics)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── Serve until signalled ─────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("listening", "addr", listenAddr)
		var err error
		if cfg.Server.TLS != nil {
			err = httpServer.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "err", err)
		return 1
	}
	slog.Info("langdu stopped")
	return 0
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
