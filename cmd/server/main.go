package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/inamate/wallplan/internal/config"
	"github.com/inamate/wallplan/internal/devreload"
	mw "github.com/inamate/wallplan/internal/middleware"
	"github.com/inamate/wallplan/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(newLogHandler(cfg.LogLevel)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	webHandler := web.NewHandler(cfg.WebDir, cfg.Viewer, cfg.Reload)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/", webHandler.Page).Methods("GET")
	r.HandleFunc("/wasm_exec.js", webHandler.WasmExec).Methods("GET")
	r.HandleFunc("/app.wasm", webHandler.Wasm).Methods("GET")
	r.PathPrefix("/static/").Handler(webHandler.Static()).Methods("GET")

	var (
		hub     *devreload.Hub
		watchCh chan error
	)
	if cfg.Reload {
		hub = devreload.NewHub()
		go hub.Run()

		watcher, err := devreload.NewWatcher(cfg.WebDir, devreload.DefaultDebounce, func(path string) {
			rel, err := filepath.Rel(cfg.WebDir, path)
			if err != nil {
				rel = path
			}
			slog.Info("web file changed, reloading pages", "path", rel, "clients", hub.Clients())
			hub.Broadcast(devreload.ReloadMessage(rel))
		})
		if err != nil {
			slog.Error("start watcher", "error", err)
			os.Exit(1)
		}
		watchCh = make(chan error, 1)
		go func() { watchCh <- watcher.Run(ctx) }()

		// WebSocket endpoint
		r.HandleFunc("/ws/reload", devreload.Handler(hub, nil))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop watching first so no reload races the shutdown
		cancel()
		if watchCh != nil {
			if err := <-watchCh; err != nil {
				slog.Warn("watcher stopped", "error", err)
			}
		}
		if hub != nil {
			hub.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "web", cfg.WebDir, "reload", cfg.Reload)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogHandler(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "wallplan",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
