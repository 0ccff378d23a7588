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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"snapwort/internal/app"
	"snapwort/internal/httputil"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Log.Warn("shutdown cleanup failed", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		deps.Log.Info("assistant service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		deps.Log.Error("graceful shutdown failed", "err", err)
	}
	deps.Log.Info("assistant service stopped")
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout)

	r.Post("/meaning", meaningHandler(deps))
	r.Post("/followup", followUpHandler(deps))

	r.Route("/words", func(r chi.Router) {
		r.Get("/", listWordsHandler(deps))
		r.Post("/", addWordHandler(deps))
		r.Get("/{id}", getWordHandler(deps))
		r.Delete("/{id}", deleteWordHandler(deps))
		r.Post("/{id}/followups", appendFollowUpHandler(deps))
	})

	r.Post("/backups/{transport}/{user}", backupHandler(deps))
	r.Post("/backups/{transport}/{user}/restore", restoreHandler(deps))

	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
	return r
}
