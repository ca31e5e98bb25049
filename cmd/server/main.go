// Command server runs the finance tracker API and serves the embedded
// single-page client.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/store"
	"fintrack/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured JSON logging.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	categories, err := config.LoadGoalCategories(cfg.CategoriesPath)
	if err != nil {
		slog.Error("failed to load goal categories", "error", err, "path", cfg.CategoriesPath)
		os.Exit(1)
	}

	// Initialize store.
	st, err := store.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "db_path", cfg.DBPath)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", cfg.DBPath)

	// Initialize handlers.
	goalsHandler := api.NewGoalsHandler(st, categories)
	transactionsHandler := api.NewTransactionsHandler(st)

	// Setup router.
	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Use(api.AuthMiddleware(cfg.AuthToken))

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalsHandler.List)
			r.Post("/", goalsHandler.Create)
			r.Get("/stats/summary", goalsHandler.Stats)
			r.Get("/{id}", goalsHandler.Get)
			r.Put("/{id}", goalsHandler.Update)
			r.Delete("/{id}", goalsHandler.Delete)
			r.Post("/{id}/add", goalsHandler.Add)
			r.Post("/{id}/sync", goalsHandler.Sync)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Get("/summary/all", transactionsHandler.Summary)
			r.Put("/{id}", transactionsHandler.Update)
			r.Delete("/{id}", transactionsHandler.Delete)
		})
	})

	// Health check endpoint.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Embedded client.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to mount embedded client", "error", err)
		os.Exit(1)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, staticFS, "index.html")
	})

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("starting finance tracker", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
