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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xeniatay/venture-adventure/internal/asset"
	"github.com/xeniatay/venture-adventure/internal/metrics"
	"github.com/xeniatay/venture-adventure/internal/sim"
	"github.com/xeniatay/venture-adventure/internal/store"
)

const defaultInitialCapital = 100000

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// --- Initialize store ---
	var st store.Store
	var cleanup []func()

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			slog.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		cleanup = append(cleanup, pool.Close)
		pg := store.NewPostgresStore(pool)
		if err := pg.Migrate(context.Background()); err != nil {
			slog.Error("database migration failed", "err", err)
			os.Exit(1)
		}
		st = pg
		slog.Info("connected to PostgreSQL")
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "leaderboard.db"
		}
		sq, err := store.OpenSQLite(path)
		if err != nil {
			slog.Warn("sqlite unavailable, using in-memory store (data will not persist)", "err", err)
			st = store.NewMemoryStore()
		} else {
			cleanup = append(cleanup, func() { sq.Close() })
			st = sq
			slog.Info("using SQLite leaderboard", "path", path)
		}
	}

	// Wrap with Redis read-through cache if configured.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opt)
		cleanup = append(cleanup, func() { rdb.Close() })
		st = store.NewCachedStore(st, rdb, 30*time.Second)
		slog.Info("Redis cache enabled")
	}

	defer func() {
		for _, fn := range cleanup {
			fn()
		}
	}()

	// --- Initial capital ---
	capital := decimal.NewFromInt(defaultInitialCapital)
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil || !parsed.IsPositive() {
			slog.Error("invalid INITIAL_CAPITAL", "value", v)
			os.Exit(1)
		}
		capital = parsed
	}

	// --- Asset table ---
	table := asset.NewTable()

	// --- WebSocket hub ---
	wsHub := sim.NewWSHub()
	go wsHub.Run()

	// --- Simulation service ---
	simSvc := sim.NewService(table, st, capital, wsHub)

	// --- HTTP router ---
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	// CORS middleware for frontend cross-origin requests.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"venture-adventure"}`))
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket endpoint for live simulation results.
		r.Get("/ws", wsHub.HandleWS)

		// Asset catalog.
		r.Get("/assets", simSvc.ListAssets)

		// Simulation.
		r.Post("/simulate", simSvc.Simulate)

		// Custom dataset ingestion.
		r.Get("/dataset", simSvc.GetDatasetStatus)
		r.Post("/dataset", simSvc.UploadDataset)
		r.Delete("/dataset", simSvc.ResetDataset)

		// Leaderboard.
		r.Get("/leaderboard", simSvc.GetLeaderboard)
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("venture-adventure listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down venture-adventure...")
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	fmt.Println("venture-adventure stopped")
}
