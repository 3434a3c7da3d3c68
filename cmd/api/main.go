package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/budget/memory"
	budgetStore "github.com/MrJamesThe3rd/techo/internal/budget/store"
	"github.com/MrJamesThe3rd/techo/internal/config"
	"github.com/MrJamesThe3rd/techo/internal/database"
	techoHttp "github.com/MrJamesThe3rd/techo/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/techo/internal/http/budget"
	importHandler "github.com/MrJamesThe3rd/techo/internal/http/importcsv"
	"github.com/MrJamesThe3rd/techo/internal/importer"
	"github.com/MrJamesThe3rd/techo/internal/lock"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})).
		With("app", cfg.App.Name)
	slog.SetDefault(logger)

	ctx := context.Background()

	var store budget.Store

	switch cfg.StoreBackend {
	case "memory":
		slog.Warn("using in-memory store, data is lost on restart")

		store = memory.New()
	default:
		db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				slog.Error("failed to migrate database", "error", err)
				os.Exit(1)
			}
		}

		store = budgetStore.New(db)
	}

	var locker lock.Locker

	switch cfg.Lock.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		locker = lock.NewRedis(rdb, lock.RedisOptions{
			Prefix:        "techo:lease:",
			TTL:           cfg.Lock.TTL,
			RetryInterval: cfg.Lock.RetryInterval,
			MaxRetries:    cfg.Lock.MaxRetries,
		})
	default:
		locker = lock.NewLocal()
	}

	opts := cfg.BudgetOptions()
	opts.Logger = logger

	var (
		budgetService = budget.NewService(store, locker, opts)
		importService = importer.NewService(budgetService)
	)

	var (
		budgetH = budgetHandler.NewHandler(budgetService)
		importH = importHandler.NewHandler(importService)
	)

	router := techoHttp.New(budgetH, importH, techoHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "store", cfg.StoreBackend, "lock", cfg.Lock.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
