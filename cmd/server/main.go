package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/api"
	"github.com/yourname/fitplanner/internal/auth"
	"github.com/yourname/fitplanner/internal/config"
	"github.com/yourname/fitplanner/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, plans, closer, err := storage.NewRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer closer.Close()

	snapshot, err := storage.LoadSnapshot(ctx, catalog)
	if err != nil {
		logger.Fatalf("failed to read catalog: %v", err)
	}
	logger.Infof("catalog ready: %d diet types, %d recipes, %d diet plans, %d workout plans, %d exercises, %d foods",
		len(snapshot.DietTypes), len(snapshot.Recipes), len(snapshot.DietPlans), len(snapshot.WorkoutPlans),
		len(snapshot.Exercises), len(snapshot.Foods))

	if cfg.CatalogRefreshInterval > 0 {
		if r, ok := catalog.(storage.Refresher); ok {
			logger.Infof("refreshing catalog every %s", cfg.CatalogRefreshInterval)
			go storage.RefreshEvery(ctx, r, cfg.CatalogRefreshInterval, logger)
		} else {
			logger.Warnf("CATALOG_REFRESH_INTERVAL ignored: %s catalog cannot be refreshed", cfg.StorageBackend)
		}
	}

	app := api.NewApp(logger, catalog, plans, cfg.RandomSeed)
	router := api.NewRouter(app, auth.NewProvider(cfg, logger), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server running on :%s (storage=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
