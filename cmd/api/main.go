package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platewise/mealbudget-backend/internal/api"
	"github.com/platewise/mealbudget-backend/internal/config"
	"github.com/platewise/mealbudget-backend/internal/db"
	"github.com/platewise/mealbudget-backend/internal/logger"
	"github.com/platewise/mealbudget-backend/internal/metrics"
	"github.com/platewise/mealbudget-backend/internal/repository/postgres"
	"github.com/platewise/mealbudget-backend/internal/services"
	"github.com/platewise/mealbudget-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	accountSvc := services.NewAccountService(repos.Users, repos.AuditLogs, wp)
	menuSvc := services.NewMenuService(repos.Dishes, repos.AuditLogs, wp)
	ledgerSvc := services.NewLedgerService(repos.Users, repos.Dishes, repos.MealLogs, repos.AuditLogs, wp)

	metrics.Init()
	r := api.NewRouter(cfg, accountSvc, menuSvc, ledgerSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
