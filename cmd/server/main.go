package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/apetrov/vendomat-backend/internal/adapter/httpapi"
	"github.com/apetrov/vendomat-backend/internal/adapter/repository/memory"
	"github.com/apetrov/vendomat-backend/internal/adapter/repository/postgres"
	"github.com/apetrov/vendomat-backend/internal/config"
	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/admin"
	"github.com/apetrov/vendomat-backend/internal/usecase/purchase"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
	"github.com/apetrov/vendomat-backend/internal/usecase/seeder"
)

func main() {
	// 1. Config and logging
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// 2. Catalog storage: Postgres when configured, in-memory otherwise
	var catalog domain.CatalogRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		catalog = postgres.NewCatalogRepository(db)
		logger.Info("using postgres catalog")
	} else {
		catalog = memory.NewCatalogRepository()
		logger.Info("using in-memory catalog")
	}

	// 3. Cash register and seeding
	reg := register.New(domain.GreedyChange)

	seed := seeder.NewSeeder(catalog, reg)
	if err := seed.SeedCatalog(context.Background()); err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}
	seed.SeedFloat()

	// 4. Services
	purchaseService := purchase.NewService(catalog, reg, logger.Named("purchase"))
	adminService := admin.NewService(admin.PlainPIN(cfg.AdminPIN), reg, catalog, logger.Named("admin"))

	// 5. HTTP API and metrics side listener
	app := httpapi.NewApp(reg, purchaseService, adminService)

	go func() {
		addr := ":" + cfg.MetricsPort
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, httpapi.DebugMux()); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("server starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	// 6. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
