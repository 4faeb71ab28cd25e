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

	"github.com/bukubesar/backend/internal/config"
	"github.com/bukubesar/backend/internal/handler"
	"github.com/bukubesar/backend/internal/ledger"
	"github.com/bukubesar/backend/internal/logging"
	"github.com/bukubesar/backend/internal/middleware"
	"github.com/bukubesar/backend/internal/repository"
	"github.com/bukubesar/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("bukubesar-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	accounts := repository.NewAccountRepository(db)
	transactions := repository.NewTransactionRepository(db)
	postings := repository.NewPostingRepository(db)

	accountSvc := service.NewAccountService(accounts)
	entrySvc := service.NewEntryService(repository.NewDB(db), transactions, postings, accounts)
	overviewSvc := service.NewOverviewService(accounts, transactions, postings)
	engine := ledger.NewEngine(accounts, postings)

	jwtExpiry := time.Duration(cfg.JWTExpiryH) * time.Hour
	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, jwtExpiry)
	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(entrySvc)
	reportHandler := handler.NewReportHandler(engine, postings)
	dashboardHandler := handler.NewDashboardHandler(overviewSvc)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logging)

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/accounts", accountHandler.List)
			r.Post("/accounts", accountHandler.Create)
			r.Put("/accounts/{id}", accountHandler.Update)
			r.Delete("/accounts/{id}", accountHandler.Delete)

			r.Get("/transactions", transactionHandler.List)
			r.Post("/transactions", transactionHandler.Create)
			r.Put("/transactions/{id}", transactionHandler.Update)
			r.Delete("/transactions/{id}", transactionHandler.Delete)

			r.Get("/reports/journal", reportHandler.Journal)
			r.Get("/reports/ledger", reportHandler.Ledger)
			r.Get("/reports/trial-balance", reportHandler.TrialBalance)
			r.Get("/reports/financial-statements", reportHandler.FinancialStatements)
			r.Get("/reports/cash-flow", reportHandler.CashFlow)

			r.Get("/dashboard", dashboardHandler.Overview)
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
