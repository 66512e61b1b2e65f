package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/propertymasters/propertymasters/internal/app"
	"github.com/propertymasters/propertymasters/internal/auth"
	"github.com/propertymasters/propertymasters/internal/bookings"
	"github.com/propertymasters/propertymasters/internal/dashboards"
	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/invoices"
	"github.com/propertymasters/propertymasters/internal/observability"
	"github.com/propertymasters/propertymasters/internal/platform/cache"
	"github.com/propertymasters/propertymasters/internal/platform/db"
	"github.com/propertymasters/propertymasters/internal/properties"
	"github.com/propertymasters/propertymasters/internal/savedsearch"
	"github.com/propertymasters/propertymasters/internal/shared"
	"github.com/propertymasters/propertymasters/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(dbpool, logger)

	denylist := identity.NewRedisDenylist(redisClient)
	issuer := identity.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	verifier := identity.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer, denylist)
	resolver := identity.NewResolver(verifier)
	gate := identity.Middleware{Resolver: resolver, Logger: logger, Audit: auditLogger}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, issuer, denylist, auditLogger, logger)
	authHandler := auth.NewHandler(logger, authService, verifier)

	usersService := users.NewService(users.NewRepository(dbpool))
	usersHandler := users.NewHandler(logger, usersService, gate)

	propertiesService := properties.NewService(properties.NewRepository(dbpool))
	propertiesHandler := properties.NewHandler(logger, propertiesService, gate)

	bookingsService := bookings.NewService(bookings.NewRepository(dbpool))
	bookingsHandler := bookings.NewHandler(logger, bookingsService, gate)

	dashboardsCache := dashboards.NewCache(redisClient, 5*time.Minute)
	dashboardsService := dashboards.NewService(dashboards.NewRepository(dbpool), dashboardsCache)
	dashboardsHandler := dashboards.NewHandler(logger, dashboardsService, gate)

	savedSearchService := savedsearch.NewService(savedsearch.NewRepository(dbpool), nil, logger)
	savedSearchHandler := savedsearch.NewHandler(logger, savedSearchService, gate)

	invoicesService := invoices.NewService(invoices.NewRepository(dbpool))
	invoicesHandler := invoices.NewHandler(logger, invoicesService, gate)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Identity:           gate,
		AuthHandler:        authHandler,
		UsersHandler:       usersHandler,
		PropertiesHandler:  propertiesHandler,
		BookingsHandler:    bookingsHandler,
		DashboardsHandler:  dashboardsHandler,
		SavedSearchHandler: savedSearchHandler,
		InvoicesHandler:    invoicesHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
