// Package main initializes and starts the wishlink HTTP server, setting up
// configuration, logging, the database, repositories, services, and
// handlers.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/config"
	"github.com/okarpov/wishlink/internal/db"
	"github.com/okarpov/wishlink/internal/logger"
	"github.com/okarpov/wishlink/internal/repository"
	"github.com/okarpov/wishlink/internal/server/handler/http"
	"github.com/okarpov/wishlink/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; stderr is all we have.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Initialize PostgreSQL and bring the schema up to date.
	postgresDB, err := db.InitPostgres(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	if err := db.Migrate(postgresDB, cfg.MigrationsPath); err != nil {
		zapLogger.Fatal("cannot run migrations", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	wishlistRepo := repository.NewPostgresWishlistRepository(postgresDB)
	itemRepo := repository.NewPostgresItemRepository(postgresDB)
	claimRepo := repository.NewPostgresClaimRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, itemRepo)
	claimService := service.NewClaimService(claimRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{UserService: userService, Logger: zapLogger}
	wishlistHandler := &http.WishlistHandler{Service: wishlistService, Logger: zapLogger}
	itemHandler := &http.ItemHandler{Service: wishlistService, Logger: zapLogger}
	claimHandler := &http.ClaimHandler{Service: claimService, Logger: zapLogger}
	healthHandler := &http.HealthHandler{DB: postgresDB, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler, wishlistHandler, itemHandler, claimHandler, healthHandler,
		zapLogger, []byte(cfg.SessionJWTSecret),
	)

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown", zap.Error(err))
		}
		close(done)
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	<-done
}
