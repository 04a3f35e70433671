// Package main initializes and starts the RecipeShare API server,
// setting up configuration, logging, database connections, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/RecipeShare/internal/auth"
	"github.com/atinyakov/RecipeShare/internal/config"
	"github.com/atinyakov/RecipeShare/internal/db"
	"github.com/atinyakov/RecipeShare/internal/logger"
	"github.com/atinyakov/RecipeShare/internal/middleware"
	"github.com/atinyakov/RecipeShare/internal/repository"
	"github.com/atinyakov/RecipeShare/internal/server/handler/http"
	"github.com/atinyakov/RecipeShare/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse .env, command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Initialize repositories for users and recipes.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	recipeRepo := repository.NewPostgresRecipeRepository(postgresDB)

	// Initialize business-logic services.
	tokens := auth.NewTokenManager(options.JWTSecret, options.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	sessionService := service.NewSessionService(userRepo, tokens)
	recipeService := service.NewRecipeService(recipeRepo)

	// Create HTTP handlers and the access gate.
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	recipeHandler := &http.RecipeHandler{RecipeService: recipeService, Logger: zapLogger}
	healthHandler := &http.HealthHandler{DB: postgresDB, Logger: zapLogger}
	gate := middleware.NewGate(sessionService, recipeService, zapLogger)

	// Build the router with middleware and routes.
	router := http.NewRouter(
		http.Routes(authHandler, recipeHandler, healthHandler),
		gate,
		http.RouterOptions{AllowedOrigins: options.AllowedOrigins, Logger: zapLogger},
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
