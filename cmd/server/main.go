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

	"github.com/teamfinder-app/teamfinder/internal/api"
	"github.com/teamfinder-app/teamfinder/internal/auth"
	"github.com/teamfinder-app/teamfinder/internal/cleanup"
	"github.com/teamfinder-app/teamfinder/internal/config"
	"github.com/teamfinder-app/teamfinder/internal/database"
	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/matching"
	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	userRepo := user.NewRepository(db.Pool())
	teamRepo := team.NewRepository(db.Pool())
	invitationRepo := invitation.NewRepository(db.Pool())
	clientRepo := auth.NewRepository(db.Pool())

	finder := matching.NewFinder(userRepo, teamRepo)
	invitationSvc := invitation.NewService(
		invitationRepo,
		userRepo,
		cfg.MaxInvitationsPerDay,
		time.Duration(cfg.InvitationTTLHours)*time.Hour,
	)
	authSvc := auth.NewService(clientRepo, cfg.BcryptCost)

	if _, err := authSvc.BootstrapClient(ctx); err != nil {
		slog.Error("failed to bootstrap API client", "error", err)
		os.Exit(1)
	}

	runner := cleanup.New(
		invitationRepo,
		userRepo,
		time.Duration(cfg.CleanupIntervalMinutes)*time.Minute,
		time.Duration(cfg.InactiveAfterDays)*24*time.Hour,
	)
	go runner.Start(ctx)

	router := api.NewRouter(api.RouterDeps{
		DBPinger:        db,
		Version:         cfg.Version,
		Users:           userRepo,
		Teams:           teamRepo,
		Finder:          finder,
		Invitations:     invitationSvc,
		InvitationStore: invitationRepo,
		Auth:            authSvc,
		Clients:         clientRepo,
		MaxResults:      cfg.MaxSearchResults,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting teamfinder server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
