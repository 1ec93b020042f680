package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "rocketfist/docs"

	"rocketfist/internal/config"
	"rocketfist/internal/db"
	"rocketfist/internal/email"
	"rocketfist/internal/logger"
	"rocketfist/internal/scheduler"
	"rocketfist/internal/server"
)

const shutdownTimeout = 30 * time.Second

// @title Rocket Fist API
// @version 1.0
// @description Class scheduling and attendance for martial arts gyms.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting Rocket Fist", "port", cfg.Port)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		emailService.Start(ctx)
	}()

	srv := server.New(database, cfg, emailService)

	expansion, err := scheduler.New(cfg.ExpansionCron, srv.Schedule())
	if err != nil {
		logger.Fatalf("Failed to schedule expansion: %v", err)
	}
	expansion.Start()

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		logger.Error("Server error", "error", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", "error", err)
	}
	if err := expansion.Stop(shutdownCtx); err != nil {
		logger.Error("Expansion job did not stop in time", "error", err)
	}

	cancel()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logger.Warn("Notification worker did not stop in time")
	}

	logger.Info("Server stopped")
}
