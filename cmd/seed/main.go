// Command seed rebuilds the Nova Combat Academy demo gym. Running it again
// drops the previous copy first.
package main

import (
	"context"
	"flag"
	"time"

	"rocketfist/internal/config"
	"rocketfist/internal/db"
	"rocketfist/internal/logger"
	"rocketfist/internal/seed"
)

func main() {
	rngSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed for member selection")
	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	if *migrate {
		if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := seed.New(database, *rngSeed, time.Now()).Run(ctx, seed.Nova())
	if err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}

	logger.Info("Seed complete",
		"gym_id", summary.GymID,
		"users", summary.Users,
		"classes", summary.Classes,
		"instances", summary.Instances,
		"plans", summary.Plans,
		"memberships", summary.Memberships,
		"payments", summary.Payments,
		"registrations", summary.Registrations,
		"checked_in", summary.CheckedIn,
	)
}
