package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/teamsync/internal/app"
	"github.com/riskibarqy/teamsync/internal/config"
	"github.com/riskibarqy/teamsync/internal/dataset"
	"github.com/riskibarqy/teamsync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("file", "", "dataset YAML file (defaults to DATASET_PATH, then the built-in dataset)")
	workers := flag.Int("workers", 4, "concurrent fixture writers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(logging.Options{
		Level:          cfg.LogLevel,
		ServiceName:    "teamsync-seed",
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.AppEnv,
	})
	defer func() { _ = logger.Sync() }()

	source := *path
	if source == "" {
		source = cfg.DatasetPath
	}

	now := time.Now()
	var ds dataset.Dataset
	if source == "" {
		ds, err = dataset.Default(now)
	} else {
		ds, err = dataset.LoadFile(source, now)
	}
	if err != nil {
		logger.Error("load dataset", "file", source, "error", err)
		os.Exit(1)
	}

	db, err := app.OpenDB(cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := postgres.SeedDataset(ctx, db, ds, *workers, logger)
	if err != nil {
		logger.Error("seed dataset", "error", err)
		_ = db.Close()
		os.Exit(1)
	}

	logger.Info("dataset seeded",
		"teams", result.Teams,
		"users", result.Users,
		"fixtures", result.Fixtures,
		"roster_members", result.Rosters,
		"stats", result.Stats,
	)
}
