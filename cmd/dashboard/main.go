package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"SoundTreasury/internal/api"
	"SoundTreasury/internal/cache"
	"SoundTreasury/internal/calculator"
	"SoundTreasury/internal/collector"
	"SoundTreasury/internal/config"
	"SoundTreasury/internal/logger"
	"SoundTreasury/internal/orchestrator"
	"SoundTreasury/internal/scheduler"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}

	logger.Setup(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	logrus.Info("SoundTreasury starting...")

	fetcher := collector.NewRemoteFetcher(
		cfg.DataSource.BaseURL,
		cfg.DataSource.APIKey,
		time.Duration(cfg.DataSource.TimeoutSec)*time.Second,
		cfg.DataSource.RateLimitRPS,
	)
	logrus.Infof("data source: %s (%s)", fetcher.Name(), cfg.DataSource.BaseURL)

	var store *cache.Store
	if cfg.Cache.SQLitePath != "" {
		store, err = cache.NewStore(cfg.Cache.SQLitePath, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			logrus.Warnf("persisted cache unavailable, running memory-only: %v", err)
		} else {
			defer store.Close()
		}
	}

	params := calculator.Params{
		Coefficient: cfg.Model.Coefficient,
		Exponent:    cfg.Model.Exponent,
		StdDev:      cfg.Model.StdDev,
	}
	orch := orchestrator.New(fetcher, cache.NewMemory(), store, params, cfg.Model.ChartMaxPoints)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, orch)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		logrus.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		logrus.Info("run_on_start enabled, refreshing now")
		go sched.RunNow()
	}

	server := api.NewServer(orch, cfg.Server.Address)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx)
	}()

	logrus.Info("SoundTreasury is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logrus.Info("shutdown signal received, stopping...")
		cancel()
		if err := <-serverErr; err != nil {
			logrus.Errorf("server shutdown: %v", err)
		}
	case err := <-serverErr:
		if err != nil {
			logrus.Fatalf("api server: %v", err)
		}
	}
	logrus.Info("SoundTreasury stopped")
}
