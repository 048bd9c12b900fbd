package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgetwise/internal/amqp"
	"budgetwise/internal/config"
	"budgetwise/internal/core"
	"budgetwise/internal/engine"
	"budgetwise/internal/ledger"
	"budgetwise/internal/ledger/memory"
	"budgetwise/internal/log"
	"budgetwise/internal/services"
	"budgetwise/internal/storage"
)

func main() {
	// Load .env for local development; absent files are fine.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(cfg.LogLevel, "advisor")
	log.SetDefault(logger)

	logger.Info("Starting advisor-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var store ledger.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		store = repo
	default:
		// An in-memory store only makes sense for trying the worker
		// out; insights over it reflect this process's writes alone.
		store = memory.NewSeeded()
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - insights will be computed but not published")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	advisor := services.NewAdvisor(engine.New(store), amqpClient, services.AdvisorConfig{
		Window:   core.Window(cfg.AdvisorWindow),
		Interval: cfg.AdvisorInterval,
	})
	if err := advisor.Start(ctx); err != nil {
		logger.Error("Failed to start advisor", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := advisor.Stop(shutdownCtx); err != nil {
		logger.Error("Advisor shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("Advisor-worker stopped")
}
