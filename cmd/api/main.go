// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
	"github.com/your-org/glowing-legacy-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/glowing-legacy-backend/internal/infrastructure/database/redis"
	"github.com/your-org/glowing-legacy-backend/internal/interfaces/http"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/email"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	logrus.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Health check
	if err := db.Health(); err != nil {
		logrus.Fatalf("Database health check failed: %v", err)
	}

	if err := redisClient.Health(); err != nil {
		logrus.Fatalf("Redis health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.DB)

	if err := migration.RunAutoMigrations(); err != nil {
		logrus.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		logrus.Warnf("Index creation failed: %v", err)
	}

	// Seed the catalog in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logrus.Warnf("Data seeding failed: %v", err)
		}
		migration.GetTableInfo()
	}

	logrus.Info("✅ All systems operational!")

	// Core services shared between the HTTP layer and the dispatcher
	emailService := email.NewService(cfg)
	messageService := message.NewService(db.DB, cfg, emailService)

	// Background dispatcher for due scheduled deliveries
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	if cfg.Dispatcher.Enabled {
		go runDispatcher(dispatcherCtx, messageService, cfg)
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, db.DB, redisClient.GetClient(), messageService, emailService)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logrus.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("👋 Shutting down gracefully...")
	stopDispatcher()

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logrus.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logrus.Info("✅ Server shutdown completed")
}

// setupLogging configures logrus from the logging config
func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// runDispatcher periodically sends scheduled deliveries that have
// come due. Failed sends stay pending and are retried next tick.
func runDispatcher(ctx context.Context, messageService *message.Service, cfg *config.Config) {
	logrus.Infof("🔄 Delivery dispatcher started (interval %s)", cfg.Dispatcher.Interval)

	ticker := time.NewTicker(cfg.Dispatcher.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("🛑 Delivery dispatcher stopped")
			return
		case <-ticker.C:
			dispatched, err := messageService.DispatchDueDeliveries(ctx, cfg.Dispatcher.BatchSize)
			if err != nil {
				logrus.WithError(err).Warn("Delivery dispatch run failed")
				continue
			}
			if dispatched > 0 {
				logrus.WithField("count", dispatched).Info("📬 Dispatched due deliveries")
			}
		}
	}
}
