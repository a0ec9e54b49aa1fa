// Command migrate applies the embedded schema migrations.
//
//	migrate up|down|version
package main

import (
	"fmt"
	"log"
	"os"

	"bizcare-service/internal/config"
	"bizcare-service/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MIGRATE] No .env file found, relying on system env vars")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], config.Load(), logger); err != nil {
		logger.Error("migration failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, cfg config.AppConfig, logger *zap.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: migrate up|down|version")
	}
	switch args[0] {
	case "up", "down", "version":
	default:
		return fmt.Errorf("unknown command %q: want up, down or version", args[0])
	}

	m, err := db.NewMigrator(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logger.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}
