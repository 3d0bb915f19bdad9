// Command migratefields copies values from the legacy field_data table into
// each entity's custom_fields column. Safe to re-run.
// Usage: go run ./cmd/migratefields
package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/logger"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	store := postgres.NewFieldStore(db, zl)
	svc := service.NewFieldService(store, store, zl, cfg.Fields.MigrateBatch)

	n, err := svc.MigrateLegacyValues(context.Background())
	if err != nil {
		return fmt.Errorf("migrate legacy values: %w", err)
	}
	zl.Info("legacy field values migrated", zap.Int("values", n))
	fmt.Printf("migrated %d values\n", n)
	return nil
}
