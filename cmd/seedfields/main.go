// Command seedfields creates the default product and customer field
// definitions. Existing definitions are left untouched.
// Usage: go run ./cmd/seedfields
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

	n, err := svc.SeedDefaults(context.Background())
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	zl.Info("default fields seeded", zap.Int("created", n))
	fmt.Printf("created %d field definitions\n", n)
	return nil
}
