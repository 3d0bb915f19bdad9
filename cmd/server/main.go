package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/logger"
	"gstbill/internal/port"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
	s3storage "gstbill/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	fieldStore := postgres.NewFieldStore(db, zl)
	companyRepo := postgres.NewCompanyRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)

	// Initialize storage
	var archive port.ExportArchive
	if cfg.S3.Enabled {
		archive, err = s3storage.NewExportArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize export archive: %w", err)
		}
	}

	// Initialize services
	fieldSvc := service.NewFieldService(fieldStore, fieldStore, zl.Named("fields"), cfg.Fields.MigrateBatch)
	billSvc := service.NewBillService(companyRepo, customerRepo, archive, zl.Named("bills"), service.BillServiceConfig{
		DefaultStateCode: cfg.Tax.DefaultStateCode,
		PresignExpiry:    time.Duration(cfg.S3.PresignExpiry) * time.Second,
	})
	verifier := service.NewTokenVerifier(cfg.JWT)

	if cfg.Fields.SeedDefaults {
		n, err := fieldSvc.SeedDefaults(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed default fields: %w", err)
		}
		zl.Info("default fields seeded", zap.Int("created", n))
	}

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	billH := handler.NewBillHandler(billSvc)
	gstH := handler.NewGSTHandler()
	fieldH := handler.NewFieldHandler(fieldSvc)
	entityFieldH := handler.NewEntityFieldHandler(fieldSvc)

	// Setup router
	r := router.Setup(cfg, zl, verifier, healthH, billH, gstH, fieldH, entityFieldH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.Bool("export_archive", archive != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}
