package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/application/service"
	"github.com/aduanafuel/invoice-workflow/internal/config"
	"github.com/aduanafuel/invoice-workflow/internal/infrastructure/persistence/repository"
	"github.com/aduanafuel/invoice-workflow/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/aduanafuel/invoice-workflow/internal/interfaces/http"
	"github.com/aduanafuel/invoice-workflow/internal/report"
	"github.com/aduanafuel/invoice-workflow/pkg/database"
	"github.com/aduanafuel/invoice-workflow/pkg/utils"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting invoice approval workflow",
		zap.Int("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Path))

	sqlDB, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer sqlDB.Close()

	migrator := database.NewMigrator(sqlDB, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	db := sqlite.NewDB(sqlDB, logger)

	invoiceRepo := repository.NewInvoiceRepository(db, logger)
	userRepo := repository.NewUserRepository(db, logger)
	taxRepo := repository.NewTaxConfigRepository(db, logger)
	historyRepo := repository.NewHistoryRepository(db, logger)
	notificationRepo := repository.NewNotificationRepository(db, logger)

	kv := utils.NewKVLogger(logger)

	notifier := service.NewNotificationService(notificationRepo, userRepo, kv)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, userRepo, taxRepo, historyRepo, notifier, db, kv)
	taxConfigSvc := service.NewTaxConfigService(taxRepo, userRepo, kv)
	userSvc := service.NewUserService(userRepo, kv)

	exporter := report.NewExporter(cfg.Report.CompanyName, logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, invoiceSvc, taxConfigSvc, userSvc, notifier, exporter, kv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
