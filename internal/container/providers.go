package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flatfundpro/dues-portal/internal/application/port"
	"github.com/flatfundpro/dues-portal/internal/application/service"
	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
	"github.com/flatfundpro/dues-portal/internal/infrastructure/export"
	"github.com/flatfundpro/dues-portal/internal/infrastructure/persistence/repository"
	"github.com/flatfundpro/dues-portal/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/flatfundpro/dues-portal/internal/interfaces/http"
	"github.com/flatfundpro/dues-portal/pkg/database"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.DB
}

// ProvideDatabase opens the database and applies pending migrations.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.MigrationsDir != "" {
		migrator := database.NewMigrator(db, logger)
		if err := migrator.RunMigrations(cfg.MigrationsDir); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewDB(db.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories from a database connection.
func ProvideRepositories(db *database.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Block:      repository.NewBlockRepository(db.DB, logger),
		Collection: repository.NewCollectionRepository(db.DB, logger),
		Payment:    repository.NewPaymentRepository(db.DB, logger),
	}, nil
}

// ProvideReportWriter creates the Excel report writer.
func ProvideReportWriter(cfg *ReportConfig, logger *zap.Logger) port.ReportWriter {
	return export.NewExcelReportWriter(cfg.SheetName, logger)
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Repos        *RepositoryBundle
	TxManager    port.TransactionManager
	ReportWriter port.ReportWriter
	StatusCfg    *StatusConfig
	Logger       *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.ReportWriter == nil {
		return nil, fmt.Errorf("report writer is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	var fetchTimeout = service.DefaultFetchTimeout
	if deps.StatusCfg != nil && deps.StatusCfg.FetchTimeout > 0 {
		fetchTimeout = deps.StatusCfg.FetchTimeout
	}

	status := service.NewStatusService(
		deps.Repos.Block,
		deps.Repos.Collection,
		deps.Repos.Payment,
		reconcile.NewClassifier(reconcile.DefaultMatcher()),
		fetchTimeout,
		serviceLogger,
	)

	return &ServiceBundle{
		Registry: service.NewRegistryService(
			deps.Repos.Block,
			deps.Repos.Collection,
			deps.TxManager,
			serviceLogger,
		),
		Ledger: service.NewLedgerService(
			deps.Repos.Block,
			deps.Repos.Payment,
			deps.Repos.Collection,
			serviceLogger,
		),
		Status: status,
		Report: service.NewReportService(status, deps.ReportWriter, serviceLogger),
	}, nil
}

// ProvideHTTPServer creates the HTTP adapter over the services.
func ProvideHTTPServer(cfg *ServerConfig, services *ServiceBundle, health httpserver.HealthChecker, logger *zap.Logger) (*httpserver.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}

	return httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Host,
			Port:         cfg.Port,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			Mode:         cfg.Mode,
		},
		httpserver.Services{
			Registry: services.Registry,
			Ledger:   services.Ledger,
			Status:   services.Status,
			Report:   services.Report,
		},
		health,
		&zapLoggerAdapter{logger: logger},
	), nil
}
