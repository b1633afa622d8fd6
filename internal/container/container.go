package container

import (
	"context"
	"fmt"

	"gopairs/adapters/excel"
	"gopairs/adapters/markdown"
	"gopairs/adapters/modelfile"
	"gopairs/adapters/postgres"
	"gopairs/app"
	"gopairs/domain/report"
	"gopairs/internal"
	"gopairs/internal/config"
	"gopairs/internal/migration"
	"gopairs/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// previewRows bounds preview tables so large suites stay readable on screen.
const previewRows = 200

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Writer      *excel.Writer
	Renderer    *markdown.Renderer
	ModelLoader ports.ModelReader
	SuiteRepo   ports.SuiteRepository

	// Services
	Labels        report.Labels
	ReportService *app.ReportService

	logger *internal.Logger
}

// New creates a new dependency injection container without a database
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	c := &Container{
		Config:      cfg,
		Writer:      excel.NewWriter(excel.DefaultWriterConfig()),
		Renderer:    markdown.NewRenderer(previewRows),
		ModelLoader: modelfile.NewLoader(excel.NewDataReader(excel.DefaultReaderConfig())),
		Labels:      report.LabelsFor(cfg.Report.Locale),
		logger:      internal.DefaultLogger.Named("Container"),
	}
	c.buildServices()
	return c, nil
}

// InitWithDatabase connects to Postgres, runs migrations and enables suite history
func (c *Container) InitWithDatabase(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		return fmt.Errorf("database is not configured")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("database migration failed: %w", err)
	}

	c.DB = db
	c.SuiteRepo = postgres.NewSuiteRepository(db)
	c.buildServices()

	c.logger.Info("Suite history enabled")
	return nil
}

func (c *Container) buildServices() {
	options := report.DefaultOptions()
	options.Labels = c.Labels
	c.ReportService = app.NewReportService(c.Writer, c.Renderer, c.SuiteRepo, app.ReportServiceConfig{
		Options:          options,
		BatchConcurrency: c.Config.Report.BatchConcurrency,
	})
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
