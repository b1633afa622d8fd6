package migration

import (
	"context"

	"gopairs/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createGeneratedSuitesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create generated_suites table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createGeneratedSuitesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generated_suites (
			id UUID PRIMARY KEY,
			model_hash TEXT NOT NULL,
			model JSONB NOT NULL,
			cases JSONB NOT NULL,
			factor_count INTEGER NOT NULL,
			case_count INTEGER NOT NULL,
			exhaustive TEXT NOT NULL,
			reduction DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_generated_suites_model_hash ON generated_suites(model_hash);
		CREATE INDEX IF NOT EXISTS idx_generated_suites_created_at ON generated_suites(created_at DESC);
	`)
	return err
}
