package ports

import (
	"context"

	"gopairs/domain/core"
	"gopairs/domain/pairwise"
)

// SuiteRepository defines the interface for generated suite history
type SuiteRepository interface {
	Save(ctx context.Context, rec *pairwise.Record) error
	GetByID(ctx context.Context, id core.SuiteID) (*pairwise.Record, error)
	ListByModelHash(ctx context.Context, hash core.ModelHash, limit int) ([]*pairwise.Record, error)
	ListRecent(ctx context.Context, limit int) ([]*pairwise.Record, error)
}
