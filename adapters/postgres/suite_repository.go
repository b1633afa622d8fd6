package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gopairs/domain/core"
	"gopairs/domain/pairwise"
	"gopairs/ports"

	"github.com/jmoiron/sqlx"
)

// suiteRepository implements the SuiteRepository interface
type suiteRepository struct {
	db *sqlx.DB
}

// NewSuiteRepository creates a new suite repository
func NewSuiteRepository(db *sqlx.DB) ports.SuiteRepository {
	return &suiteRepository{db: db}
}

// suiteRow mirrors a generated_suites row
type suiteRow struct {
	ID          string    `db:"id"`
	ModelHash   string    `db:"model_hash"`
	Model       []byte    `db:"model"`
	Cases       []byte    `db:"cases"`
	FactorCount int       `db:"factor_count"`
	CaseCount   int       `db:"case_count"`
	Exhaustive  string    `db:"exhaustive"`
	Reduction   float64   `db:"reduction"`
	CreatedAt   time.Time `db:"created_at"`
}

const suiteColumns = `id, model_hash, model, cases, factor_count, case_count, exhaustive, reduction, created_at`

// Save inserts a generated suite
func (r *suiteRepository) Save(ctx context.Context, rec *pairwise.Record) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}

	query := `INSERT INTO generated_suites (` + suiteColumns + `) VALUES (
		:id, :model_hash, :model, :cases, :factor_count, :case_count, :exhaustive, :reduction, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save suite: %w", err)
	}
	return nil
}

// GetByID retrieves a suite by its ID
func (r *suiteRepository) GetByID(ctx context.Context, id core.SuiteID) (*pairwise.Record, error) {
	var row suiteRow
	err := r.db.GetContext(ctx, &row, `SELECT `+suiteColumns+` FROM generated_suites WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("suite", id.String())
		}
		return nil, fmt.Errorf("failed to get suite: %w", err)
	}
	return row.toRecord()
}

// ListByModelHash returns the newest suites generated from an identical model
func (r *suiteRepository) ListByModelHash(ctx context.Context, hash core.ModelHash, limit int) ([]*pairwise.Record, error) {
	query := `SELECT ` + suiteColumns + ` FROM generated_suites
	WHERE model_hash = $1
	ORDER BY created_at DESC
	LIMIT $2`
	return r.list(ctx, query, hash.String(), clampLimit(limit))
}

// ListRecent returns the newest suites
func (r *suiteRepository) ListRecent(ctx context.Context, limit int) ([]*pairwise.Record, error) {
	query := `SELECT ` + suiteColumns + ` FROM generated_suites
	ORDER BY created_at DESC
	LIMIT $1`
	return r.list(ctx, query, clampLimit(limit))
}

func (r *suiteRepository) list(ctx context.Context, query string, args ...interface{}) ([]*pairwise.Record, error) {
	var rows []suiteRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query suites: %w", err)
	}

	records := make([]*pairwise.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

func toRow(rec *pairwise.Record) (*suiteRow, error) {
	modelJSON, err := json.Marshal(rec.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model: %w", err)
	}
	casesJSON, err := json.Marshal(rec.Cases)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cases: %w", err)
	}
	return &suiteRow{
		ID:          rec.ID.String(),
		ModelHash:   rec.ModelHash.String(),
		Model:       modelJSON,
		Cases:       casesJSON,
		FactorCount: rec.Model.Len(),
		CaseCount:   rec.CaseCount(),
		Exhaustive:  rec.Exhaustive,
		Reduction:   rec.Reduction,
		CreatedAt:   rec.CreatedAt.Time(),
	}, nil
}

func (row suiteRow) toRecord() (*pairwise.Record, error) {
	rec := &pairwise.Record{
		ID:         core.SuiteID(row.ID),
		ModelHash:  core.ModelHash(row.ModelHash),
		Exhaustive: row.Exhaustive,
		Reduction:  row.Reduction,
		CreatedAt:  core.NewTimestamp(row.CreatedAt.UTC()),
	}
	if err := json.Unmarshal(row.Model, &rec.Model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if err := json.Unmarshal(row.Cases, &rec.Cases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cases: %w", err)
	}
	return rec, nil
}
