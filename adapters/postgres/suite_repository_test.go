package postgres

import (
	"context"
	"os"
	"testing"

	"gopairs/domain/core"
	"gopairs/domain/factor"
	"gopairs/domain/pairwise"
	"gopairs/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowConversionRoundTrip(t *testing.T) {
	m := factor.Example()
	suite, err := pairwise.Generate(m)
	require.NoError(t, err)
	rec := pairwise.NewRecord(m, suite, "27", 62.96)

	row, err := toRow(rec)
	require.NoError(t, err)
	assert.Equal(t, 3, row.FactorCount)
	assert.Equal(t, suite.Len(), row.CaseCount)

	back, err := row.toRecord()
	require.NoError(t, err)
	assert.Equal(t, rec.ID, back.ID)
	assert.Equal(t, rec.ModelHash, back.ModelHash)
	assert.Equal(t, rec.Model, back.Model)
	assert.Equal(t, rec.Cases, back.Cases)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 100, clampLimit(0))
	assert.Equal(t, 100, clampLimit(500))
	assert.Equal(t, 10, clampLimit(10))
}

func TestSuiteRepositoryAgainstDatabase(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migration.NewRunner().Run(ctx, db))

	repo := NewSuiteRepository(db)
	m := factor.Example()
	suite, err := pairwise.Generate(m)
	require.NoError(t, err)
	rec := pairwise.NewRecord(m, suite, "27", 62.96)

	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Cases, got.Cases)

	byHash, err := repo.ListByModelHash(ctx, m.Hash(), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, byHash)

	_, err = repo.GetByID(ctx, core.NewSuiteID())
	assert.True(t, core.IsNotFoundError(err))
}
