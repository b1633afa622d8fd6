package pairwise

import (
	"gopairs/domain/core"
	"gopairs/domain/factor"
)

// Record is a generated suite as kept in history.
type Record struct {
	ID         core.SuiteID   `json:"id"`
	ModelHash  core.ModelHash `json:"model_hash"`
	Model      factor.Model   `json:"model"`
	Cases      []TestCase     `json:"cases"`
	Exhaustive string         `json:"exhaustive"`
	Reduction  float64        `json:"reduction"`
	CreatedAt  core.Timestamp `json:"created_at"`
}

// NewRecord stamps a suite with a fresh ID and the model fingerprint.
func NewRecord(m factor.Model, suite *Suite, exhaustive string, reduction float64) *Record {
	rec := &Record{
		ID:         core.NewSuiteID(),
		ModelHash:  m.Hash(),
		Model:      m.Clone(),
		Exhaustive: exhaustive,
		Reduction:  reduction,
		CreatedAt:  core.Now(),
	}
	if suite != nil {
		rec.Cases = suite.Cases
	}
	return rec
}

// CaseCount is the number of stored cases.
func (r *Record) CaseCount() int {
	return len(r.Cases)
}
