package report

import (
	"math"
	"math/big"

	"gopairs/domain/coverage"
	"gopairs/domain/factor"
	"gopairs/domain/pairwise"

	"github.com/holiman/uint256"
)

// Statistics are the aggregate figures of the summary sheet.
type Statistics struct {
	Factors     int `json:"factors"`
	Cases       int `json:"cases"`
	TotalValues int `json:"total_values"`

	// Exhaustive is the product of all value counts. When the product does not
	// fit in 256 bits it saturates and Overflow is set.
	Exhaustive *uint256.Int `json:"-"`
	Overflow   bool         `json:"overflow,omitempty"`

	// Reduction is (1 - Cases/Exhaustive) * 100.
	Reduction float64 `json:"reduction"`

	Coverage coverage.Summary `json:"coverage"`
}

// ExhaustiveCombinations multiplies the value counts.
func ExhaustiveCombinations(sizes []int) (*uint256.Int, bool) {
	total := uint256.NewInt(1)
	for _, n := range sizes {
		if n < 0 {
			n = 0
		}
		if _, overflow := total.MulOverflow(total, uint256.NewInt(uint64(n))); overflow {
			return new(uint256.Int).SetAllOne(), true
		}
	}
	return total, false
}

// ReductionPercent returns (1 - cases/exhaustive) * 100, or 0 for an empty space.
func ReductionPercent(cases int, exhaustive *uint256.Int) float64 {
	if exhaustive == nil || exhaustive.IsZero() {
		return 0
	}
	if exhaustive.IsUint64() {
		return (1 - float64(cases)/float64(exhaustive.Uint64())) * 100
	}
	denominator := new(big.Float).SetInt(exhaustive.ToBig())
	ratio, _ := new(big.Float).Quo(big.NewFloat(float64(cases)), denominator).Float64()
	return (1 - ratio) * 100
}

// ComputeStatistics derives the summary figures.
func ComputeStatistics(m factor.Model, suite *pairwise.Suite, analysis *coverage.Analysis) Statistics {
	exhaustive, overflow := ExhaustiveCombinations(m.Sizes())
	stats := Statistics{
		Factors:     m.Len(),
		Cases:       suite.Len(),
		TotalValues: m.TotalValues(),
		Exhaustive:  exhaustive,
		Overflow:    overflow,
		Reduction:   ReductionPercent(suite.Len(), exhaustive),
	}
	if analysis != nil {
		stats.Coverage = analysis.Summarize()
	}
	return stats
}

// ExhaustiveCell renders the exhaustive count as a number cell when it fits in
// an int64 and as decimal text otherwise.
func (s Statistics) ExhaustiveCell() Cell {
	if s.Exhaustive == nil {
		return int64(0)
	}
	if s.Exhaustive.IsUint64() && s.Exhaustive.Uint64() <= math.MaxInt64 {
		return int64(s.Exhaustive.Uint64())
	}
	if s.Overflow {
		return ">" + s.Exhaustive.Dec()
	}
	return s.Exhaustive.Dec()
}

// ReductionText formats Reduction with one decimal place.
func (s Statistics) ReductionText() string {
	return coverage.FormatPercent(s.Reduction / 100)
}
