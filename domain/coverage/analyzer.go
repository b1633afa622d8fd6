package coverage

import (
	"fmt"

	"gopairs/domain/factor"
	"gopairs/domain/pairwise"

	"github.com/montanaflynn/stats"
)

// ValuePair is one (value_I, value_J) combination compared by string equality.
type ValuePair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Record is the coverage of a single factor pair.
type Record struct {
	Pair     pairwise.PairKey `json:"pair"`
	Factor1  string           `json:"factor1"`
	Factor2  string           `json:"factor2"`
	Values1  int              `json:"values1"`
	Values2  int              `json:"values2"`
	Total    int              `json:"total"`
	Covered  int              `json:"covered"`
	Ratio    float64          `json:"ratio"`
	Observed []ValuePair      `json:"-"`
	Missing  []ValuePair      `json:"missing,omitempty"`
}

// Percent formats the ratio with one decimal place.
func (r Record) Percent() string {
	return FormatPercent(r.Ratio)
}

// Complete reports whether the pair reached 100%. A factor with duplicated
// values can never complete: its repeated slots name the same string, so
// Covered stays below Total even when Missing is empty.
func (r Record) Complete() bool {
	return r.Total > 0 && r.Covered >= r.Total
}

// Analysis is the per-pair coverage of a suite, in ascending PairKey order.
type Analysis struct {
	Records []Record `json:"records"`
}

// FullyCovered certifies that every pair reached 100%.
func (a *Analysis) FullyCovered() bool {
	for _, r := range a.Records {
		if !r.Complete() {
			return false
		}
	}
	return true
}

// Summary aggregates pair ratios.
type Summary struct {
	Pairs      int     `json:"pairs"`
	MeanRatio  float64 `json:"mean_ratio"`
	MinRatio   float64 `json:"min_ratio"`
	Incomplete int     `json:"incomplete"`
}

// Summarize computes mean and minimum pair coverage.
func (a *Analysis) Summarize() Summary {
	s := Summary{Pairs: len(a.Records)}
	if len(a.Records) == 0 {
		return s
	}

	ratios := make(stats.Float64Data, len(a.Records))
	for i, r := range a.Records {
		ratios[i] = r.Ratio
		if !r.Complete() {
			s.Incomplete++
		}
	}

	// Mean and Min only fail on empty input, which is excluded above.
	s.MeanRatio, _ = ratios.Mean()
	s.MinRatio, _ = ratios.Min()
	return s
}

// Analyze computes, for every factor pair, how many distinct value
// combinations appear in the suite. It never mutates its inputs.
func Analyze(m factor.Model, suite *pairwise.Suite) *Analysis {
	keys := pairwise.Pairs(m.Len())
	analysis := &Analysis{Records: make([]Record, 0, pairwise.PairCount(m.Len()))}

	for _, key := range keys {
		f1, f2 := m.Factors[key.I], m.Factors[key.J]
		rec := Record{
			Pair:    key,
			Factor1: f1.Name,
			Factor2: f2.Name,
			Values1: len(f1.Values),
			Values2: len(f2.Values),
			Total:   len(f1.Values) * len(f2.Values),
		}

		rec.Observed = Observed(suite, key)
		seen := make(map[ValuePair]bool, len(rec.Observed))
		for _, vp := range rec.Observed {
			seen[vp] = true
		}
		rec.Covered = len(rec.Observed)

		for _, v := range f1.Values {
			for _, w := range f2.Values {
				vp := ValuePair{First: v, Second: w}
				if !seen[vp] {
					rec.Missing = append(rec.Missing, vp)
					// Duplicate values in a factor must not report a pair twice.
					seen[vp] = true
				}
			}
		}

		if rec.Total > 0 {
			rec.Ratio = float64(rec.Covered) / float64(rec.Total)
		}
		analysis.Records = append(analysis.Records, rec)
	}

	return analysis
}

// Observed lists the distinct value pairs of key in first-seen order.
func Observed(suite *pairwise.Suite, key pairwise.PairKey) []ValuePair {
	var out []ValuePair
	seen := make(map[ValuePair]bool)
	for _, tc := range suite.Cases {
		vp := ValuePair{First: tc.Values[key.I], Second: tc.Values[key.J]}
		if seen[vp] {
			continue
		}
		seen[vp] = true
		out = append(out, vp)
	}
	return out
}

// FormatPercent renders a 0..1 ratio as a one-decimal percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
