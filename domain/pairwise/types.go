package pairwise

import (
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// TestCase is one selection of exactly one value per factor. Number is the
// 1-based position in generation order.
type TestCase struct {
	Number int      `json:"number"`
	Values []string `json:"values"`
}

// PairKey identifies a covering target: the factor indices I < J.
type PairKey struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Suite is the ordered output of Generate.
type Suite struct {
	Cases []TestCase `json:"cases"`
}

// Len returns the number of test cases.
func (s *Suite) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Cases)
}

// Rows returns the case values without numbering.
func (s *Suite) Rows() [][]string {
	rows := make([][]string, s.Len())
	for i, tc := range s.Cases {
		rows[i] = tc.Values
	}
	return rows
}

// Pairs enumerates the PairKeys of n factors in ascending (I, J) order.
func Pairs(n int) []PairKey {
	if n < 2 {
		return nil
	}
	combos := combin.Combinations(n, 2)
	keys := make([]PairKey, len(combos))
	for idx, c := range combos {
		keys[idx] = PairKey{I: c[0], J: c[1]}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].I != keys[b].I {
			return keys[a].I < keys[b].I
		}
		return keys[a].J < keys[b].J
	})
	return keys
}

// PairCount is the number of PairKeys for n factors.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return combin.Binomial(n, 2)
}
