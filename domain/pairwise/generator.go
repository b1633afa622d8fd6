package pairwise

import (
	"gopairs/domain/factor"

	"gonum.org/v1/gonum/stat/combin"
)

// unassigned marks a slot no pair has claimed yet.
const unassigned = -1

// Generate builds a suite in which every value pair of every two factors
// appears in at least one test case. It is a deterministic greedy
// in-parameter-order construction: the first two factors are crossed, then each
// further factor is added by horizontal extension followed by vertical growth.
// Identical models always yield identical suites.
func Generate(m factor.Model) (*Suite, error) {
	if err := factor.Validate(m); err != nil {
		return nil, err
	}

	snapshot := m.Clone()
	sizes := snapshot.Sizes()

	rows := seed(sizes)
	for k := 2; k < len(sizes); k++ {
		missing := newPairSet(sizes, k)
		extendHorizontally(rows, sizes, k, missing)
		rows = growVertically(rows, sizes, k, missing)
	}

	return materialize(snapshot, rows), nil
}

// seed crosses factor 0 with factor 1, factor-0 value outermost.
func seed(sizes []int) [][]int {
	product := combin.Cartesian(sizes[:2])
	rows := make([][]int, len(product))
	for i, p := range product {
		row := newRow(len(sizes))
		row[0], row[1] = p[0], p[1]
		rows[i] = row
	}
	return rows
}

func newRow(n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = unassigned
	}
	return row
}

// pairSet tracks which (j, a, k, b) pairs are still uncovered while factor k
// is being added. missing[j][a][b] is true while value a of factor j has not
// been seen with value b of factor k.
type pairSet struct {
	missing [][][]bool
}

func newPairSet(sizes []int, k int) *pairSet {
	missing := make([][][]bool, k)
	for j := 0; j < k; j++ {
		missing[j] = make([][]bool, sizes[j])
		for a := range missing[j] {
			missing[j][a] = make([]bool, sizes[k])
			for b := range missing[j][a] {
				missing[j][a][b] = true
			}
		}
	}
	return &pairSet{missing: missing}
}

// gain counts the uncovered pairs value b of factor k would cover in row.
func (p *pairSet) gain(row []int, k, b int) int {
	n := 0
	for j := 0; j < k; j++ {
		if a := row[j]; a != unassigned && p.missing[j][a][b] {
			n++
		}
	}
	return n
}

func (p *pairSet) cover(row []int, k int) {
	b := row[k]
	for j := 0; j < k; j++ {
		if a := row[j]; a != unassigned {
			p.missing[j][a][b] = false
		}
	}
}

// extendHorizontally assigns slot k of every existing row to the value with the
// greatest gain. Ties go to the lowest value index.
func extendHorizontally(rows [][]int, sizes []int, k int, p *pairSet) {
	for _, row := range rows {
		best, bestGain := 0, -1
		for b := 0; b < sizes[k]; b++ {
			if g := p.gain(row, k, b); g > bestGain {
				best, bestGain = b, g
			}
		}
		row[k] = best
		p.cover(row, k)
	}
}

// growVertically covers the residual pairs of factor k in ascending (j, a, b)
// order, merging each into the first row that can take it before appending a
// new row. New rows keep their other slots unassigned so later pairs may still
// merge into them.
func growVertically(rows [][]int, sizes []int, k int, p *pairSet) [][]int {
	for j := 0; j < k; j++ {
		for a := 0; a < sizes[j]; a++ {
			for b := 0; b < sizes[k]; b++ {
				if !p.missing[j][a][b] {
					continue
				}
				p.missing[j][a][b] = false

				if row := findCompatible(rows, j, a, k, b); row != nil {
					row[j] = a
					continue
				}

				row := newRow(len(sizes))
				row[j], row[k] = a, b
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func findCompatible(rows [][]int, j, a, k, b int) []int {
	for _, row := range rows {
		if row[k] == b && (row[j] == unassigned || row[j] == a) {
			return row
		}
	}
	return nil
}

// materialize fills leftover slots with each factor's first value and maps
// indices back to the model's strings.
func materialize(m factor.Model, rows [][]int) *Suite {
	suite := &Suite{Cases: make([]TestCase, len(rows))}
	for i, row := range rows {
		values := make([]string, len(row))
		for f, idx := range row {
			if idx == unassigned {
				idx = 0
			}
			values[f] = m.Factors[f].Values[idx]
		}
		suite.Cases[i] = TestCase{Number: i + 1, Values: values}
	}
	return suite
}
