package report

import (
	"fmt"
	"strings"

	"gopairs/domain/coverage"
	"gopairs/domain/factor"
	"gopairs/domain/pairwise"
)

// Options control presentation only; they never change which rows appear.
type Options struct {
	Labels        Labels
	PairNameRunes int
	MaxSheetName  int
}

// DefaultOptions returns English labels with the standard name limits.
func DefaultOptions() Options {
	return Options{
		Labels:        EnglishLabels(),
		PairNameRunes: PairNameRunes,
		MaxSheetName:  MaxSheetNameRunes,
	}
}

func (o Options) withDefaults() Options {
	if o.Labels == (Labels{}) {
		o.Labels = EnglishLabels()
	}
	if o.PairNameRunes <= 0 {
		o.PairNameRunes = PairNameRunes
	}
	if o.MaxSheetName <= 0 || o.MaxSheetName > MaxSheetNameRunes {
		o.MaxSheetName = MaxSheetNameRunes
	}
	return o
}

// Assemble lays a suite and its coverage out as a multi-sheet document: the
// test case table, one cross-tab per factor pair, the coverage table and the
// summary. A nil analysis is computed from the suite.
func Assemble(m factor.Model, suite *pairwise.Suite, analysis *coverage.Analysis, opts Options) (*Document, error) {
	if err := factor.Validate(m); err != nil {
		return nil, err
	}
	if suite == nil {
		return nil, fmt.Errorf("assemble report: nil suite")
	}
	for _, tc := range suite.Cases {
		if len(tc.Values) != m.Len() {
			return nil, fmt.Errorf("assemble report: case %d has %d values, model has %d factors",
				tc.Number, len(tc.Values), m.Len())
		}
	}
	if analysis == nil {
		analysis = coverage.Analyze(m, suite)
	}

	opts = opts.withDefaults()
	labels := opts.Labels
	namer := newSheetNamer(opts.MaxSheetName)

	// Fixed sheets claim their names first so pair sheets yield on collision.
	mainName := namer.claim(labels.MainSheet)
	coverageName := namer.claim(labels.CoverageSheet)
	summaryName := namer.claim(labels.SummarySheet)

	doc := &Document{}
	doc.Sheets = append(doc.Sheets, Sheet{Name: mainName, Tables: []Table{mainTable(m, suite, labels)}})

	for _, key := range pairwise.Pairs(m.Len()) {
		f1, f2 := m.Factors[key.I], m.Factors[key.J]
		name := namer.claim(PairSheetName(f1.Name, f2.Name, labels.PairSeparator, opts.PairNameRunes))
		doc.Sheets = append(doc.Sheets, Sheet{Name: name, Tables: []Table{crossTab(f1, f2, suite, key, labels)}})
	}

	doc.Sheets = append(doc.Sheets, Sheet{Name: coverageName, Tables: []Table{coverageTable(analysis, labels)}})

	stats := ComputeStatistics(m, suite, analysis)
	doc.Sheets = append(doc.Sheets, Sheet{
		Name:   summaryName,
		Tables: []Table{factorTable(m, labels), statisticsTable(stats, labels)},
	})

	return doc, nil
}

func mainTable(m factor.Model, suite *pairwise.Suite, labels Labels) Table {
	columns := make([]string, 0, m.Len()+3)
	columns = append(columns, labels.CaseNumber)
	columns = append(columns, m.Names()...)
	columns = append(columns, labels.Result, labels.Notes)

	rows := make([][]Cell, 0, suite.Len())
	for _, tc := range suite.Cases {
		row := make([]Cell, 0, len(columns))
		row = append(row, tc.Number)
		for _, v := range tc.Values {
			row = append(row, v)
		}
		row = append(row, "", "")
		rows = append(rows, row)
	}
	return Table{Columns: columns, Rows: rows}
}

func crossTab(f1, f2 factor.Factor, suite *pairwise.Suite, key pairwise.PairKey, labels Labels) Table {
	observed := coverage.Observed(suite, key)
	rows := make([][]Cell, len(observed))
	for i, vp := range observed {
		rows[i] = []Cell{vp.First, vp.Second, ""}
	}
	return Table{
		Columns: []string{f1.Name, f2.Name, labels.Confirmation},
		Rows:    rows,
	}
}

func coverageTable(analysis *coverage.Analysis, labels Labels) Table {
	rows := make([][]Cell, len(analysis.Records))
	for i, rec := range analysis.Records {
		rows[i] = []Cell{
			rec.Factor1, rec.Factor2,
			rec.Values1, rec.Values2,
			rec.Total, rec.Covered,
			rec.Percent(),
		}
	}
	return Table{
		Columns: []string{
			labels.CoverageFactor1, labels.CoverageFactor2,
			labels.CoverageValues1, labels.CoverageValues2,
			labels.CoverageTotal, labels.CoverageCovered,
			labels.CoverageRatio,
		},
		Rows: rows,
	}
}

func factorTable(m factor.Model, labels Labels) Table {
	rows := make([][]Cell, m.Len())
	for i, f := range m.Factors {
		rows[i] = []Cell{f.Name, len(f.Values), strings.Join(f.Values, ", ")}
	}
	return Table{
		Columns: []string{labels.SummaryFactor, labels.SummaryValueCount, labels.SummaryValues},
		Rows:    rows,
	}
}

func statisticsTable(stats Statistics, labels Labels) Table {
	return Table{
		Columns: []string{labels.StatItem, labels.StatValue},
		Rows: [][]Cell{
			{labels.StatFactors, stats.Factors},
			{labels.StatCases, stats.Cases},
			{labels.StatExhaustive, stats.ExhaustiveCell()},
			{labels.StatReduction, stats.ReductionText()},
			{labels.StatTotalValues, stats.TotalValues},
			{labels.StatMeanCoverage, coverage.FormatPercent(stats.Coverage.MeanRatio)},
			{labels.StatMinCoverage, coverage.FormatPercent(stats.Coverage.MinRatio)},
		},
	}
}
