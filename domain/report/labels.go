package report

import (
	"fmt"
	"strings"
)

// Labels holds every user-visible sheet name and column header.
type Labels struct {
	MainSheet     string `json:"main_sheet"`
	CoverageSheet string `json:"coverage_sheet"`
	SummarySheet  string `json:"summary_sheet"`
	PairSeparator string `json:"pair_separator"`

	CaseNumber   string `json:"case_number"`
	Result       string `json:"result"`
	Notes        string `json:"notes"`
	Confirmation string `json:"confirmation"`

	CoverageFactor1 string `json:"coverage_factor1"`
	CoverageFactor2 string `json:"coverage_factor2"`
	CoverageValues1 string `json:"coverage_values1"`
	CoverageValues2 string `json:"coverage_values2"`
	CoverageTotal   string `json:"coverage_total"`
	CoverageCovered string `json:"coverage_covered"`
	CoverageRatio   string `json:"coverage_ratio"`

	SummaryFactor     string `json:"summary_factor"`
	SummaryValueCount string `json:"summary_value_count"`
	SummaryValues     string `json:"summary_values"`

	StatItem         string `json:"stat_item"`
	StatValue        string `json:"stat_value"`
	StatFactors      string `json:"stat_factors"`
	StatCases        string `json:"stat_cases"`
	StatExhaustive   string `json:"stat_exhaustive"`
	StatReduction    string `json:"stat_reduction"`
	StatTotalValues  string `json:"stat_total_values"`
	StatMeanCoverage string `json:"stat_mean_coverage"`
	StatMinCoverage  string `json:"stat_min_coverage"`

	// NewFactor and NewValue are fmt templates for names given to factors and
	// values added in the editor.
	NewFactor string `json:"new_factor"`
	NewValue  string `json:"new_value"`
}

// EnglishLabels is the default label set.
func EnglishLabels() Labels {
	return Labels{
		MainSheet:     "Pairwise Test Cases",
		CoverageSheet: "Coverage",
		SummarySheet:  "Summary",
		PairSeparator: "×",

		CaseNumber:   "Case No",
		Result:       "Result",
		Notes:        "Notes",
		Confirmation: "Checked",

		CoverageFactor1: "Factor 1",
		CoverageFactor2: "Factor 2",
		CoverageValues1: "Factor 1 Values",
		CoverageValues2: "Factor 2 Values",
		CoverageTotal:   "Combinations",
		CoverageCovered: "Covered",
		CoverageRatio:   "Coverage",

		SummaryFactor:     "Factor",
		SummaryValueCount: "Value Count",
		SummaryValues:     "Values",

		StatItem:         "Item",
		StatValue:        "Value",
		StatFactors:      "Factors",
		StatCases:        "Test Cases",
		StatExhaustive:   "Exhaustive Combinations",
		StatReduction:    "Reduction",
		StatTotalValues:  "Total Values",
		StatMeanCoverage: "Mean Pair Coverage",
		StatMinCoverage:  "Min Pair Coverage",

		NewFactor: "Factor %d",
		NewValue:  "Value %d-%d",
	}
}

// JapaneseLabels reproduces the headings of the original Japanese workbook.
func JapaneseLabels() Labels {
	return Labels{
		MainSheet:     "Pairwiseテストケース",
		CoverageSheet: "カバレッジ分析",
		SummarySheet:  "サマリー",
		PairSeparator: "×",

		CaseNumber:   "テストケースNo",
		Result:       "結果",
		Notes:        "備考",
		Confirmation: "確認",

		CoverageFactor1: "因子1",
		CoverageFactor2: "因子2",
		CoverageValues1: "因子1の値数",
		CoverageValues2: "因子2の値数",
		CoverageTotal:   "全組み合わせ数",
		CoverageCovered: "カバー数",
		CoverageRatio:   "カバレッジ率",

		SummaryFactor:     "因子名",
		SummaryValueCount: "値の数",
		SummaryValues:     "値",

		StatItem:         "項目",
		StatValue:        "値",
		StatFactors:      "総因子数",
		StatCases:        "総テストケース数",
		StatExhaustive:   "全組み合わせ数（総当たり）",
		StatReduction:    "削減率",
		StatTotalValues:  "総値数",
		StatMeanCoverage: "平均カバレッジ",
		StatMinCoverage:  "最小カバレッジ",

		NewFactor: "因子%d",
		NewValue:  "値%d-%d",
	}
}

// FactorName is the default name of the n-th factor (1-based).
func (l Labels) FactorName(n int) string {
	return fmt.Sprintf(l.NewFactor, n)
}

// ValueName is the default name of the m-th value of the n-th factor.
func (l Labels) ValueName(n, m int) string {
	return fmt.Sprintf(l.NewValue, n, m)
}

// LabelsFor picks a label set by locale tag, defaulting to English.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "ja", "ja-jp", "ja_jp", "japanese":
		return JapaneseLabels()
	default:
		return EnglishLabels()
	}
}
