package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopairs/domain/core"
	"gopairs/domain/coverage"
	"gopairs/domain/factor"
	"gopairs/domain/pairwise"
	"gopairs/domain/report"
	"gopairs/internal"
	"gopairs/internal/errors"
	"gopairs/ports"

	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"
)

// ReportService orchestrates suite generation, coverage analysis, report
// assembly and export
type ReportService struct {
	writer      ports.SheetWriter
	renderer    ports.PreviewRenderer
	repository  ports.SuiteRepository // nil disables history
	options     report.Options
	concurrency int
	logger      *internal.Logger
}

// ReportServiceConfig tunes a ReportService
type ReportServiceConfig struct {
	Options          report.Options
	BatchConcurrency int
}

// Result is everything derived from one model snapshot
type Result struct {
	ID         core.SuiteID
	Model      factor.Model
	Suite      *pairwise.Suite
	Coverage   *coverage.Analysis
	Statistics report.Statistics
	Document   *report.Document
	Persisted  bool
	RuntimeMs  int64
}

// ExportJob is one workbook to produce in a batch
type ExportJob struct {
	Model factor.Model
	Path  string
}

// ExportOutcome reports a batch job. Err is set when the job failed.
type ExportOutcome struct {
	Path   string
	Result *Result
	Err    error
}

// Metrics summarises a model for the editor's effect panel
type Metrics struct {
	Factors       int     `json:"factors"`
	TotalValues   int     `json:"total_values"`
	Cases         int     `json:"cases"`
	Exhaustive    string  `json:"exhaustive"`
	Reduction     float64 `json:"reduction"`
	ReductionText string  `json:"reduction_text"`
	Valid         bool    `json:"valid"`
	Message       string  `json:"message,omitempty"`
}

// NewReportService creates a report service. repository may be nil.
func NewReportService(writer ports.SheetWriter, renderer ports.PreviewRenderer, repository ports.SuiteRepository, config ReportServiceConfig) *ReportService {
	if config.BatchConcurrency < 1 {
		config.BatchConcurrency = 1
	}
	return &ReportService{
		writer:      writer,
		renderer:    renderer,
		repository:  repository,
		options:     config.Options,
		concurrency: config.BatchConcurrency,
		logger:      internal.DefaultLogger.Named("ReportService"),
	}
}

// Labels returns the label set reports are assembled with
func (s *ReportService) Labels() report.Labels {
	if s.options.Labels.MainSheet == "" {
		return report.DefaultOptions().Labels
	}
	return s.options.Labels
}

// GenerateReport builds the suite and report document for a snapshot of m and
// records the suite in history when a repository is configured. History
// failures are logged and never fail the generation.
func (s *ReportService) GenerateReport(ctx context.Context, m factor.Model) (*Result, error) {
	result, err := s.build(ctx, m)
	if err != nil {
		return nil, err
	}

	if s.repository != nil {
		rec := pairwise.NewRecord(result.Model, result.Suite, fmt.Sprint(result.Statistics.ExhaustiveCell()), result.Statistics.Reduction)
		rec.ID = result.ID
		if err := s.repository.Save(ctx, rec); err != nil {
			s.logger.Warn("Failed to record suite %s: %v", rec.ID, err)
		} else {
			result.Persisted = true
		}
	}
	return result, nil
}

// ExportReport generates a report and writes it as a workbook to w
func (s *ReportService) ExportReport(ctx context.Context, m factor.Model, w io.Writer) (*Result, error) {
	result, err := s.GenerateReport(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := s.writer.Write(ctx, result.Document, w); err != nil {
		return nil, errors.Wrap(err, "export report")
	}
	s.logger.Info("Exported %d cases for %d factors (suite %s)", result.Suite.Len(), result.Model.Len(), result.ID)
	return result, nil
}

// ExportBatch writes each job's workbook concurrently. Outcomes are returned
// in job order and one failing job does not stop the others.
func (s *ReportService) ExportBatch(ctx context.Context, jobs []ExportJob) []ExportOutcome {
	outcomes := make([]ExportOutcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			outcomes[i] = s.exportFile(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	s.logger.Info("Batch export finished: %d jobs, %d failed", len(jobs), failed)
	return outcomes
}

func (s *ReportService) exportFile(ctx context.Context, job ExportJob) ExportOutcome {
	outcome := ExportOutcome{Path: job.Path}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	file, err := os.Create(job.Path)
	if err != nil {
		outcome.Err = errors.Wrap(core.NewReportWriteError("create file", err), "export batch")
		return outcome
	}
	result, err := s.ExportReport(ctx, job.Model, file)
	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = errors.Wrap(core.NewReportWriteError("close file", closeErr), "export batch")
	}
	if err != nil {
		os.Remove(job.Path)
		outcome.Err = err
		return outcome
	}
	outcome.Result = result
	return outcome
}

// Preview renders the report as HTML without recording history
func (s *ReportService) Preview(ctx context.Context, m factor.Model) ([]byte, error) {
	result, err := s.build(ctx, m)
	if err != nil {
		return nil, err
	}
	return s.renderer.HTML(result.Document), nil
}

// Metrics reports the effect of pairwise reduction for m. An invalid model
// yields Valid=false with the validation message and the counts that can
// still be computed.
func (s *ReportService) Metrics(m factor.Model) Metrics {
	metrics, exhaustive := baseMetrics(m)
	if err := factor.Validate(m); err != nil {
		metrics.Message = err.Error()
		return metrics
	}
	suite, err := pairwise.Generate(m)
	if err != nil {
		metrics.Message = err.Error()
		return metrics
	}
	metrics.withCases(suite.Len(), report.ReductionPercent(suite.Len(), exhaustive))
	return metrics
}

// Overview derives the effect metrics and the HTML preview of m from one
// generation. An invalid model yields Valid=false and no preview.
func (s *ReportService) Overview(ctx context.Context, m factor.Model) (Metrics, []byte, error) {
	metrics, _ := baseMetrics(m)
	result, err := s.build(ctx, m)
	if err != nil {
		if core.IsValidationError(err) {
			metrics.Message = err.Error()
			return metrics, nil, nil
		}
		return metrics, nil, err
	}
	metrics.withCases(result.Suite.Len(), result.Statistics.Reduction)
	return metrics, s.renderer.HTML(result.Document), nil
}

func baseMetrics(m factor.Model) (Metrics, *uint256.Int) {
	exhaustive, overflow := report.ExhaustiveCombinations(m.Sizes())
	stats := report.Statistics{Exhaustive: exhaustive, Overflow: overflow}
	return Metrics{
		Factors:     m.Len(),
		TotalValues: m.TotalValues(),
		Exhaustive:  fmt.Sprint(stats.ExhaustiveCell()),
	}, exhaustive
}

func (m *Metrics) withCases(cases int, reduction float64) {
	m.Valid = true
	m.Cases = cases
	m.Reduction = reduction
	m.ReductionText = coverage.FormatPercent(reduction / 100)
}

// GetSuite loads a recorded suite
func (s *ReportService) GetSuite(ctx context.Context, id core.SuiteID) (*pairwise.Record, error) {
	if s.repository == nil {
		return nil, core.NewNotFoundError("suite", id.String())
	}
	return s.repository.GetByID(ctx, id)
}

// SuitesForModel lists recorded suites generated from a model with the given
// fingerprint, newest first
func (s *ReportService) SuitesForModel(ctx context.Context, hash core.ModelHash, limit int) ([]*pairwise.Record, error) {
	if s.repository == nil {
		return nil, nil
	}
	return s.repository.ListByModelHash(ctx, hash, limit)
}

// RecentSuites lists recorded suites, newest first
func (s *ReportService) RecentSuites(ctx context.Context, limit int) ([]*pairwise.Record, error) {
	if s.repository == nil {
		return nil, nil
	}
	return s.repository.ListRecent(ctx, limit)
}

func (s *ReportService) build(ctx context.Context, m factor.Model) (*Result, error) {
	startTime := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := m.Clone()
	if err := factor.Validate(snapshot); err != nil {
		return nil, err
	}

	suite, err := pairwise.Generate(snapshot)
	if err != nil {
		return nil, err
	}
	analysis := coverage.Analyze(snapshot, suite)

	doc, err := report.Assemble(snapshot, suite, analysis, s.options)
	if err != nil {
		return nil, errors.Wrap(err, "assemble report")
	}

	result := &Result{
		ID:         core.NewSuiteID(),
		Model:      snapshot,
		Suite:      suite,
		Coverage:   analysis,
		Statistics: report.ComputeStatistics(snapshot, suite, analysis),
		Document:   doc,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}
	s.logger.Debug("Generated %d cases for model %s in %dms", suite.Len(), core.Hash(snapshot.Hash()).Short(), result.RuntimeMs)
	return result, nil
}
