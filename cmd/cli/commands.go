package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopairs/adapters/modelfile"
	"gopairs/app"
	"gopairs/domain/coverage"
	"gopairs/domain/factor"
	"gopairs/internal/config"
	"gopairs/internal/container"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// setup loads configuration, applies the locale flag and builds the container.
func setup(opts *globalOptions) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.locale != "" {
		cfg.Report.Locale = opts.locale
	}
	return container.New(cfg)
}

func loadModel(cmd *cobra.Command, c *container.Container, path string) (factor.Model, error) {
	if path == "-" || path == "" {
		return factor.Example(), nil
	}
	return c.ModelLoader.ReadModel(cmd.Context(), path)
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "generate [model-file]",
		Short: "Print the pairwise test cases for a model",
		Long: `Generate prints the pairwise test cases for a model file (.yaml, .json, .xlsx or .csv).
Without a file the built-in example model is used.

Example: gopairs-cli generate model.yaml --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(opts)
			if err != nil {
				return err
			}
			m, err := loadModel(cmd, c, firstArg(args))
			if err != nil {
				return err
			}
			result, err := c.ReportService.GenerateReport(cmd.Context(), m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Suite)
			case "csv":
				return writeCSV(out, result)
			case "table":
				return writeCases(out, result)
			default:
				return fmt.Errorf("unknown format %q (table, json or csv)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or csv")
	return cmd
}

func newCoverageCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage [model-file]",
		Short: "Show pair coverage of the generated suite",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(opts)
			if err != nil {
				return err
			}
			m, err := loadModel(cmd, c, firstArg(args))
			if err != nil {
				return err
			}
			result, err := c.ReportService.GenerateReport(cmd.Context(), m)
			if err != nil {
				return err
			}
			return writeCoverage(cmd.OutOrStdout(), result)
		},
	}
	return cmd
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var output string
	var outDir string

	cmd := &cobra.Command{
		Use:   "report [model-file...]",
		Short: "Write xlsx reports",
		Long: `Report writes the comparison workbook for each model file.
With one model the workbook goes to --output; with several, each goes to
--out-dir as <model-name>.xlsx and the files are written concurrently.

Example: gopairs-cli report checkout.yaml login.csv --out-dir reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(opts)
			if err != nil {
				return err
			}
			if output == "" {
				output = filepath.Join(c.Config.Report.OutputDir, c.Config.Report.FileName)
			}
			if outDir == "" {
				outDir = c.Config.Report.OutputDir
			}

			var jobs []app.ExportJob
			if len(args) <= 1 {
				m, err := loadModel(cmd, c, firstArg(args))
				if err != nil {
					return err
				}
				jobs = append(jobs, app.ExportJob{Model: m, Path: output})
			} else {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				for _, path := range args {
					m, err := loadModel(cmd, c, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".xlsx"
					jobs = append(jobs, app.ExportJob{Model: m, Path: filepath.Join(outDir, name)})
				}
			}

			return reportOutcomes(cmd.OutOrStdout(), c.ReportService.ExportBatch(cmd.Context(), jobs))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path for a single model")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for workbooks when several models are given")
	return cmd
}

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "preview [model-file]",
		Short: "Render the report as Markdown or HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(opts)
			if err != nil {
				return err
			}
			m, err := loadModel(cmd, c, firstArg(args))
			if err != nil {
				return err
			}
			if asHTML {
				html, err := c.ReportService.Preview(cmd.Context(), m)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			result, err := c.ReportService.GenerateReport(cmd.Context(), m)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(c.Renderer.Markdown(result.Document))
			return err
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render HTML instead of Markdown")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print the built-in example model as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := modelfile.Encode(factor.Example())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func writeCases(out io.Writer, result *app.Result) error {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\n", strings.Join(result.Model.Names(), "\t"))
	for _, tc := range result.Suite.Cases {
		fmt.Fprintf(tw, "%d\t%s\n", tc.Number, strings.Join(tc.Values, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats := result.Statistics
	fmt.Fprintln(out)
	bold.Fprintf(out, "%d cases", stats.Cases)
	dim.Fprintf(out, " instead of %v exhaustive (%s fewer)\n", stats.ExhaustiveCell(), stats.ReductionText())
	return nil
}

func writeCSV(out io.Writer, result *app.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(append([]string{"No"}, result.Model.Names()...)); err != nil {
		return err
	}
	for _, tc := range result.Suite.Cases {
		if err := w.Write(append([]string{fmt.Sprint(tc.Number)}, tc.Values...)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeCoverage(out io.Writer, result *app.Result) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.FgHiBlack)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, rec := range result.Coverage.Records {
		status := green.Sprint("complete")
		switch {
		case len(rec.Missing) > 0:
			status = red.Sprintf("%d missing", len(rec.Missing))
		case !rec.Complete():
			status = red.Sprint("duplicate values")
		}
		fmt.Fprintf(tw, "%s × %s\t%d/%d\t%s\t%s\n", rec.Factor1, rec.Factor2, rec.Covered, rec.Total, rec.Percent(), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := result.Statistics.Coverage
	dim.Fprintf(out, "\n%d pairs, mean %s, min %s\n", summary.Pairs,
		coverage.FormatPercent(summary.MeanRatio), coverage.FormatPercent(summary.MinRatio))
	return nil
}

func reportOutcomes(out io.Writer, outcomes []app.ExportOutcome) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			red.Fprintf(out, "✗ %s: %v\n", o.Path, o.Err)
			continue
		}
		green.Fprintf(out, "✓ %s", o.Path)
		fmt.Fprintf(out, " (%d cases, %s reduction)\n", o.Result.Suite.Len(), o.Result.Statistics.ReductionText())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, len(outcomes))
	}
	return nil
}
