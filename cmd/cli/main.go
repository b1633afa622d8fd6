package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	locale  string
	noColor bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "gopairs-cli",
		Short:         "Generate pairwise test suites and coverage reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "label set for reports (en or ja); defaults to REPORT_LOCALE")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newCoverageCmd(opts),
		newReportCmd(opts),
		newPreviewCmd(opts),
		newExampleCmd(),
	)
	return rootCmd
}
