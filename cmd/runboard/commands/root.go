package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every subcommand
type globalOptions struct {
	boardFile string
	output    string // table | json
	noColor   bool
	verbose   bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "runboard",
		Short: "Roster leaderboards and distance statistics",
		Long: `runboard ranks a roster of weekly distance observations.

Offline commands read a CSV file directly; "api" serves the same
queries over HTTP against the configured data source.

Examples:
  runboard rank --file data/2025.csv --metric total_distance
  runboard rank --file data/2025.csv --category House --within
  runboard stats --file data/2025.csv --name "Alice"
  runboard stats --file data/2025.csv --category House --value Red
  runboard values --file data/2025.csv --kind Grade
  runboard api`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.boardFile, "board", "", "board config YAML (default: built-in schema/units/thresholds)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format (table|json)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newAPICmd(opts),
		newRankCmd(opts),
		newStatsCmd(opts),
		newMetricsCmd(opts),
		newValuesCmd(opts),
		newImportCmd(opts),
	)

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}
