package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type statsOptions struct {
	file     string
	unit     string
	name     string
	category string
	value    string
}

func newStatsCmd(g *globalOptions) *cobra.Command {
	o := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the statistics block of a record or group",
		Long: `Prints Total, Average, Standard Deviation, Maximum, Minimum, Weeks
Above Threshold and Last Week Improvement for one record (--name) or one
category value (--category with --value).

For a record Standard Deviation is the coefficient of variation (%); for a
group it is the absolute spread of member totals.

Example:
  runboard stats --file data/2025.csv --name "Alice"
  runboard stats --file data/2025.csv --category House --value Red --unit mi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, g, o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "roster CSV file")
	cmd.Flags().StringVarP(&o.unit, "unit", "u", "km", "display unit")
	cmd.Flags().StringVarP(&o.name, "name", "n", "", "record identity")
	cmd.Flags().StringVarP(&o.category, "category", "c", "", "category column")
	cmd.Flags().StringVar(&o.value, "value", "", "category value")

	return cmd
}

func runStats(cmd *cobra.Command, g *globalOptions, o *statsOptions) error {
	p, err := newPrinter(cmd, g)
	if err != nil {
		return err
	}
	switch {
	case o.name != "" && o.category != "":
		return fmt.Errorf("use either --name or --category, not both")
	case o.name == "" && (o.category == "" || o.value == ""):
		return fmt.Errorf("--name or --category with --value is required")
	}

	src, err := openLocal(cmd.Context(), g, o.file, o.unit)
	if err != nil {
		return err
	}

	if o.name != "" {
		block, err := src.svc.IndividualStats(o.name)
		if err != nil {
			return err
		}
		return p.stats(block)
	}

	block, err := src.svc.GroupStats(o.category, o.value)
	if err != nil {
		return err
	}
	return p.stats(block)
}
