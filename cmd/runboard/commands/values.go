package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/runboard/internal/leaderboard"
)

func newValuesCmd(g *globalOptions) *cobra.Command {
	var file, kind string

	cmd := &cobra.Command{
		Use:   "values",
		Short: "List record identities or the distinct values of a category",
		Long: `Lists the selectable values of a roster: sorted identities for
--kind individual, otherwise the sorted distinct values of the category.

Example:
  runboard values --file data/2025.csv
  runboard values --file data/2025.csv --kind House`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd, g)
			if err != nil {
				return err
			}
			src, err := openLocal(cmd.Context(), g, file, "km")
			if err != nil {
				return err
			}
			values, err := src.svc.Values(kind)
			if err != nil {
				return err
			}
			return p.values(kind, values)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "roster CSV file")
	cmd.Flags().StringVarP(&kind, "kind", "k", leaderboard.KindIndividual, `"individual" or a category column`)

	return cmd
}
