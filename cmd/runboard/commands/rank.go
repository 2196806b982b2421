package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rankOptions struct {
	file     string
	unit     string
	metric   string
	order    string
	category string
	value    string
	within   bool
}

func newRankCmd(g *globalOptions) *cobra.Command {
	o := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print a leaderboard from a CSV roster",
		Long: `Ranks individuals, or the values of a category, by one metric.

Without --category every record is ranked. With --category the values of
that column are ranked by the summed metric of their members; add
--within for one board per value, or --value for a single value's board.

Example:
  runboard rank --file data/2025.csv --metric average_distance --order asc
  runboard rank --file data/2025.csv --category House
  runboard rank --file data/2025.csv --category Grade --value 9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, g, o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "roster CSV file")
	cmd.Flags().StringVarP(&o.unit, "unit", "u", "km", "display unit")
	cmd.Flags().StringVarP(&o.metric, "metric", "m", "total_distance", "metric id (see: runboard metrics)")
	cmd.Flags().StringVar(&o.order, "order", "", "asc|desc (default: metric's own order)")
	cmd.Flags().StringVarP(&o.category, "category", "c", "", "category column to rank or partition by")
	cmd.Flags().StringVar(&o.value, "value", "", "rank only the records of this category value")
	cmd.Flags().BoolVar(&o.within, "within", false, "rank records inside every category value")

	return cmd
}

func runRank(cmd *cobra.Command, g *globalOptions, o *rankOptions) error {
	p, err := newPrinter(cmd, g)
	if err != nil {
		return err
	}
	if (o.within || o.value != "") && o.category == "" {
		return fmt.Errorf("--within and --value require --category")
	}

	src, err := openLocal(cmd.Context(), g, o.file, o.unit)
	if err != nil {
		return err
	}

	switch {
	case o.within:
		boards, err := src.svc.WithinCategory(o.category, o.metric, o.order)
		if err != nil {
			return err
		}
		return p.boards(boards)

	case o.value != "":
		lb, err := src.svc.Members(o.category, o.value, o.metric, o.order)
		if err != nil {
			return err
		}
		return p.leaderboard(lb)

	case o.category != "":
		lb, err := src.svc.Categories(o.category, o.metric, o.order)
		if err != nil {
			return err
		}
		return p.leaderboard(lb)

	default:
		lb, err := src.svc.Individuals(o.metric, o.order)
		if err != nil {
			return err
		}
		return p.leaderboard(lb)
	}
}
