package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/ranking"
)

func newMetricsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List rankable metrics and their default order",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd, g)
			if err != nil {
				return err
			}
			board, err := boardconfig.Load(g.boardFile)
			if err != nil {
				return err
			}
			return p.metrics(ranking.NewRegistry(board.Thresholds.Ranking).Definitions())
		},
	}
}
