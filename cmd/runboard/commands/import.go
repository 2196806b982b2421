package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/ingest"
	"github.com/wonny/runboard/pkg/config"
	"github.com/wonny/runboard/pkg/database"
)

func newImportCmd(g *globalOptions) *cobra.Command {
	var file, year string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a CSV roster into the Postgres roster table",
		Long: `Validates a CSV roster and stores it as the rows of one year in the
table read by DATA_SOURCE=postgres (DATABASE_URL, DB_ROSTER_TABLE).
Rows previously stored for that year are replaced.

Example:
  runboard import --file data/2025.csv --year 2025`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || strings.TrimSpace(year) == "" {
				return fmt.Errorf("--file and --year are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required for import")
			}
			board, err := boardconfig.Load(g.boardFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			tbl, err := ingest.NewFileSource(file).Fetch(ctx, year)
			if err != nil {
				return err
			}
			// reject what the loader would reject
			if _, err := ingest.NewBuilder(board.Schema).Build(tbl, year, board.Units[0]); err != nil {
				return err
			}

			db, err := database.New(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			pg, err := ingest.NewPostgresSource(db.Pool, cfg.Database.Table)
			if err != nil {
				return err
			}
			if err := pg.EnsureTable(ctx); err != nil {
				return err
			}
			n, err := pg.Replace(ctx, year, tbl)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows (%d records) for %s\n", n, tbl.Len(), year)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "roster CSV file")
	cmd.Flags().StringVarP(&year, "year", "y", "", "dataset year")

	return cmd
}
