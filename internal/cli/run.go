package cli

import (
	"fmt"

	"github.com/amine-amaach/dbstats/services"
	"github.com/spf13/cobra"
)

func newRunCommand(a *app) *cobra.Command {
	var preview int
	cmd := &cobra.Command{
		Use:   "run QUERY [QUERY...]",
		Short: "Execute catalogued queries and save each result as CSV",
		Long: `Run looks every QUERY up in the catalog, executes it against the configured
database and writes the result to <output>/<QUERY>.csv, replacing any previous file.

Examples:
  dbstats run active_users
  dbstats run --db sqlite:///shop.db orders refunds`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			for _, name := range args {
				ds, err := a.runner.Run(ctx, a.logger, name, a.cfg.DBURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: %d rows x %d columns -> %s\n",
					name, ds.Len(), ds.Width(), services.OutputPath(a.cfg.OutputDir, name))
				if preview > 0 {
					fmt.Fprintln(a.out, renderDataset(ds, preview))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&preview, "preview", "p", 0, "print the first N rows of each result")
	return cmd
}
