package cli

import (
	"fmt"
	"time"

	"github.com/amine-amaach/dbstats/services"
	"github.com/spf13/cobra"
)

func newSeedCommand(a *app) *cobra.Command {
	var (
		table        string
		generators   int
		perGenerator int
		dropRate     float64
		seed         int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with simulated power-generator readings",
		Long: `Seed (re)creates a table of simulated power-generator readings so the catalog
can be tried without a production database. Temperature, power and fuel use follow
each generator's load; a share of the measurements is dropped to leave NULLs.

Example:
  dbstats seed --db sqlite:///demo.db --generators 5 --readings 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case generators < 1:
				return fmt.Errorf("--generators must be at least 1, got %d", generators)
			case perGenerator < 1:
				return fmt.Errorf("--readings must be at least 1, got %d", perGenerator)
			case dropRate < 0 || dropRate > 1:
				return fmt.Errorf("--drop-rate must be within [0, 1], got %v", dropRate)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			svc := a.seeder(seed)
			start := time.Now().UTC().Truncate(time.Minute)
			readings := svc.Readings(generators, perGenerator, start, dropRate)
			if err := svc.Seed(ctx, a.logger, a.cfg.DBURL, table, readings); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %d rows\n", table, len(readings))
			return nil
		},
	}
	cmd.Flags().StringVarP(&table, "table", "t", services.DefaultSeedTable, "table to (re)create")
	cmd.Flags().IntVarP(&generators, "generators", "g", 3, "number of simulated generators")
	cmd.Flags().IntVarP(&perGenerator, "readings", "n", 100, "readings per generator")
	cmd.Flags().Float64Var(&dropRate, "drop-rate", 0.05, "probability of a missing measurement")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the simulated measurements (0 picks one)")
	return cmd
}
