package cli

import (
	"fmt"

	"github.com/amine-amaach/dbstats/services"
	"github.com/amine-amaach/dbstats/services/models"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/spf13/cobra"
)

func newSummarizeCommand(a *app) *cobra.Command {
	var csvPath string
	var noSave bool
	cmd := &cobra.Command{
		Use:   "summarize [QUERY]",
		Short: "Compute descriptive statistics of a query result or CSV file",
		Long: `Summarize computes, for every numeric column, the share of missing values,
max, min, mean, median, sample variance, the 0.1/0.9 quantiles and the first and
third quartiles; for every other column the share of missing values, the number
of distinct values and the mode (first encountered value on ties).

The dataset is either the result of a catalogued QUERY (also saved as CSV) or an
existing CSV file given with --csv. Both summaries are written next to the
results as <name>_numeric_summary.csv and <name>_categorical_summary.csv.

Examples:
  dbstats summarize active_users
  dbstats summarize --csv output_data/active_users.csv`,
		Args: func(cmd *cobra.Command, args []string) error {
			if csvPath != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var ds *models.Dataset
			var err error
			if csvPath != "" {
				ds, err = a.datasets.Read(csvPath)
			} else {
				ctx, cancel := a.withTimeout(cmd.Context())
				defer cancel()
				ds, err = a.runner.Run(ctx, a.logger, args[0], a.cfg.DBURL)
			}
			if err != nil {
				return err
			}

			numeric := a.summary.Numeric(ds)
			categorical := a.summary.Categorical(ds)
			numericDs := numeric.Dataset(ds.Name() + "_numeric_summary")
			categoricalDs := categorical.Dataset(ds.Name() + "_categorical_summary")

			fmt.Fprintf(a.out, "%s (%d rows)\n\nNumeric columns\n%s\n\nCategorical columns\n%s\n",
				ds.Name(), ds.Len(), renderDataset(numericDs, 0), renderDataset(categoricalDs, 0))

			if !noSave {
				for _, s := range []*models.Dataset{numericDs, categoricalDs} {
					path := services.OutputPath(a.cfg.OutputDir, s.Name())
					if err := a.datasets.Write(path, s); err != nil {
						return err
					}
					a.logger.Info(utils.Colorize(fmt.Sprintf("Summary saved to %s 💾", path), utils.Cyan))
				}
			}

			if a.cfg.MQTTEnabled {
				return a.publish(cmd, ds.Name(), numeric, categorical)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "summarize this CSV file instead of running a query")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the summary CSV files")
	return cmd
}

func (a *app) publish(cmd *cobra.Command, dataset string, numeric models.NumericSummaryTable, categorical models.CategoricalSummaryTable) error {
	ctx, cancel := a.withTimeout(cmd.Context())
	defer cancel()

	cm, stop, err := a.mqtt.Connect(ctx, a.logger, a.cfg)
	if err != nil {
		a.logger.Errorf("MQTT connection failed ❌ %v", err)
		return err
	}
	defer a.mqtt.Close(ctx, cm, stop, a.logger)

	payloads := a.mqtt.BuildSummaryPayloads(a.cfg.RootTopic, dataset, numeric, categorical, a.logger)
	if failed := a.mqtt.Publish(ctx, cm, a.logger, payloads, a.cfg.Qos, a.cfg.Retain); failed > 0 {
		return fmt.Errorf("%d of %d summary payloads were not published", failed, len(payloads))
	}
	return nil
}
