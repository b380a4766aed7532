package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the queries defined in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.runner.Catalog()
			if err != nil {
				return err
			}
			for _, name := range catalog.Names() {
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}
}
