package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amine-amaach/dbstats/internal/cli"
	"github.com/amine-amaach/dbstats/utils"
	"github.com/spf13/afero"
)

func main() {
	// Cancel in-flight database work on Ctrl+C / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(afero.NewOsFs(), os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, utils.Colorize("Error: "+err.Error(), utils.Red))
		stop()
		os.Exit(1)
	}
}
