// Package command holds the motour CLI. Running the binary without a
// sub-command starts the API server.
//
//	./motour                      # same as "serve"
//	./motour serve [--migrate]
//	./motour migrate
//	./motour seed-admin [--username u --password p --role superadmin]
//	./motour reconcile-ratings
package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motour",
	Short: "Motour travel API",
	Long: `Motour travel API: destinations, ratings, saved destinations,
rider profiles and vehicles, plus the admin dashboard endpoints.
Configuration is read from .env and the environment.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the most specific command for the CLI arguments and exits
// non-zero on failure. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
