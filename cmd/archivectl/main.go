// Package main provides archivectl, an operator CLI for archive commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "1.0.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd(&app{open: openArchiveService, openCounters: openViewCounters}).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "archivectl",
		Short:         "Archive and restore submissions, orders and proofs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.transport, "transport", "t", "", "Procedure transport (postgres or supabase); defaults to PROCEDURE_TRANSPORT")

	rootCmd.AddCommand(
		newArchiveCmd(a),
		newUnarchiveCmd(a),
		newResolveCmd(),
		newVerifyViewsCmd(a),
	)
	return rootCmd
}
