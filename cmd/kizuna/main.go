// Package main provides the entry point for the kizuna CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "kizuna",
		Short:   "A personal relationship journal with semantic memo search",
		Version: version,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newRelateCmd(),
		newUnrelateCmd(),
		newRelationsCmd(),
		newLogCmd(),
		newTimelineCmd(),
		newAskCmd(),
		newQuestionsCmd(),
		newHistoryCmd(),
		newProfileCmd(),
		newGraphCmd(),
		newSearchCmd(),
		newIndexCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
