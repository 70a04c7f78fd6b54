package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmehdipour/invoice-dashboard/cmd/worker"
	"github.com/spf13/cobra"
)

var cfgPath string

// rootCmd carries one context for every subcommand; it is cancelled on
// SIGINT/SIGTERM so long-running commands share the same shutdown path.
var rootCmd = &cobra.Command{
	Use:           "invoice-dashboard",
	Short:         "Invoice dashboard data service",
	Long:          "Serves dashboard reads (revenue, invoices, customers) over HTTP and keeps the store in sync with billing events.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invoice-dashboard:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file (optional, merged over defaults)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, worker.NewWorkerCmd())
}
