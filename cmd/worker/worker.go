// Package worker holds the background commands. They share config loading,
// logger setup and metrics registration, and stop when the root context is
// cancelled.
package worker

import (
	"fmt"

	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmehdipour/invoice-dashboard/internal/logger"
	"github.com/jmehdipour/invoice-dashboard/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background workers",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(ingestCmd)

	return cmd
}

// setup loads the config named by the root --config flag and returns a
// logger scoped to the worker.
func setup(cmd *cobra.Command, name string) (config.Config, *zap.Logger, error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	metrics.MustRegister(prometheus.DefaultRegisterer)

	return cfg, logger.Init(cfg.Log.Level).Named(name), nil
}
