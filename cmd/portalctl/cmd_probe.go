package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/protolab/prototype-portal/internal/bootstrap"
	"github.com/protolab/prototype-portal/internal/store"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run SELECT 1 against the configured real store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		exec, pool := bootstrap.OpenExecutor(cmd.Context(), cfg.Store, logger)
		if pool != nil {
			defer pool.Close()
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()
		start := time.Now()
		if err := store.Probe(ctx, exec); err != nil {
			return fmt.Errorf("probe %s store: %w", cfg.Store.Driver, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s store ok (%s)\n", cfg.Store.Driver, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 10*time.Second, "probe timeout")
}
