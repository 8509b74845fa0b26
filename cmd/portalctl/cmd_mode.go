package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protolab/prototype-portal/internal/bootstrap"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change the persisted data mode",
}

var modeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the persisted data mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, closeFn, err := openMode(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		fmt.Fprintln(cmd.OutOrStdout(), state.Mode())
		return nil
	},
}

var modeSetCmd = &cobra.Command{
	Use:       "set <mock|real>",
	Short:     "Persist a new data mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ModeMock), string(domain.ModeReal)},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, ok := domain.ParseDataMode(args[0])
		if !ok {
			return fmt.Errorf("unknown data mode %q, want mock or real", args[0])
		}
		state, closeFn, err := openMode(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		if err := state.Set(cmd.Context(), m); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), state.Mode())
		return nil
	},
}

func init() {
	modeCmd.AddCommand(modeGetCmd, modeSetCmd)
}

func openMode(cmd *cobra.Command) (*datamode.State, func(), error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR is not set, the mode only lives for this command")
	}
	st, client := bootstrap.OpenModeStore(cmd.Context(), cfg.Redis, logger)
	closeFn := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return datamode.Restore(cmd.Context(), st, logger), closeFn, nil
}
