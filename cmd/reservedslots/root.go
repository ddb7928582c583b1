package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	reservedslots "github.com/Borislavv/go-reserved-slots"
	"github.com/Borislavv/go-reserved-slots/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reservedslots",
		Short:         "Inspect reserved-slots decisions",
		Long:          `Evaluate how a reserved-slots configuration treats a connection attempt at a given occupancy.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringP("config", "c", "config.yml", "Path to the reserved-slots configuration")

	root.AddCommand(newCheckCmd(), newTiersCmd())
	return root
}

// loadSlots reads the configuration named by --config. Reloading is turned off:
// the commands evaluate one snapshot and exit.
func loadSlots(cmd *cobra.Command) (*reservedslots.Slots, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.Reload = nil
	cfg.Telemetry = nil

	slog.Debug("configuration loaded",
		"path", path,
		"reserved_slots", cfg.ReservedSlots.Len(),
		"custom_messages", cfg.CustomMessages.Len(),
	)
	return reservedslots.New(context.Background(), cfg, slog.Default()), nil
}
