package main

import (
	"github.com/spf13/cobra"

	"github.com/Borislavv/go-reserved-slots/internal/threshold"
)

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the parsed reservation and message tiers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := loadSlots(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = slots.Close() }()

			capabilities, messages := slots.Tables()
			printTiers(cmd, "reserved-slots", capabilities)
			printTiers(cmd, "custom-messages", messages)
			cmd.Printf("default message: %s\n", slots.DefaultMessage())
			return nil
		},
	}
}

func printTiers(cmd *cobra.Command, name string, table *threshold.Table) {
	cmd.Printf("%s (%d):\n", name, table.Len())
	for _, tier := range table.Tiers() {
		cmd.Printf("  <= %d: %s\n", tier.Threshold, tier.Payload)
	}
}
