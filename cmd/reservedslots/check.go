package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Borislavv/go-reserved-slots/internal/admission"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decide a single connection attempt",
		RunE:  runCheck,
	}
	cmd.Flags().Int("max", 0, "Maximum number of slots")
	_ = cmd.MarkFlagRequired("max")
	cmd.Flags().Int("online", 0, "Currently occupied slots")
	_ = cmd.MarkFlagRequired("online")
	cmd.Flags().StringSliceP("grant", "g", nil, "Capability held by the connecting principal (repeatable)")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	maxSlots, _ := cmd.Flags().GetInt("max")
	online, _ := cmd.Flags().GetInt("online")
	grants, _ := cmd.Flags().GetStringSlice("grant")

	if maxSlots < 0 || online < 0 {
		return fmt.Errorf("max and online must be non-negative, got max=%d online=%d", maxSlots, online)
	}

	slots, err := loadSlots(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = slots.Close() }()

	d := slots.OnConnect(admission.NewGrants(grants...), maxSlots, online)

	verdict := "allowed"
	if !d.Allowed {
		verdict = "rejected"
	}
	cmd.Printf("%s (%s), remaining=%d\n", verdict, d.Reason, d.Remaining)
	if d.Capability != "" {
		cmd.Printf("required capability: %s\n", d.Capability)
	}
	if !d.Allowed {
		cmd.Printf("message: %s\n", d.Message)
	}
	cmd.Printf("advertised max: %d\n", slots.AdvertisedMax(online, maxSlots))
	return nil
}
