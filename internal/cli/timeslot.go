package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTimeslotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeslot",
		Short: "Manage the season calendar",
	}
	cmd.AddCommand(newTimeslotAddCmd())
	cmd.AddCommand(newTimeslotListCmd())
	return cmd
}

func newTimeslotAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add DATE PERIOD",
		Short: "Add a timeslot (DATE is YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeslot, err := app.RosterService.CreateTimeslot(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s %s (%s)\n", timeslot.SlotDate, timeslot.Period, timeslot.ID)
			return nil
		},
	}
}

func newTimeslotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List timeslots in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeslots, err := app.RosterService.Timeslots(cmd.Context())
			if err != nil {
				return err
			}
			for _, ts := range timeslots {
				fmt.Printf("%s  %-12s %s\n", ts.SlotDate, ts.Period, ts.ID)
			}
			return nil
		},
	}
}
