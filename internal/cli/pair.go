package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurlingham/leaguesync/internal/model"
)

func newPairCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "pair [TIMESLOT_ID]",
		Short: "Pair available players into a match, locking the timeslot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				paired, err := app.ScheduleService.PairAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Paired %d timeslot(s)\n", len(paired))
				for _, m := range paired {
					printMatch(m)
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("provide a TIMESLOT_ID or --all")
			}
			match, err := app.ScheduleService.PairTimeslot(cmd.Context(), model.TimeslotID(args[0]))
			if err != nil {
				return err
			}
			printMatch(*match)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Pair every timeslot with enough available players")
	return cmd
}

func newUnpairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpair TIMESLOT_ID",
		Short: "Delete a timeslot's match, unlocking it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ScheduleService.UnpairTimeslot(cmd.Context(), model.TimeslotID(args[0])); err != nil {
				return err
			}
			fmt.Println("Unpaired")
			return nil
		},
	}
}

func printMatch(m model.Match) {
	fmt.Printf("Match %s: %s vs %s (timeslot %s)\n", m.ID, m.Player1ID, m.Player2ID, m.TimeslotID)
}
