package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/views"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the season schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// One-shot snapshot assembled the same way the server's
			// reconciler does it
			timeslots, err := app.Storage.ListTimeslots(ctx)
			if err != nil {
				return err
			}
			availability, err := app.Storage.ListAvailability(ctx)
			if err != nil {
				return err
			}
			matches, err := app.Storage.ListMatches(ctx)
			if err != nil {
				return err
			}
			players, err := app.Storage.ListPlayers(ctx)
			if err != nil {
				return err
			}
			snap := &model.Snapshot{
				Players:      players,
				Timeslots:    timeslots,
				Availability: availability,
				Matches:      matches,
			}

			for _, group := range views.GroupedTimeslots(snap) {
				fmt.Println(group.Date)
				for _, ts := range group.Timeslots {
					fmt.Printf("  %-12s %s\n", ts.Period, describeSlot(snap, ts.ID))
				}
			}
			return nil
		},
	}
}

func describeSlot(snap *model.Snapshot, timeslotID model.TimeslotID) string {
	if match, ok := views.MatchForTimeslot(snap, timeslotID); ok {
		return fmt.Sprintf("MATCHED  %s vs %s", playerName(snap, match.Player1ID), playerName(snap, match.Player2ID))
	}

	available := 0
	for _, a := range snap.Availability {
		if a.TimeslotID == timeslotID {
			available++
		}
	}
	return fmt.Sprintf("open     %d available", available)
}

func playerName(snap *model.Snapshot, id model.PlayerID) string {
	if p, ok := snap.PlayerByID(id); ok {
		return p.Name
	}
	return string(id)
}
