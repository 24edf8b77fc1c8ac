package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage the league roster",
	}
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerListCmd())
	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player and print their personal link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.RosterService.CreatePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s\n", player.Name)
			fmt.Printf("Personal link: %s\n", personalLink(player.ShareToken))
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players with their personal links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := app.RosterService.Players(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(players, func(i, j int) bool {
				return players[i].Name < players[j].Name
			})
			for _, p := range players {
				fmt.Printf("%-24s %s\n", p.Name, personalLink(p.ShareToken))
			}
			return nil
		},
	}
}
