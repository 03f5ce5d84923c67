package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faircommit/factiondraft/internal/verify"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameStatusCmd())
	cmd.AddCommand(newGameRevealCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameMineCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var factionsPerPlayer int
	var gameID string

	cmd := &cobra.Command{
		Use:   "create <player>...",
		Short: "Create a new game and deal hands",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"players":             args,
				"factions_per_player": factionsPerPlayer,
			}
			if gameID != "" {
				req["game_id"] = gameID
			}

			var result CreateResult
			if err := client.Post("/api/game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&factionsPerPlayer, "factions", "f", 3, "Factions dealt to each player (3 or 4)")
	cmd.Flags().StringVar(&gameID, "id", "", "Custom game ID")

	return cmd
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <game>",
		Short: "Show the public state of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameStatus
			if err := client.Get(fmt.Sprintf("/api/game/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <game>",
		Short: "Fetch the full reveal of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result verify.Reveal
			if err := client.Get(fmt.Sprintf("/api/game/%s/reveal", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game>",
		Short: "Delete a game you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/game/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGameMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List games you created",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameSummary
			if err := client.Get("/api/games/mine", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
