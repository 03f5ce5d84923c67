package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerAuthCmd())
	cmd.AddCommand(newPlayerOptionsCmd())
	cmd.AddCommand(newPlayerSelectCmd())

	return cmd
}

func newPlayerAuthCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "auth <game> <name> <password>",
		Short: "Authenticate as a player (sets the password on first use)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, name, password := args[0], args[1], args[2]

			req := map[string]string{"password": password}
			var result AuthResult
			if err := client.Post(fmt.Sprintf("/api/game/%s/player/%s/auth", game, name), req, &result); err != nil {
				return err
			}

			if save {
				if err := cfg.SaveToken(result.Token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}
			client.SetToken(result.Token)

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", true, "Save the token to the token file")

	return cmd
}

func newPlayerOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options <game> <name>",
		Short: "Show your dealt hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerOptions
			if err := client.Get(fmt.Sprintf("/api/game/%s/player/%s/options", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <game> <name> <faction-id>",
		Short: "Select a faction from your hand",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"faction_id": args[2]}
			var result SelectResult
			if err := client.Post(fmt.Sprintf("/api/game/%s/player/%s/select", args[0], args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
