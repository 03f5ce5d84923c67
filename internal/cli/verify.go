package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faircommit/factiondraft/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "verify <game>",
		Short: "Audit a revealed game's commitments",
		Long: `verify fetches a revealed game's transcript and recomputes every
commitment locally. The check needs nothing from the server beyond the
reveal payload itself, so a tampered transcript cannot pass.

With --file the transcript is read from a saved JSON reveal instead of
the server.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reveal verify.Reveal

			switch {
			case fromFile != "":
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("failed to read transcript: %w", err)
				}
				if err := json.Unmarshal(data, &reveal); err != nil {
					return fmt.Errorf("failed to parse transcript: %w", err)
				}
			case len(args) == 1:
				if err := client.Get(fmt.Sprintf("/api/game/%s/reveal", args[0]), &reveal); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either a game ID or --file is required")
			}

			report := verify.Check(reveal)

			out := NewOutput(cfg.Output)
			out.Print(report)

			if !report.Valid {
				return fmt.Errorf("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Read the reveal transcript from a JSON file")

	return cmd
}
