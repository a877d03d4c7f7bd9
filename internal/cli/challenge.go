package cli

import (
	"github.com/spf13/cobra"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Direct challenge commands",
	}

	cmd.AddCommand(newChallengeCreateCmd())
	cmd.AddCommand(newChallengeGetCmd())
	cmd.AddCommand(newChallengeAcceptCmd())
	cmd.AddCommand(newChallengeRejectCmd())

	return cmd
}

func newChallengeCreateCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Challenge another player to a duel",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": playerID}
			var result Challenge

			if err := client.Post("/api/v1/challenges", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player id to challenge (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newChallengeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <challenge-id>",
		Short: "Show a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Get("/api/v1/challenges/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <challenge-id>",
		Short: "Accept a challenge and start the duel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/challenges/"+args[0]+"/accept", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <challenge-id>",
		Short: "Reject or cancel a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Post("/api/v1/challenges/"+args[0]+"/reject", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
