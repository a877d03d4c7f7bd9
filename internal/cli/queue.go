package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Matchmaking queue commands",
	}

	cmd.AddCommand(newQueueJoinCmd())
	cmd.AddCommand(newQueueLeaveCmd())

	return cmd
}

func newQueueJoinCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking queue for a mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"mode": mode}
			var result QueueStatus

			if err := client.Post("/api/v1/queue", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "classic", "Game mode (classic, wordy, rush)")

	return cmd
}

func newQueueLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/queue"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the queue")
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the wins leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			path := "/api/v1/leaderboard"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of entries (default: server default)")

	return cmd
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List available game modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Mode

			if err := client.Get("/api/v1/modes", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
