package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game commands",
	}

	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameForfeitCmd())
	cmd.AddCommand(newGameRecordCmd())

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show the current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <game-id> <word>",
		Short: "Submit a guess",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := strings.ToUpper(args[1])
			req := map[string]string{"word": word}
			var result GuessResult

			if err := client.Post("/api/v1/games/"+args[0]+"/guesses", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameForfeitCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "forfeit <game-id>",
		Short: "Concede the duel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("pass --yes to confirm forfeiting the game")
			}

			var result GuessResult
			if err := client.Post("/api/v1/games/"+args[0]+"/forfeit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm forfeit")

	return cmd
}

func newGameRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <game-id>",
		Short: "Show the persisted record of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameRecord

			if err := client.Get("/api/v1/games/"+args[0]+"/record", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
