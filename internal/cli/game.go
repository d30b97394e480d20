package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game turn commands",
	}

	cmd.AddCommand(newGuessLetterCmd())
	cmd.AddCommand(newGuessWordCmd())
	cmd.AddCommand(newSelectCmd())
	cmd.AddCommand(newWindowCmd())

	return cmd
}

func newGuessLetterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess-letter <code> <target-id> <letter>",
		Short: "Guess a letter (or BLANK) in a target's word",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"target_id": args[1],
				"letter":    args[2],
			}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/guesses/letter", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuessWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess-word <code> <target-id> <word>",
		Short: "Guess a target's full word outright",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"target_id": args[1],
				"word":      args[2],
			}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/guesses/word", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <code> <kind> <position>",
		Short: "Resolve a pending selection you must decide",
		Long: `Resolve a pending selection addressed to you.

Kinds:
  duplicate_letter  pick which matching position of your word is revealed
  blank             pick which matching blank position is revealed
  self_expose       pick which of your own hidden positions to expose`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}

			req := map[string]any{
				"kind":     args[1],
				"position": position,
			}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/selections", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Timed word-guess window commands",
	}

	openCmd := &cobra.Command{
		Use:   "open <code> <target-id>",
		Short: "Open a timed full-word guess window against a target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target_id": args[1]}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/word-window", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	guessCmd := &cobra.Command{
		Use:   "guess <code> <word>",
		Short: "Submit the word for your open window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"word": args[1]}

			var result GuessResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/word-window/guess", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <code>",
		Short: "Close your open window without guessing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/word-window", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Window closed")
			return nil
		},
	}

	cmd.AddCommand(openCmd)
	cmd.AddCommand(guessCmd)
	cmd.AddCommand(cancelCmd)
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
