package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomBotCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomWordCmd())
	cmd.AddCommand(newRoomAbortCmd())
	cmd.AddCommand(newRoomTurnsCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var name string
	var turnTimer int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"display_name": name}
			if turnTimer > 0 {
				req["turn_timer_seconds"] = turnTimer
			}

			var result RoomResult
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			if result.PlayerID != "" {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return fmt.Errorf("failed to save identity: %w", err)
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name (required)")
	cmd.Flags().IntVar(&turnTimer, "turn-timer", 0, "Turn timer in seconds (default: server default)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get room state as seen by you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"display_name": name}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			if result.PlayerID != "" {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return fmt.Errorf("failed to save identity: %w", err)
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Bot management commands",
	}

	addCmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a bot to the room (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, _ := cmd.Flags().GetString("strategy")
			req := map[string]string{"strategy": strategy}

			var result BotResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/bots", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	addCmd.Flags().String("strategy", "greedy", "Bot strategy: greedy, random")

	removeCmd := &cobra.Command{
		Use:   "remove <code> <bot-id>",
		Short: "Remove a bot from the room (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/bots/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Bot removed")
			return nil
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	return cmd
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start word selection (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomWordCmd() *cobra.Command {
	var front, back int

	cmd := &cobra.Command{
		Use:   "word <code> <word>",
		Short: "Commit your secret word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"word":          args[1],
				"front_padding": front,
				"back_padding":  back,
			}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/word", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&front, "front", 0, "Blank positions before the word")
	cmd.Flags().IntVar(&back, "back", 0, "Blank positions after the word")

	return cmd
}

func newRoomAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abort <code>",
		Short: "Abort the game and delete the room (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Room aborted")
			return nil
		},
	}
}

func newRoomTurnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turns <code>",
		Short: "Show the room's turn history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TurnRecordsResult
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/turns", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
