package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RoomResult:
		o.printRoom(v)
	case BotResult:
		o.printBot(v)
	case GuessResult:
		o.printGuess(v)
	case TurnRecordsResult:
		o.printTurnRecords(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerView response type (matches API)
type PlayerView struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name"`
	IsBot         bool     `json:"is_bot"`
	HasWord       bool     `json:"has_word"`
	WordLength    int      `json:"word_length"`
	Revealed      []string `json:"revealed"`
	MissedLetters []string `json:"missed_letters"`
	GuessedWords  []string `json:"guessed_words"`
	TotalScore    int      `json:"total_score"`
	IsEliminated  bool     `json:"is_eliminated"`
	TurnOrder     int      `json:"turn_order"`
}

// GameView response type
type GameView struct {
	RoomCode            string       `json:"room_code"`
	Status              string       `json:"status"`
	HostID              string       `json:"host_id"`
	RoundNumber         int          `json:"round_number"`
	CurrentTurnPlayerID string       `json:"current_turn_player_id,omitempty"`
	TurnDeadline        int64        `json:"turn_deadline,omitempty"`
	Players             []PlayerView `json:"players"`
	YourWord            string       `json:"your_word,omitempty"`
}

// RoomResult response type
type RoomResult struct {
	PlayerID string    `json:"player_id,omitempty"`
	Game     *GameView `json:"game"`
}

// BotResult response type
type BotResult struct {
	BotID       string `json:"bot_id"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
}

// SelectionView response type
type SelectionView struct {
	Kind       string `json:"kind"`
	DeciderID  string `json:"decider_id"`
	TargetID   string `json:"target_id"`
	Letter     string `json:"letter,omitempty"`
	Candidates []int  `json:"candidates,omitempty"`
	Deadline   int64  `json:"deadline"`
}

// PlayerRank response type
type PlayerRank struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// GuessOutcome response type
type GuessOutcome struct {
	ActorID           string       `json:"actor_id"`
	TargetID          string       `json:"target_id"`
	Letter            string       `json:"letter,omitempty"`
	Word              string       `json:"word,omitempty"`
	IsCorrect         bool         `json:"is_correct"`
	PositionsRevealed []int        `json:"positions_revealed,omitempty"`
	Points            int          `json:"points"`
	WordCompleted     bool         `json:"word_completed"`
	GameOver          bool         `json:"game_over"`
	FinalRanking      []PlayerRank `json:"final_ranking,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Result    *GuessOutcome  `json:"result,omitempty"`
	Selection *SelectionView `json:"selection,omitempty"`
	Card      string         `json:"card,omitempty"`
}

// TurnRecord response type
type TurnRecord struct {
	TurnNumber    int    `json:"turn_number"`
	ActorID       string `json:"actor_id"`
	TargetID      string `json:"target_id"`
	GuessedLetter string `json:"guessed_letter,omitempty"`
	GuessedWord   string `json:"guessed_word,omitempty"`
	IsCorrect     bool   `json:"is_correct"`
	PointsScored  int    `json:"points_scored"`
}

// TurnRecordsResult response type
type TurnRecordsResult struct {
	Records []TurnRecord `json:"records"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r RoomResult) {
	if r.PlayerID != "" {
		fmt.Printf("You are: %s\n", r.PlayerID)
	}
	g := r.Game
	if g == nil {
		return
	}
	fmt.Printf("Room: %s\n", g.RoomCode)
	fmt.Printf("Status: %s\n", g.Status)
	if g.RoundNumber > 0 {
		fmt.Printf("Round: %d\n", g.RoundNumber)
	}
	if g.CurrentTurnPlayerID != "" {
		fmt.Printf("Current turn: %s\n", g.CurrentTurnPlayerID)
	}
	if g.TurnDeadline > 0 {
		deadline := time.UnixMilli(g.TurnDeadline)
		fmt.Printf("Turn deadline: %s\n", deadline.Format(time.RFC3339))
	}
	if g.YourWord != "" {
		fmt.Printf("Your word: %s\n", g.YourWord)
	}
	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		o.printPlayerLine(p, p.ID == g.HostID)
	}
}

func (o *Output) printPlayerLine(p PlayerView, isHost bool) {
	tags := []string{}
	if isHost {
		tags = append(tags, "host")
	}
	if p.IsBot {
		tags = append(tags, "bot")
	}
	if p.IsEliminated {
		tags = append(tags, "eliminated")
	}
	tagStr := ""
	if len(tags) > 0 {
		tagStr = " [" + strings.Join(tags, ", ") + "]"
	}
	fmt.Printf("  - %s (%s)%s - %d pts\n", p.DisplayName, p.ID, tagStr, p.TotalScore)

	if p.WordLength > 0 {
		fmt.Printf("    board: %s\n", formatBoard(p.Revealed))
	}
	if len(p.MissedLetters) > 0 {
		fmt.Printf("    missed: %s\n", strings.Join(p.MissedLetters, " "))
	}
	if len(p.GuessedWords) > 0 {
		fmt.Printf("    wrong words: %s\n", strings.Join(p.GuessedWords, ", "))
	}
}

// formatBoard renders revealed positions: "." hidden, "#" blank, else letter
func formatBoard(revealed []string) string {
	cells := make([]string, len(revealed))
	for i, r := range revealed {
		switch r {
		case "":
			cells[i] = "."
		case "BLANK":
			cells[i] = "#"
		default:
			cells[i] = r
		}
	}
	return strings.Join(cells, " ")
}

func (o *Output) printBot(b BotResult) {
	fmt.Printf("Bot added: %s (%s)\n", b.DisplayName, b.BotID)
	fmt.Printf("Strategy: %s\n", b.Strategy)
}

func (o *Output) printGuess(g GuessResult) {
	if g.Card != "" {
		fmt.Printf("Card drawn: %s\n", g.Card)
	}
	if g.Result != nil {
		o.printOutcome(*g.Result)
	}
	if g.Selection != nil {
		o.printSelection(*g.Selection)
	}
	if g.Result == nil && g.Selection == nil {
		fmt.Println("No effect")
	}
}

func (o *Output) printOutcome(r GuessOutcome) {
	verdict := "miss"
	if r.IsCorrect {
		verdict = "hit"
	}
	what := r.Letter
	if r.Word != "" {
		what = r.Word
	}
	fmt.Printf("%s on %s against %s", strings.ToUpper(verdict), what, r.TargetID)
	if r.Points > 0 {
		fmt.Printf(" (+%d pts)", r.Points)
	}
	fmt.Println()

	if len(r.PositionsRevealed) > 0 {
		positions := make([]string, len(r.PositionsRevealed))
		for i, p := range r.PositionsRevealed {
			positions[i] = fmt.Sprintf("%d", p)
		}
		fmt.Printf("Revealed positions: %s\n", strings.Join(positions, ", "))
	}
	if r.WordCompleted {
		fmt.Println("Word fully revealed!")
	}
	if r.GameOver {
		fmt.Println("\nGame over!")
		for _, rank := range r.FinalRanking {
			fmt.Printf("  %d. %s - %d pts\n", rank.Rank, rank.PlayerID, rank.Score)
		}
	}
}

func (o *Output) printSelection(s SelectionView) {
	fmt.Printf("Selection pending: %s\n", s.Kind)
	fmt.Printf("Decider: %s\n", s.DeciderID)
	if len(s.Candidates) > 0 {
		positions := make([]string, len(s.Candidates))
		for i, c := range s.Candidates {
			positions[i] = fmt.Sprintf("%d", c)
		}
		fmt.Printf("Candidates: %s\n", strings.Join(positions, ", "))
	}
	if s.Deadline > 0 {
		fmt.Printf("Deadline: %s\n", time.UnixMilli(s.Deadline).Format(time.RFC3339))
	}
}

func (o *Output) printTurnRecords(t TurnRecordsResult) {
	fmt.Printf("Turns (%d):\n", len(t.Records))
	for _, r := range t.Records {
		what := r.GuessedLetter
		if r.GuessedWord != "" {
			what = r.GuessedWord
		}
		verdict := "miss"
		if r.IsCorrect {
			verdict = "hit"
		}
		fmt.Printf("  %3d. %s -> %s: %s (%s, %d pts)\n",
			r.TurnNumber, r.ActorID, r.TargetID, what, verdict, r.PointsScored)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
