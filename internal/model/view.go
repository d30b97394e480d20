package model

// PlayerView is the redacted projection of a player that opponents (and bots)
// may see: revealed positions only, never the secret word
type PlayerView struct {
	ID            PlayerID `json:"id"`
	DisplayName   string   `json:"display_name"`
	IsBot         bool     `json:"is_bot"`
	HasWord       bool     `json:"has_word"`
	WordLength    int      `json:"word_length"` // padded length, 0 until committed
	Revealed      []string `json:"revealed"`    // "" hidden, BLANK, or letter
	MissedLetters []string `json:"missed_letters"`
	GuessedWords  []string `json:"guessed_words"`
	TotalScore    int      `json:"total_score"`
	IsEliminated  bool     `json:"is_eliminated"`
	TurnOrder     int      `json:"turn_order"`
}

// GameView is a read-only snapshot of a room for one viewer. The viewer's own
// secret word is included; everyone else's is redacted.
type GameView struct {
	RoomCode            RoomCode     `json:"room_code"`
	Status              GameStatus   `json:"status"`
	HostID              PlayerID     `json:"host_id"`
	RoundNumber         int          `json:"round_number"`
	CurrentTurnPlayerID PlayerID     `json:"current_turn_player_id,omitempty"`
	TurnDeadline        int64        `json:"turn_deadline,omitempty"`
	Players             []PlayerView `json:"players"`
	YourWord            string       `json:"your_word,omitempty"`
}

// ViewFor builds the projection of this game for the given viewer.
// turnDeadline may be zero when no turn timer is armed.
func (g *Game) ViewFor(viewer PlayerID, turnDeadline int64) *GameView {
	view := &GameView{
		RoomCode:            g.RoomCode,
		Status:              g.Status,
		HostID:              g.HostID,
		RoundNumber:         g.RoundNumber,
		CurrentTurnPlayerID: g.CurrentTurnPlayerID,
		TurnDeadline:        turnDeadline,
	}

	for _, p := range g.PlayersInTurnOrder() {
		pv := PlayerView{
			ID:            p.ID,
			DisplayName:   p.DisplayName,
			IsBot:         p.IsBot,
			HasWord:       p.HasCommittedWord(),
			WordLength:    len(p.PaddedWord),
			Revealed:      p.RevealedView(),
			MissedLetters: append([]string(nil), p.MissedLetters...),
			GuessedWords:  append([]string(nil), p.GuessedWords...),
			TotalScore:    p.TotalScore,
			IsEliminated:  p.IsEliminated,
			TurnOrder:     p.TurnOrder,
		}
		view.Players = append(view.Players, pv)

		if p.ID == viewer {
			view.YourWord = p.SecretWord
		}
	}

	return view
}
