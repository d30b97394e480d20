package response

import "github.com/jsherman999/probe-go/internal/model"

// RoomResponse returns the caller's view of a room, plus the caller's
// issued player ID on create/join
type RoomResponse struct {
	PlayerID model.PlayerID  `json:"player_id,omitempty"`
	Game     *model.GameView `json:"game"`
}

// BotResponse returns the added bot
type BotResponse struct {
	BotID       model.PlayerID `json:"bot_id"`
	DisplayName string         `json:"display_name"`
	Strategy    string         `json:"strategy"`
}

// PendingSelectionView is the wire form of a pending selection
type PendingSelectionView struct {
	Kind       model.SelectionKind `json:"kind"`
	DeciderID  model.PlayerID      `json:"decider_id"`
	TargetID   model.PlayerID      `json:"target_id"`
	Letter     string              `json:"letter,omitempty"`
	Candidates []int               `json:"candidates,omitempty"`
	Deadline   int64               `json:"deadline"`
}

// GuessResponse returns the outcome of a guess: either an immediate result
// or a pending selection awaiting its decider
type GuessResponse struct {
	Result    *model.GuessResultPayload `json:"result,omitempty"`
	Selection *PendingSelectionView     `json:"selection,omitempty"`
	Card      model.TurnCardKind        `json:"card,omitempty"`
}

// TurnRecordsResponse returns a game's turn history
type TurnRecordsResponse struct {
	Records []*model.TurnRecord `json:"records"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status string `json:"status"`
}

// NewPendingSelectionView converts a pending selection for the wire
func NewPendingSelectionView(sel *model.PendingSelection) *PendingSelectionView {
	if sel == nil {
		return nil
	}
	return &PendingSelectionView{
		Kind:       sel.Kind,
		DeciderID:  sel.DeciderID,
		TargetID:   sel.TargetID,
		Letter:     sel.Letter,
		Candidates: append([]int(nil), sel.Candidates...),
		Deadline:   model.EpochMillis(sel.Deadline),
	}
}
