package request

// CreateRoomRequest creates a new room with the caller as host
type CreateRoomRequest struct {
	DisplayName      string `json:"display_name"`
	TurnTimerSeconds int    `json:"turn_timer_seconds,omitempty"`
}

// JoinRoomRequest joins an existing room
type JoinRoomRequest struct {
	DisplayName string `json:"display_name"`
}

// AddBotRequest adds a bot player to a room
type AddBotRequest struct {
	Strategy string `json:"strategy"`
}

// CommitWordRequest locks in the caller's secret word and padding
type CommitWordRequest struct {
	Word         string `json:"word"`
	FrontPadding int    `json:"front_padding"`
	BackPadding  int    `json:"back_padding"`
}

// GuessLetterRequest guesses a letter (or "BLANK") in a target's word
type GuessLetterRequest struct {
	TargetID string `json:"target_id"`
	Letter   string `json:"letter"`
}

// GuessWordRequest guesses a target's full word
type GuessWordRequest struct {
	TargetID string `json:"target_id"`
	Word     string `json:"word"`
}

// SubmitSelectionRequest resolves a pending position selection
type SubmitSelectionRequest struct {
	Kind     string `json:"kind"`
	Position int    `json:"position"`
}

// OpenWordWindowRequest opens a timed full-word guess window
type OpenWordWindowRequest struct {
	TargetID string `json:"target_id"`
}

// WordWindowGuessRequest submits the word for an open window
type WordWindowGuessRequest struct {
	Word string `json:"word"`
}
