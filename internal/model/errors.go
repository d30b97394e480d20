package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrNotHost             = errors.New("player is not the host")
	ErrAlreadyInRoom       = errors.New("player is already in the room")
	ErrNotInRoom           = errors.New("player is not in the room")
	ErrRoomNotJoinable     = errors.New("room is not accepting players")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrNotBot              = errors.New("player is not a bot")
	ErrUnknownStrategy     = errors.New("unknown bot strategy")

	// Word commitment errors
	ErrInvalidWord          = errors.New("word must be 4-12 uppercase letters")
	ErrInvalidPadding       = errors.New("padded word exceeds maximum length")
	ErrWordAlreadyCommitted = errors.New("word already committed")
	ErrNotSelectingWords    = errors.New("game is not in word selection")
	ErrWordNotInDictionary  = errors.New("word not in dictionary")

	// Guess errors
	ErrGameNotActive      = errors.New("game is not active")
	ErrGameComplete       = errors.New("game is already complete")
	ErrNotPlayerTurn      = errors.New("not this player's turn")
	ErrInvalidTarget      = errors.New("invalid guess target")
	ErrTargetEliminated   = errors.New("target is already eliminated")
	ErrInvalidLetter      = errors.New("invalid letter")
	ErrWordAlreadyGuessed = errors.New("word was already guessed against this player")

	// Selection errors
	ErrNoPendingSelection = errors.New("no pending selection")
	ErrInvalidPosition    = errors.New("position is not a valid candidate")
	ErrSelectionPending   = errors.New("a pending selection must resolve first")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
