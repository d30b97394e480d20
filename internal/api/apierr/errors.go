package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jsherman999/probe-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeGameNotFound          = "GAME_NOT_FOUND"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeNotHost               = "NOT_HOST"
	CodeAlreadyInRoom         = "ALREADY_IN_ROOM"
	CodeNotInRoom             = "NOT_IN_ROOM"
	CodeRoomNotJoinable       = "ROOM_NOT_JOINABLE"
	CodeInsufficientPlayers   = "INSUFFICIENT_PLAYERS"
	CodeNotBot                = "NOT_BOT"
	CodeUnknownStrategy       = "UNKNOWN_STRATEGY"
	CodeInvalidWord           = "INVALID_WORD"
	CodeInvalidPadding        = "INVALID_PADDING"
	CodeWordAlreadyCommitted  = "WORD_ALREADY_COMMITTED"
	CodeNotSelectingWords     = "NOT_SELECTING_WORDS"
	CodeWordNotInDictionary   = "WORD_NOT_IN_DICTIONARY"
	CodeGameNotActive         = "GAME_NOT_ACTIVE"
	CodeGameComplete          = "GAME_COMPLETE"
	CodeNotYourTurn           = "NOT_YOUR_TURN"
	CodeInvalidTarget         = "INVALID_TARGET"
	CodeTargetEliminated      = "TARGET_ELIMINATED"
	CodeInvalidLetter         = "INVALID_LETTER"
	CodeWordAlreadyGuessed    = "WORD_ALREADY_GUESSED"
	CodeNoPendingSelection    = "NO_PENDING_SELECTION"
	CodeInvalidPosition       = "INVALID_POSITION"
	CodeSelectionPending      = "SELECTION_PENDING"
	CodeDictionaryUnavailable = "DICTIONARY_UNAVAILABLE"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrAlreadyInRoom):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRoom, "Already in this room"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodeNotInRoom, "Not in this room"}}
	case errors.Is(err, model.ErrRoomNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotJoinable, "Room is full or the game already started"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotBot):
		return &httpError{http.StatusBadRequest, APIError{CodeNotBot, "Player is not a bot"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown bot strategy"}}
	case errors.Is(err, model.ErrInvalidWord):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWord, "Word must be 4-12 letters A-Z"}}
	case errors.Is(err, model.ErrInvalidPadding):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPadding, "Padding must be non-negative and fit the board"}}
	case errors.Is(err, model.ErrWordAlreadyCommitted):
		return &httpError{http.StatusConflict, APIError{CodeWordAlreadyCommitted, "Word already committed"}}
	case errors.Is(err, model.ErrNotSelectingWords):
		return &httpError{http.StatusConflict, APIError{CodeNotSelectingWords, "Room is not selecting words"}}
	case errors.Is(err, model.ErrWordNotInDictionary):
		return &httpError{http.StatusBadRequest, APIError{CodeWordNotInDictionary, "Word is not in the dictionary"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "Invalid guess target"}}
	case errors.Is(err, model.ErrTargetEliminated):
		return &httpError{http.StatusConflict, APIError{CodeTargetEliminated, "Target is already eliminated"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z or BLANK"}}
	case errors.Is(err, model.ErrWordAlreadyGuessed):
		return &httpError{http.StatusConflict, APIError{CodeWordAlreadyGuessed, "Word was already guessed against this player"}}
	case errors.Is(err, model.ErrNoPendingSelection):
		return &httpError{http.StatusNotFound, APIError{CodeNoPendingSelection, "No pending selection"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position is not a valid choice"}}
	case errors.Is(err, model.ErrSelectionPending):
		return &httpError{http.StatusConflict, APIError{CodeSelectionPending, "A pending selection must resolve first"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryUnavailable, "Dictionary is not loaded"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
