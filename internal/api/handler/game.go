package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jsherman999/probe-go/internal/api/middleware"
	"github.com/jsherman999/probe-go/internal/api/request"
	"github.com/jsherman999/probe-go/internal/api/response"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/services/game"
	"github.com/jsherman999/probe-go/internal/services/turn"
)

// GameHandler handles in-game turn endpoints
type GameHandler struct {
	turns *turn.Orchestrator
}

// NewGameHandler creates a new game handler
func NewGameHandler(turns *turn.Orchestrator) *GameHandler {
	return &GameHandler{turns: turns}
}

func guessResponse(outcome *game.Outcome) response.GuessResponse {
	resp := response.GuessResponse{Card: outcome.CardDrawn}
	resp.Result = outcome.Result
	resp.Selection = response.NewPendingSelectionView(outcome.Selection)
	return resp
}

// GuessLetter handles POST /api/v1/rooms/{code}/guesses/letter
func (h *GameHandler) GuessLetter(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.GuessLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.turns.GuessLetter(r.Context(), code, playerID, model.PlayerID(req.TargetID), req.Letter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

// GuessWord handles POST /api/v1/rooms/{code}/guesses/word
func (h *GameHandler) GuessWord(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.GuessWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.turns.GuessWord(r.Context(), code, playerID, model.PlayerID(req.TargetID), req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

// SubmitSelection handles POST /api/v1/rooms/{code}/selections
func (h *GameHandler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.SubmitSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	kind := model.SelectionKind(req.Kind)
	switch kind {
	case model.SelectionDuplicateLetter, model.SelectionBlank, model.SelectionSelfExpose:
	default:
		WriteError(w, NewInvalidRequestError("unknown selection kind"))
		return
	}

	outcome, err := h.turns.SubmitSelection(r.Context(), code, playerID, kind, req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	// A submission that lost the race against its timeout resolves to nothing
	if outcome == nil {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

// OpenWordWindow handles POST /api/v1/rooms/{code}/word-window
func (h *GameHandler) OpenWordWindow(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.OpenWordWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sel, err := h.turns.OpenWordGuessWindow(r.Context(), code, playerID, model.PlayerID(req.TargetID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GuessResponse{
		Selection: response.NewPendingSelectionView(sel),
	})
}

// SubmitWordWindowGuess handles POST /api/v1/rooms/{code}/word-window/guess
func (h *GameHandler) SubmitWordWindowGuess(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.WordWindowGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.turns.SubmitWordGuess(r.Context(), code, playerID, req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

// CancelWordWindow handles DELETE /api/v1/rooms/{code}/word-window
func (h *GameHandler) CancelWordWindow(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.turns.CancelWordGuessWindow(r.Context(), code, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
