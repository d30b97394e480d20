package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jsherman999/probe-go/internal/api/apierr"
	"github.com/jsherman999/probe-go/internal/model"
)

type contextKey string

const playerIDContextKey contextKey = "player_id"

// PlayerIDHeader carries the caller's player identity. Identity management
// is external; the server trusts the ID issued when the player joined.
const PlayerIDHeader = "X-Player-ID"

// Identity requires the caller to present their player ID and stores it in
// the request context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			playerID := strings.TrimSpace(r.Header.Get(PlayerIDHeader))
			if playerID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), playerIDContextKey, model.PlayerID(playerID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayerID returns the caller's player ID from the request context
func GetPlayerID(ctx context.Context) model.PlayerID {
	playerID, _ := ctx.Value(playerIDContextKey).(model.PlayerID)
	return playerID
}

// MustGetPlayerID returns the caller's player ID or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	playerID := GetPlayerID(ctx)
	if playerID == "" {
		panic("no player id in context - identity middleware not applied?")
	}
	return playerID
}
