package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func turnGame(eliminated ...PlayerID) *Game {
	out := map[PlayerID]bool{}
	for _, id := range eliminated {
		out[id] = true
	}
	return &Game{
		Players: []*Player{
			{ID: "alice", TurnOrder: 0, IsEliminated: out["alice"]},
			{ID: "bob", TurnOrder: 1, IsEliminated: out["bob"]},
			{ID: "carol", TurnOrder: 2, IsEliminated: out["carol"]},
		},
	}
}

func TestNextActivePlayerAdvancesInOrder(t *testing.T) {
	g := turnGame()
	assert.Equal(t, PlayerID("bob"), g.NextActivePlayer("alice"))
	assert.Equal(t, PlayerID("carol"), g.NextActivePlayer("bob"))
	assert.Equal(t, PlayerID("alice"), g.NextActivePlayer("carol"))
}

func TestNextActivePlayerSkipsEliminated(t *testing.T) {
	g := turnGame("bob")
	assert.Equal(t, PlayerID("carol"), g.NextActivePlayer("alice"))
}

func TestNextActivePlayerSoleSurvivorWrapsToSelf(t *testing.T) {
	g := turnGame("alice", "carol")
	assert.Equal(t, PlayerID("bob"), g.NextActivePlayer("bob"))
}

func TestNextActivePlayerAllEliminated(t *testing.T) {
	g := turnGame("alice", "bob", "carol")
	assert.Equal(t, PlayerID(""), g.NextActivePlayer("alice"))
}

func TestActivePlayerCountAndLastActive(t *testing.T) {
	g := turnGame("alice", "carol")
	assert.Equal(t, 1, g.ActivePlayerCount())
	assert.Equal(t, PlayerID("bob"), g.LastActivePlayer().ID)

	g = turnGame()
	assert.Equal(t, 3, g.ActivePlayerCount())
	assert.Nil(t, g.LastActivePlayer())
}

func TestPlayersInTurnOrderSorts(t *testing.T) {
	g := &Game{
		Players: []*Player{
			{ID: "late", TurnOrder: 2},
			{ID: "early", TurnOrder: 0},
			{ID: "middle", TurnOrder: 1},
		},
	}
	ordered := g.PlayersInTurnOrder()
	assert.Equal(t, PlayerID("early"), ordered[0].ID)
	assert.Equal(t, PlayerID("middle"), ordered[1].ID)
	assert.Equal(t, PlayerID("late"), ordered[2].ID)
	// Original slice is untouched
	assert.Equal(t, PlayerID("late"), g.Players[0].ID)
}

func TestEffectiveTurnSecondsClamps(t *testing.T) {
	tests := []struct {
		configured int
		want       int
	}{
		{0, DefaultTurnTimerSeconds},
		{5, MinTurnTimerSeconds},
		{10, 10},
		{60, 60},
		{1800, 1800},
		{99999, MaxTurnTimerSeconds},
	}
	for _, tt := range tests {
		g := &Game{TurnTimerSeconds: tt.configured}
		assert.Equal(t, tt.want, g.EffectiveTurnSeconds(), "configured %d", tt.configured)
	}
}

func TestAllWordsCommitted(t *testing.T) {
	g := &Game{}
	assert.False(t, g.AllWordsCommitted())

	g.Players = []*Player{
		{ID: "alice", PaddedWord: "CAST"},
		{ID: "bob"},
	}
	assert.False(t, g.AllWordsCommitted())

	g.Players[1].PaddedWord = "*WORD"
	assert.True(t, g.AllWordsCommitted())
}
