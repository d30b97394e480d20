package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jsherman999/probe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	cfg.TurnRecordTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetGameRoundTrips() {
	g := &model.Game{
		RoomCode: "ROOM01",
		Status:   model.GameStatusActive,
		HostID:   "alice",
		Players: []*model.Player{
			{
				ID:         "alice",
				SecretWord: "CAST",
				PaddedWord: "*CAST*",
				Revealed:   []bool{true, false, false, false, false, false},
				TurnOrder:  0,
			},
		},
		CurrentTurnPlayerID: "alice",
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	got, err := s.storage.GetGame(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(model.GameStatusActive, got.Status)
	s.Require().Len(got.Players, 1)
	s.Equal("*CAST*", got.Players[0].PaddedWord)
	s.Equal([]bool{true, false, false, false, false, false}, got.Players[0].Revealed)
}

func (s *StorageSuite) TestGetMissingGame() {
	_, err := s.storage.GetGame(s.ctx, "NOSUCH")
	s.Require().ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExpiresWithTTL() {
	g := &model.Game{RoomCode: "ROOM01"}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.ctx, "ROOM01")
	s.Require().ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteAndExists() {
	g := &model.Game{RoomCode: "ROOM01"}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	exists, err := s.storage.GameExists(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.True(exists)

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "ROOM01"))

	exists, err = s.storage.GameExists(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestTurnRecordsPreserveOrder() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveTurnRecord(s.ctx, &model.TurnRecord{
			ID:            "r" + string(rune('0'+i)),
			RoomCode:      "ROOM01",
			TurnNumber:    i,
			ActorID:       "alice",
			TargetID:      "bob",
			GuessedLetter: "E",
		}))
	}

	records, err := s.storage.GetTurnRecords(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	for i, r := range records {
		s.Equal(i+1, r.TurnNumber)
		s.Equal(model.PlayerID("alice"), r.ActorID)
	}

	s.Require().NoError(s.storage.DeleteTurnRecords(s.ctx, "ROOM01"))
	records, err = s.storage.GetTurnRecords(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestDictionaryWords() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().ErrorIs(err, model.ErrDictionaryNotLoaded)

	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"cast", "word"}))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"cast", "word"}, words)

	// Re-saving replaces rather than appends
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"mood"}))
	words, err = s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"mood"}, words)
}
