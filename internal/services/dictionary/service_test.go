package dictionary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jsherman999/probe-go/internal/dependencies/mocks"
	"github.com/jsherman999/probe-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestUnloadedAcceptsStructurallyValidWords() {
	s.False(s.service.IsLoaded())
	s.True(s.service.IsValidWord("CAST"))
	s.True(s.service.IsValidWord("anything"))
}

func (s *ServiceSuite) TestUnloadedStillRejectsMalformedWords() {
	s.False(s.service.IsValidWord("CAT"))
	s.False(s.service.IsValidWord("NOT A WORD"))
	s.False(s.service.IsValidWord(""))
}

func (s *ServiceSuite) TestLoadWordsNormalizesAndFilters() {
	s.Require().NoError(s.service.LoadWords([]string{
		"cast", " word ", "CAST", "cat", "toolongforthegame", "ab3d",
	}))

	s.True(s.service.IsLoaded())
	s.Equal(2, s.service.WordCount())
	s.True(s.service.IsValidWord("cast"))
	s.True(s.service.IsValidWord("WORD"))
	s.False(s.service.IsValidWord("MOOD"))
	s.False(s.service.IsValidWord("CAT"))
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"probe", "mood"}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))
	s.True(s.service.IsValidWord("PROBE"))
	s.True(s.service.IsValidWord("MOOD"))
	s.False(s.service.IsValidWord("CAST"))
}

func (s *ServiceSuite) TestRandomWordByLength() {
	s.Require().NoError(s.service.LoadWords([]string{"cast", "mood", "probe"}))

	s.random.QueueIntn(1)
	word := s.service.RandomWord(4)
	s.Len(word, 4)

	s.Equal("PROBE", s.service.RandomWord(5))
	s.Equal("", s.service.RandomWord(7))
}

func (s *ServiceSuite) TestRandomWordAnyLength() {
	s.Require().NoError(s.service.LoadWords([]string{"cast", "probe"}))

	// Index 1 lands in the 5-letter pool after the 4-letter pool
	s.random.QueueIntn(1)
	s.Equal("PROBE", s.service.RandomWord(0))
}

func (s *ServiceSuite) TestRandomWordEmptyDictionary() {
	s.Equal("", s.service.RandomWord(0))
	s.Equal("", s.service.RandomWord(4))
}
