package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/jsherman999/probe-go/internal/dependencies/random"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/storage"
)

// Service is the word-validity oracle. Committed words are checked against it
// when loaded; an unloaded dictionary accepts any structurally valid word so
// the game remains playable without a word list.
type Service struct {
	storage storage.Storage
	random  random.Random

	mu     sync.RWMutex
	words  map[string]struct{}
	byLen  map[int][]string
	loaded bool
}

// New creates a new dictionary Service
func New(storage storage.Storage, rnd random.Random) *Service {
	return &Service{
		storage: storage,
		random:  rnd,
		words:   make(map[string]struct{}),
		byLen:   make(map[int][]string),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line) and
// persists them to storage for future use
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	s.byLen = make(map[int][]string)
	for _, word := range words {
		word = strings.ToUpper(strings.TrimSpace(word))
		if model.ValidateSecretWord(word) != nil {
			continue // Outside playable length or not all letters
		}
		if _, ok := s.words[word]; ok {
			continue
		}
		s.words[word] = struct{}{}
		s.byLen[len(word)] = append(s.byLen[len(word)], word)
	}
	s.loaded = true
	return nil
}

// IsValidWord checks a word against the dictionary. With no dictionary
// loaded every structurally valid word is accepted.
func (s *Service) IsValidWord(word string) bool {
	word = strings.ToUpper(word)
	if model.ValidateSecretWord(word) != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return true
	}
	_, ok := s.words[word]
	return ok
}

// RandomWord returns a random playable word of the given length, or any
// length if length is 0. Returns empty when nothing suitable is loaded.
func (s *Service) RandomWord(length int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if length > 0 {
		pool := s.byLen[length]
		if len(pool) == 0 {
			return ""
		}
		return pool[s.random.Intn(len(pool))]
	}

	total := 0
	for _, pool := range s.byLen {
		total += len(pool)
	}
	if total == 0 {
		return ""
	}
	n := s.random.Intn(total)
	for l := model.MinWordLength; l <= model.MaxWordLength; l++ {
		pool := s.byLen[l]
		if n < len(pool) {
			return pool[n]
		}
		n -= len(pool)
	}
	return ""
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of playable words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
