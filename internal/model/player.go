package model

import "time"

// PlayerID uniquely identifies a player (user or bot) across the system
type PlayerID string

// Player represents a participant in a single game. Players are embedded in
// the Game aggregate and mutated only under the room's single-writer lock.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsBot       bool
	BotStrategy string // empty for humans

	// Committed word. SecretWord is never sent to other clients; the digest
	// is kept as an integrity check.
	SecretWord       string
	SecretWordDigest string
	PaddedWord       string // front blanks + secret word + back blanks
	FrontPadding     int
	BackPadding      int

	// Revealed has one entry per padded-word position
	Revealed []bool

	// MissedLetters are letters guessed against this player that matched
	// nothing; GuessedWords are full-word attempts already tried, kept to
	// prevent repeat spam. Both are append-only, sorted-insert not required.
	MissedLetters []string
	GuessedWords  []string

	TotalScore       int
	IsEliminated     bool
	EliminationOrder int // 1-based order of elimination, 0 while active
	TurnOrder        int

	JoinedAt time.Time
}

// HasCommittedWord reports whether this player has locked in a secret word
func (p *Player) HasCommittedWord() bool {
	return p.PaddedWord != ""
}

// PositionsOf returns the not-yet-revealed positions in the padded word
// matching the given rune (which may be the blank sentinel)
func (p *Player) PositionsOf(r rune) []int {
	var positions []int
	for i, c := range p.PaddedWord {
		if c == r && !p.Revealed[i] {
			positions = append(positions, i)
		}
	}
	return positions
}

// HiddenPositions returns every position not yet revealed
func (p *Player) HiddenPositions() []int {
	var positions []int
	for i := range p.Revealed {
		if !p.Revealed[i] {
			positions = append(positions, i)
		}
	}
	return positions
}

// IsHiddenAt reports whether the position exists and is not yet revealed
func (p *Player) IsHiddenAt(pos int) bool {
	return pos >= 0 && pos < len(p.Revealed) && !p.Revealed[pos]
}

// IsFullyRevealed reports whether every position of the padded word is visible
func (p *Player) IsFullyRevealed() bool {
	if len(p.Revealed) == 0 {
		return false
	}
	for _, r := range p.Revealed {
		if !r {
			return false
		}
	}
	return true
}

// IsBlankAt reports whether the padded-word position holds a padding blank
func (p *Player) IsBlankAt(pos int) bool {
	return pos >= 0 && pos < len(p.PaddedWord) && rune(p.PaddedWord[pos]) == BlankRune
}

// RevealedView renders what opponents may see: one token per position, empty
// string for hidden, BlankToken for a revealed padding slot, else the letter
func (p *Player) RevealedView() []string {
	view := make([]string, len(p.PaddedWord))
	for i, c := range p.PaddedWord {
		if p.Revealed[i] {
			view[i] = LetterToken(c)
		}
	}
	return view
}

// RevealPositions marks the given positions visible
func (p *Player) RevealPositions(positions []int) {
	for _, pos := range positions {
		if pos >= 0 && pos < len(p.Revealed) {
			p.Revealed[pos] = true
		}
	}
}

// HasMissedLetter reports whether the letter token was already a recorded miss
func (p *Player) HasMissedLetter(token string) bool {
	for _, l := range p.MissedLetters {
		if l == token {
			return true
		}
	}
	return false
}

// AddMissedLetter records a missed letter token, idempotently
func (p *Player) AddMissedLetter(token string) {
	if !p.HasMissedLetter(token) {
		p.MissedLetters = append(p.MissedLetters, token)
	}
}

// HasGuessedWord reports whether the word was already attempted against this player
func (p *Player) HasGuessedWord(word string) bool {
	for _, w := range p.GuessedWords {
		if w == word {
			return true
		}
	}
	return false
}

// AddGuessedWord records a full-word attempt, idempotently
func (p *Player) AddGuessedWord(word string) {
	if !p.HasGuessedWord(word) {
		p.GuessedWords = append(p.GuessedWords, word)
	}
}

// MatchesRevealed checks a full-word guess against the currently visible
// letters: the guess must be the same length as the secret word and agree
// with every revealed non-blank position
func (p *Player) MatchesRevealed(guess string) bool {
	if len(guess) != len(p.SecretWord) {
		return false
	}
	for i := range p.SecretWord {
		pos := p.FrontPadding + i
		if p.Revealed[pos] && guess[i] != p.SecretWord[i] {
			return false
		}
	}
	return true
}
