package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Word length and padding limits
const (
	MinWordLength   = 4
	MaxWordLength   = 12
	MaxPaddedLength = 12
)

// BlankRune is the reserved sentinel for a padding slot in a padded word.
// It is distinct from every guessable letter.
const BlankRune = '*'

// BlankToken is the wire representation of the blank sentinel, used both in
// guesses ("I guess a blank") and in revealed views.
const BlankToken = "BLANK"

// ValidateSecretWord checks that a secret word is 4-12 uppercase letters
func ValidateSecretWord(word string) error {
	if len(word) < MinWordLength || len(word) > MaxWordLength {
		return ErrInvalidWord
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return ErrInvalidWord
		}
	}
	return nil
}

// BuildPaddedWord surrounds a secret word with blank sentinels.
// The padded result must fit within MaxPaddedLength.
func BuildPaddedWord(secret string, frontPadding, backPadding int) (string, error) {
	if frontPadding < 0 || backPadding < 0 {
		return "", ErrInvalidPadding
	}
	if len(secret)+frontPadding+backPadding > MaxPaddedLength {
		return "", ErrInvalidPadding
	}
	return strings.Repeat(string(BlankRune), frontPadding) +
		secret +
		strings.Repeat(string(BlankRune), backPadding), nil
}

// WordDigest returns a hex digest of a secret word, stored alongside the word
// as an integrity check. Not a secrecy mechanism.
func WordDigest(word string) string {
	sum := sha256.Sum256([]byte(word))
	return hex.EncodeToString(sum[:])
}

// NormalizeGuessLetter converts a guessed token to its canonical rune form:
// the blank sentinel for BlankToken, otherwise a single uppercase letter.
func NormalizeGuessLetter(token string) (rune, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == BlankToken {
		return BlankRune, nil
	}
	if len(token) != 1 {
		return 0, ErrInvalidLetter
	}
	r := rune(token[0])
	if r < 'A' || r > 'Z' {
		return 0, ErrInvalidLetter
	}
	return r, nil
}

// LetterToken renders a padded-word rune as its wire token
func LetterToken(r rune) string {
	if r == BlankRune {
		return BlankToken
	}
	return string(r)
}
