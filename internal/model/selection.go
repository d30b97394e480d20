package model

import "time"

// SelectionKind discriminates the secondary decisions the ruleset requires
type SelectionKind string

const (
	// SelectionDuplicateLetter: the target picks which of several matching
	// letter positions is revealed
	SelectionDuplicateLetter SelectionKind = "duplicate_letter"
	// SelectionBlank: same, for a blank guess matching several padding slots
	SelectionBlank SelectionKind = "blank"
	// SelectionSelfExpose: a drawn turn card forces the affected player to
	// reveal one of their own hidden positions
	SelectionSelfExpose SelectionKind = "self_expose"
	// SelectionWordGuess: a timed window in which the actor may submit a
	// full-word guess; timing out counts as an incorrect guess
	SelectionWordGuess SelectionKind = "word_guess"
)

// SelectionKey identifies the single outstanding selection slot for a
// decider and kind within a room
type SelectionKey struct {
	RoomCode RoomCode
	Decider  PlayerID
	Kind     SelectionKind
}

// PendingSelection is an ephemeral, in-memory record of a secondary decision
// awaiting its decider. At most one exists per key at any time.
type PendingSelection struct {
	Kind     SelectionKind
	RoomCode RoomCode

	// InitiatorID triggered the selection (the guesser, or the card drawer);
	// DeciderID must make the choice; TargetID owns the word at stake.
	// For self-expose all three are the same player.
	InitiatorID PlayerID
	DeciderID   PlayerID
	TargetID    PlayerID

	// Letter is the guessed token for duplicate-letter and blank kinds
	Letter string

	// Candidates are the positions the decider may choose between.
	// Empty for word-guess windows.
	Candidates []int

	Deadline time.Time
}

// Key returns the coordinator key for this selection
func (s *PendingSelection) Key() SelectionKey {
	return SelectionKey{RoomCode: s.RoomCode, Decider: s.DeciderID, Kind: s.Kind}
}

// HasCandidate reports whether pos is a valid choice
func (s *PendingSelection) HasCandidate(pos int) bool {
	for _, c := range s.Candidates {
		if c == pos {
			return true
		}
	}
	return false
}

// RightmostCandidate returns the highest candidate position: the fixed,
// low-information choice applied when the decider times out
func (s *PendingSelection) RightmostCandidate() int {
	if len(s.Candidates) == 0 {
		return -1
	}
	max := s.Candidates[0]
	for _, c := range s.Candidates[1:] {
		if c > max {
			max = c
		}
	}
	return max
}

// RightmostCandidateWhere returns the highest candidate position satisfying
// keep. The candidate list is a snapshot, so a timeout fallback must skip
// positions invalidated since it was taken; ok is false when none remain.
func (s *PendingSelection) RightmostCandidateWhere(keep func(int) bool) (pos int, ok bool) {
	pos = -1
	for _, c := range s.Candidates {
		if c > pos && keep(c) {
			pos, ok = c, true
		}
	}
	return pos, ok
}
