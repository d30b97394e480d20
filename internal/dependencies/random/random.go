package random

import "math/rand"

// Random provides the randomness the game consumes, behind an interface so
// tests can queue deterministic values
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the alphabet
	String(length int, alphabet string) string

	// Shuffle randomizes the order of n elements using the given swap function
	Shuffle(n int, swap func(i, j int))
}

// Source implements Random over math/rand/v2, whose global generator is
// seeded unpredictably at process start
type Source struct{}

// New creates a new Source
func New() *Source {
	return &Source{}
}

// Intn returns a random int in [0, n); n <= 0 yields 0
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// String generates a random string of the given length from the alphabet
func (s *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(out)
}

// Shuffle randomizes the order of n elements
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

var _ Random = (*Source)(nil)
