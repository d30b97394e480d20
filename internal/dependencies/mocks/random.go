package mocks

import "github.com/jsherman999/probe-go/internal/dependencies/random"

// MockRandom plays back queued values so tests control every random draw.
// An exhausted queue yields zero values: Intn returns 0, String returns "",
// and Shuffle leaves the order untouched.
type MockRandom struct {
	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueIntn appends values for future Intn calls
func (r *MockRandom) QueueIntn(values ...int) {
	r.ints = append(r.ints, values...)
}

// QueueString appends values for future String calls
func (r *MockRandom) QueueString(values ...string) {
	r.strings = append(r.strings, values...)
}

// Intn pops the next queued int
func (r *MockRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// String pops the next queued string
func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

// Shuffle consumes one queued int per swap so tests can fix an ordering.
// It stops at the first exhausted draw, leaving the remaining order as-is.
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		if len(r.ints) == 0 {
			return
		}
		if j := r.Intn(i + 1); j != i {
			swap(i, j)
		}
	}
}
