package selection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jsherman999/probe-go/internal/dependencies/clock"
	"github.com/jsherman999/probe-go/internal/model"
)

// DefaultTimeout is how long a decider has before the deterministic fallback
// resolves the selection
const DefaultTimeout = 30 * time.Second

// Coordinator holds the outstanding pending selections and their timeout
// timers. It is deliberately ignorant of game semantics: callers supply the
// timeout behavior, and the atomic Take discipline guarantees that a racing
// submit and timeout resolve a selection exactly once (the loser finds the
// entry gone and no-ops).
type Coordinator struct {
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	pending map[model.SelectionKey]*entry
}

type entry struct {
	sel   *model.PendingSelection
	timer clock.Timer
}

// NewCoordinator creates a new selection Coordinator
func NewCoordinator(clk clock.Clock, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		clock:   clk,
		logger:  logger.With(slog.String("component", "selection-coordinator")),
		pending: make(map[model.SelectionKey]*entry),
	}
}

// Register stores a pending selection, stamps its deadline, and arms its
// timeout. A prior selection for the same key is cancelled first so a stale
// timer can never double-resolve. Pass a nil onTimeout to skip arming a
// timer (bot deciders resolve synchronously instead of waiting).
func (c *Coordinator) Register(sel *model.PendingSelection, onTimeout func(*model.PendingSelection)) *model.PendingSelection {
	key := sel.Key()
	sel.Deadline = c.clock.Now().Add(DefaultTimeout)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prior, ok := c.pending[key]; ok {
		if prior.timer != nil {
			prior.timer.Stop()
		}
		c.logger.Warn("replacing pending selection",
			slog.String("room_code", string(key.RoomCode)),
			slog.String("kind", string(key.Kind)),
		)
	}

	e := &entry{sel: sel}
	if onTimeout != nil {
		e.timer = c.clock.AfterFunc(DefaultTimeout, func() {
			onTimeout(sel)
		})
	}
	c.pending[key] = e

	return sel
}

// Get returns the pending selection for a key without claiming it
func (c *Coordinator) Get(key model.SelectionKey) (*model.PendingSelection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[key]
	if !ok {
		return nil, false
	}
	return e.sel, true
}

// Take atomically removes the pending selection for a key, cancelling its
// timer. Exactly one caller can win a given selection.
func (c *Coordinator) Take(key model.SelectionKey) (*model.PendingSelection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[key]
	if !ok {
		return nil, false
	}
	delete(c.pending, key)
	if e.timer != nil {
		e.timer.Stop()
	}
	return e.sel, true
}

// TakeExact claims the selection for a key only if it is still the given
// instance. Timeout callbacks use this so a timer firing for an already
// replaced selection is a no-op.
func (c *Coordinator) TakeExact(sel *model.PendingSelection) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[sel.Key()]
	if !ok || e.sel != sel {
		return false
	}
	delete(c.pending, sel.Key())
	if e.timer != nil {
		e.timer.Stop()
	}
	return true
}

// HasBlocking reports whether the room has a pending selection that suspends
// the turn (everything except a self-expose, which runs alongside the turn)
func (c *Coordinator) HasBlocking(code model.RoomCode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.pending {
		if key.RoomCode == code && key.Kind != model.SelectionSelfExpose {
			return true
		}
	}
	return false
}

// CancelRoom drops every pending selection for a room, stopping all timers.
// Used on room teardown so no dangling callback mutates a torn-down room.
func (c *Coordinator) CancelRoom(code model.RoomCode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.pending {
		if key.RoomCode != code {
			continue
		}
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.pending, key)
		removed++
	}
	return removed
}

// PendingCount returns the number of outstanding selections across all rooms
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
