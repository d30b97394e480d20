package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jsherman999/probe-go/internal/dependencies/mocks"
	"github.com/jsherman999/probe-go/internal/model"
	"github.com/jsherman999/probe-go/internal/testutil"
)

type CoordinatorSuite struct {
	suite.Suite
	clock       *mocks.MockClock
	coordinator *Coordinator
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.coordinator = NewCoordinator(s.clock, testutil.NopLogger())
}

func (s *CoordinatorSuite) pending(kind model.SelectionKind, decider model.PlayerID) *model.PendingSelection {
	return &model.PendingSelection{
		Kind:        kind,
		RoomCode:    "ROOM01",
		InitiatorID: "alice",
		DeciderID:   decider,
		TargetID:    decider,
		Letter:      "O",
		Candidates:  []int{1, 4},
	}
}

func (s *CoordinatorSuite) TestRegisterStampsDeadline() {
	sel := s.pending(model.SelectionDuplicateLetter, "bob")
	s.coordinator.Register(sel, func(*model.PendingSelection) {})

	s.Equal(s.clock.Now().Add(DefaultTimeout), sel.Deadline)
	s.Equal(1, s.coordinator.PendingCount())

	got, ok := s.coordinator.Get(sel.Key())
	s.Require().True(ok)
	s.Same(sel, got)
}

func (s *CoordinatorSuite) TestTimeoutFiresCallbackWithSelection() {
	sel := s.pending(model.SelectionDuplicateLetter, "bob")
	var fired *model.PendingSelection
	s.coordinator.Register(sel, func(got *model.PendingSelection) { fired = got })

	s.clock.Advance(DefaultTimeout - time.Second)
	s.Nil(fired)

	s.clock.Advance(time.Second)
	s.Require().NotNil(fired)
	s.Same(sel, fired)
	s.Equal(4, fired.RightmostCandidate())
}

func (s *CoordinatorSuite) TestTakeCancelsTimer() {
	sel := s.pending(model.SelectionDuplicateLetter, "bob")
	fired := false
	s.coordinator.Register(sel, func(*model.PendingSelection) { fired = true })

	got, ok := s.coordinator.Take(sel.Key())
	s.Require().True(ok)
	s.Same(sel, got)
	s.Equal(0, s.coordinator.PendingCount())

	// The stopped timer must not fire later
	s.clock.Advance(2 * DefaultTimeout)
	s.False(fired)

	_, ok = s.coordinator.Take(sel.Key())
	s.False(ok)
}

func (s *CoordinatorSuite) TestNilTimeoutArmsNoTimer() {
	sel := s.pending(model.SelectionDuplicateLetter, "bot-1")
	s.coordinator.Register(sel, nil)

	s.Equal(0, s.clock.PendingTimers())
	s.Equal(1, s.coordinator.PendingCount())
}

func (s *CoordinatorSuite) TestReRegisterReplacesPriorSelection() {
	first := s.pending(model.SelectionDuplicateLetter, "bob")
	firstFired := false
	s.coordinator.Register(first, func(*model.PendingSelection) { firstFired = true })

	second := s.pending(model.SelectionDuplicateLetter, "bob")
	secondFired := false
	s.coordinator.Register(second, func(*model.PendingSelection) { secondFired = true })

	s.Equal(1, s.coordinator.PendingCount())
	got, ok := s.coordinator.Get(first.Key())
	s.Require().True(ok)
	s.Same(second, got)

	// Only the replacement's timer remains armed
	s.clock.Advance(DefaultTimeout)
	s.False(firstFired)
	s.True(secondFired)
}

func (s *CoordinatorSuite) TestTakeExactIgnoresReplacedInstance() {
	first := s.pending(model.SelectionDuplicateLetter, "bob")
	s.coordinator.Register(first, func(*model.PendingSelection) {})
	second := s.pending(model.SelectionDuplicateLetter, "bob")
	s.coordinator.Register(second, func(*model.PendingSelection) {})

	s.False(s.coordinator.TakeExact(first))
	s.Equal(1, s.coordinator.PendingCount())

	s.True(s.coordinator.TakeExact(second))
	s.Equal(0, s.coordinator.PendingCount())
}

func (s *CoordinatorSuite) TestDistinctKindsCoexistForOneDecider() {
	dup := s.pending(model.SelectionDuplicateLetter, "bob")
	expose := s.pending(model.SelectionSelfExpose, "bob")
	s.coordinator.Register(dup, func(*model.PendingSelection) {})
	s.coordinator.Register(expose, func(*model.PendingSelection) {})

	s.Equal(2, s.coordinator.PendingCount())
}

func (s *CoordinatorSuite) TestHasBlockingExcludesSelfExpose() {
	s.False(s.coordinator.HasBlocking("ROOM01"))

	expose := s.pending(model.SelectionSelfExpose, "alice")
	s.coordinator.Register(expose, func(*model.PendingSelection) {})
	s.False(s.coordinator.HasBlocking("ROOM01"))

	dup := s.pending(model.SelectionDuplicateLetter, "bob")
	s.coordinator.Register(dup, func(*model.PendingSelection) {})
	s.True(s.coordinator.HasBlocking("ROOM01"))
	s.False(s.coordinator.HasBlocking("OTHER1"))
}

func (s *CoordinatorSuite) TestCancelRoomDropsOnlyThatRoom() {
	inRoom := s.pending(model.SelectionDuplicateLetter, "bob")
	s.coordinator.Register(inRoom, func(*model.PendingSelection) {})

	other := s.pending(model.SelectionDuplicateLetter, "carol")
	other.RoomCode = "OTHER1"
	s.coordinator.Register(other, func(*model.PendingSelection) {})

	removed := s.coordinator.CancelRoom("ROOM01")
	s.Equal(1, removed)
	s.Equal(1, s.coordinator.PendingCount())

	_, ok := s.coordinator.Get(inRoom.Key())
	s.False(ok)
	_, ok = s.coordinator.Get(other.Key())
	s.True(ok)
}

func (s *CoordinatorSuite) TestCancelRoomStopsTimers() {
	sel := s.pending(model.SelectionDuplicateLetter, "bob")
	fired := false
	s.coordinator.Register(sel, func(*model.PendingSelection) { fired = true })

	s.coordinator.CancelRoom("ROOM01")
	s.clock.Advance(2 * DefaultTimeout)
	s.False(fired)
}
