package search

import (
	"math"
	"sync"

	"go.uber.org/atomic"

	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
	"github.com/Cytosine2020/HDAStar/internal/nodeid"
)

// noMeeting is the bestLen sentinel meaning "no meeting recorded yet".
const noMeeting = math.MaxInt64

// shared is the cross-direction controller both frontiers read and
// write: the single best-so-far meeting record and the distributed
// sent/received counters the termination barrier compares. It is an
// explicit struct threaded down to every worker at construction, not a
// file-scope singleton - see the design's note on avoiding global
// mutable state.
type shared struct {
	mu      sync.Mutex
	bestLen atomic.Int64 // fast-read path; mu guards updates alongside meetX/Y/Fwd/Rev together
	meetX   int32
	meetY   int32
	meetFwd nodeid.ID
	meetRev nodeid.ID

	finished atomic.Bool

	// sent and received are the distributed termination barrier: every
	// worker's Send bumps sent, every worker's resolution of a message
	// (update, no-improvement discard, or eventual extraction/bulk
	// dominance-discard of a freshly created node) bumps received.
	// Quiescence - no message is in flight anywhere - holds exactly when
	// the two are equal and every worker's heap and inbox are observed
	// empty in the same pass.
	sent     atomic.Int64
	received atomic.Int64

	workers []*Worker
}

func newShared() *shared {
	s := &shared{}
	s.bestLen.Store(noMeeting)
	return s
}

func (s *shared) hasMeeting() bool { return s.bestLen.Load() != noMeeting }

// tryRecordMeeting installs (x,y,fwdID,revID) as the new best meeting if
// length improves on whatever is currently recorded.
func (s *shared) tryRecordMeeting(x, y int32, fwdID, revID nodeid.ID, length int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if length < s.bestLen.Load() {
		s.bestLen.Store(length)
		s.meetX, s.meetY = x, y
		s.meetFwd, s.meetRev = fwdID, revID
	}
}

// snapshot returns the recorded meeting point and the two path-head IDs
// to walk back from, once the search has finished.
func (s *shared) snapshot() (ioadapter.Point, nodeid.ID, nodeid.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ioadapter.Point{X: int(s.meetX), Y: int(s.meetY)}, s.meetFwd, s.meetRev
}

// checkTermination is called by a worker that has observed its own heap
// and inbox empty. It re-validates the global barrier under the shared
// mutex (so two workers can't both see a stale sent==received snapshot
// and diverge) and latches finished exactly once.
func (s *shared) checkTermination() bool {
	if s.finished.Load() {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished.Load() {
		return true
	}
	if s.sent.Load() != s.received.Load() {
		return false
	}
	for _, w := range s.workers {
		if w.heap.Len() > 0 || w.inbox.NotEmpty() {
			return false
		}
	}
	s.finished.Store(true)
	return true
}
