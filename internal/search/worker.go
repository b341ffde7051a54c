package search

import (
	"context"
	"time"

	"github.com/Cytosine2020/HDAStar/internal/arena"
	"github.com/Cytosine2020/HDAStar/internal/astarheap"
	"github.com/Cytosine2020/HDAStar/internal/cmn"
	"github.com/Cytosine2020/HDAStar/internal/config"
	"github.com/Cytosine2020/HDAStar/internal/heuristic"
	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
	"github.com/Cytosine2020/HDAStar/internal/nodeid"
	"github.com/Cytosine2020/HDAStar/internal/queue"
)

// idleBackoff bounds how long a locally quiescent worker sleeps between
// termination checks. Short enough that the whole pool exits promptly
// once the barrier opens, long enough not to spin a core doing nothing.
const idleBackoff = 200 * time.Microsecond

// Worker owns one private arena, heap and inbox within its direction's
// pool - the unit of parallelism the design calls out in §4.6/§4.7:
// "private per-worker ... binary min-heaps, arena-allocated ... nodes".
type Worker struct {
	dir      *direction
	globalID int

	nodes *arena.Arena[Node]
	msgs  *arena.Arena[queue.Message]
	heap  *astarheap.Heap[arena.Ref]
	inbox *queue.Queue

	shared *shared
}

func newWorker(dir *direction, globalID int, cfg config.Config) *Worker {
	nodes := arena.New[Node](cfg.ArenaChunkBytes)
	msgs := arena.New[queue.Message](cfg.ArenaChunkBytes)
	return &Worker{
		dir:      dir,
		globalID: globalID,
		nodes:    nodes,
		msgs:     msgs,
		heap:     astarheap.New[arena.Ref](nodeStore{nodes: nodes}, 64),
		inbox:    queue.New(msgs),
	}
}

func (w *Worker) destroy() {
	w.nodes.Destroy()
	w.msgs.Destroy()
}

// seed installs this worker's direction's start node directly (it has
// no parent message, since nothing expanded it). The seed is given a
// matching virtual "sent" credit so the Σsent == Σreceived invariant
// holds from the very first instant of the search, not just once
// steady-state message traffic begins.
func (w *Worker) seed(p ioadapter.Point) {
	ref := w.nodes.Alloc()
	node := w.nodes.Get(ref)
	node.X, node.Y = int32(p.X), int32(p.Y)
	node.GS.Store(0)
	node.FS = int32(heuristic.Manhattan(p.X, p.Y, w.dir.goal.X, w.dir.goal.Y))
	node.Parent = 0
	node.CreditPending = true

	id := nodeid.Pack(w.globalID, ref)
	w.dir.grid.Set(p.X, p.Y, uint64(id))
	w.heap.Insert(ref)
	w.shared.sent.Add(1)
	w.checkMeeting(node.X, node.Y, id, 0)
}

// Run drives this worker's share of the search until the shared
// termination barrier opens or ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if w.shared.finished.Load() {
			return nil
		}
		if w.heap.Len() > 0 || w.inbox.NotEmpty() {
			w.processOne()
			continue
		}
		if w.shared.checkTermination() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(idleBackoff):
		}
	}
}

// processOne performs exactly one unit of work: either extract-and-
// expand (or discard, if dominated) this worker's best open node, or
// drain and apply one batch of incoming messages. Heap work always
// takes priority over draining, mirroring the reference pseudocode's
// "exhaust the open set before reading mail" ordering.
func (w *Worker) processOne() {
	if w.heap.Len() > 0 {
		ref := w.heap.ExtractMin()
		node := w.nodes.Get(ref)
		w.resolveCredit(node)

		if int64(node.FS) >= w.shared.bestLen.Load() {
			// Every remaining entry has an f-score >= this one (heap
			// property) and so is equally dominated by the known meeting
			// length: flush the rest in one step rather than extracting
			// them one at a time only to immediately discard each. Mark
			// every discarded node Closed so a later improving message
			// (bestLen only ever shrinks, but a stale in-flight message
			// can still arrive after this point) reopens it through the
			// ordinary Closed branch in handleOne instead of hitting the
			// impossible neither-open-nor-closed case.
			node.Closed = true
			for _, rest := range w.heap.DiscardAll() {
				restNode := w.nodes.Get(rest)
				restNode.Closed = true
				w.resolveCredit(restNode)
			}
			return
		}

		node.Closed = true
		w.expand(ref, node)
		return
	}

	if msgs := w.inbox.Receive(); msgs != nil {
		w.handleMessages(msgs)
	}
}

// resolveCredit bumps the global received counter exactly once for a
// node's original creation message, the first time that node's fate
// (extraction or bulk discard) is decided. Messages that instead update
// or no-op against an already-live node are credited immediately at
// drain time, in handleOne.
func (w *Worker) resolveCredit(node *Node) {
	if node.CreditPending {
		node.CreditPending = false
		w.shared.received.Add(1)
	}
}

// expand generates one successor message per open cardinal neighbor and
// routes each to the worker that owns its cell, per this direction's
// hash partition.
func (w *Worker) expand(ref arena.Ref, node *Node) {
	gs := node.GS.Load()
	newG := gs + 1
	for _, off := range neighbors4 {
		nx, ny := node.X+off.dx, node.Y+off.dy
		if !w.dir.maze.InBounds(int(nx), int(ny)) || w.dir.maze.At(int(nx), int(ny)) == '#' {
			continue
		}
		target := w.dir.workers[ownerOf(nx, ny, len(w.dir.workers))]
		msg := w.inbox.Alloc()
		msg.Parent = nodeid.Pack(w.globalID, ref)
		msg.X, msg.Y = nx, ny
		msg.GScore = newG
		target.inbox.Send(msg)
		w.shared.sent.Add(1)
	}
}

// handleMessages applies every message in one drained batch, then
// returns the whole chain to this worker's own free bin - the consumed
// messages' memory is what the next expand call's Alloc calls reuse.
func (w *Worker) handleMessages(head *queue.Message) {
	tail := head
	for m := head; ; m = m.Next() {
		w.handleOne(m)
		if m.Next() == nil {
			tail = m
			break
		}
	}
	w.inbox.Free(head, tail)
}

func (w *Worker) handleOne(m *queue.Message) {
	existing := w.dir.grid.Get(int(m.X), int(m.Y))
	if existing == 0 {
		ref := w.nodes.Alloc()
		node := w.nodes.Get(ref)
		node.X, node.Y = m.X, m.Y
		node.GS.Store(m.GScore)
		node.FS = m.GScore + int32(heuristic.Manhattan(int(m.X), int(m.Y), w.dir.goal.X, w.dir.goal.Y))
		node.Parent = m.Parent
		node.HeapIdx = 0
		node.Closed = false
		node.CreditPending = true

		id := nodeid.Pack(w.globalID, ref)
		w.dir.grid.Set(int(m.X), int(m.Y), uint64(id))
		w.heap.Insert(ref)
		w.checkMeeting(m.X, m.Y, id, m.GScore)
		return
	}

	id := nodeid.ID(existing)
	cmn.Assertf(id.Worker() == w.globalID, "search: message for (%d,%d) routed to non-owning worker", m.X, m.Y)
	node := w.nodes.Get(id.Ref())

	if m.GScore >= node.GS.Load() {
		w.shared.received.Add(1) // no-improvement discard
		return
	}

	node.GS.Store(m.GScore)
	node.FS = m.GScore + int32(heuristic.Manhattan(int(m.X), int(m.Y), w.dir.goal.X, w.dir.goal.Y))
	node.Parent = m.Parent

	switch {
	case node.HeapIdx != 0:
		w.heap.Update(id.Ref())
	case node.Closed:
		node.Closed = false
		w.heap.Insert(id.Ref())
	default:
		// Unreachable: a node with HeapIdx == 0 and Closed == false has
		// never been touched since creation, and creation always inserts
		// it into the heap.
		cmn.Assertf(false, "search: improving message for node neither open nor closed")
	}
	w.shared.received.Add(1) // already-in-heap (or reopened) update
	w.checkMeeting(m.X, m.Y, id, m.GScore)
}

// checkMeeting probes the opposite direction's grid for the same cell
// this worker just created or improved, and if present, folds the two
// g-scores into a candidate meeting length.
func (w *Worker) checkMeeting(x, y int32, thisID nodeid.ID, thisG int32) {
	opp := w.dir.opposite
	raw := opp.grid.Get(int(x), int(y))
	if raw == 0 {
		return
	}
	oppID := nodeid.ID(raw)
	oppNode := w.shared.workers[oppID.Worker()].nodes.Get(oppID.Ref())
	oppG := oppNode.GS.Load()

	length := int64(thisG) + int64(oppG)
	if w.dir.isForward {
		w.shared.tryRecordMeeting(x, y, thisID, oppID, length)
	} else {
		w.shared.tryRecordMeeting(x, y, oppID, thisID, length)
	}
}
