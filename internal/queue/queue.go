// Package queue implements the lock-free multi-producer single-consumer
// message queue each HDA* worker owns: a singly-linked LIFO stack
// (Treiber's algorithm) pushed with a single CAS per producer and
// drained with a single atomic exchange by the owning consumer, backed
// by a consumer-private arena with a free-list bin so steady-state
// traffic needs no further allocation. This generalizes
// original_source/node.c's mmap-backed pool to the lock-free multi-
// producer setting the HDA* pattern requires, per the Design Notes:
// sync/atomic's compare-and-swap/exchange stand in for the original's
// hand-coded `lock cmpxchg`/`lock xchg`, with no inline assembly.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package queue

import (
	"sync/atomic"
	"unsafe"

	"github.com/Cytosine2020/HDAStar/internal/arena"
	"github.com/Cytosine2020/HDAStar/internal/nodeid"
)

// Message is a successor proposal: expanding a node routes one Message
// for every open (in-bounds, non-wall) neighbor to the queue owned by
// the worker that owns the neighbor's cell. The sender does not check
// whether the proposal improves on the neighbor's current g-score; the
// receiving worker discards proposals that do not improve it.
type Message struct {
	Parent nodeid.ID
	X, Y   int32
	GScore int32
	next   *Message // intrusive link, used both on the live stack and on the free bin
}

// Queue is a lock-free MPSC stack of *Message plus the owner's private
// allocation pool for them. Send is safe for any number of concurrent
// producers; Receive, Alloc and Free must only ever be called by the
// single owning consumer goroutine.
type Queue struct {
	head unsafe.Pointer // *Message, the top of the LIFO stack
	pool *arena.Arena[Message]
	bin  *Message // consumer-only free list; no synchronization needed
}

// New creates a Queue whose messages are bump-allocated from pool.
func New(pool *arena.Arena[Message]) *Queue {
	return &Queue{pool: pool}
}

// Send pushes msg onto the stack. Many goroutines may call Send
// concurrently, including the queue's own owner. The CAS loop's success
// path is an acquire-release on head; a failed attempt simply reloads
// the now-current head and retries.
func (q *Queue) Send(msg *Message) {
	for {
		old := atomic.LoadPointer(&q.head)
		msg.next = (*Message)(old)
		if atomic.CompareAndSwapPointer(&q.head, old, unsafe.Pointer(msg)) {
			return
		}
	}
}

// Receive atomically detaches the entire chain accumulated since the
// last Receive and returns its head (LIFO order: the most recently sent
// message first), or nil if nothing was pending. Single-consumer only.
func (q *Queue) Receive() *Message {
	old := atomic.SwapPointer(&q.head, nil)
	return (*Message)(old)
}

// NotEmpty is a non-destructive peek used by the termination detector
// to decide whether to leave its idle loop and go drain.
func (q *Queue) NotEmpty() bool {
	return atomic.LoadPointer(&q.head) != nil
}

// Alloc returns a Message, preferring the consumer-private free bin over
// bumping the arena. Single-consumer only.
func (q *Queue) Alloc() *Message {
	if q.bin != nil {
		m := q.bin
		q.bin = m.next
		m.next = nil
		return m
	}
	return q.pool.AllocPtr()
}

// Free splices the chain [head, tail] - as produced by a single Receive
// traversal - onto the free bin in one step. Single-consumer only.
func (q *Queue) Free(head, tail *Message) {
	if head == nil {
		return
	}
	tail.next = q.bin
	q.bin = head
}

// Next returns the next message in the chain a Receive call handed back,
// or nil at the chain's end. Exposed read-only so callers outside this
// package can walk a drained batch without reaching into the field.
func (m *Message) Next() *Message { return m.next }
