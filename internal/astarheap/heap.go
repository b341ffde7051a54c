// Package astarheap implements the array-backed, 1-indexed binary min
// heap each HDA* worker privately owns, generalized from
// original_source/heap.c: insert and update both sift up only (f-scores
// only ever decrease, see the worker's strict-improvement rule), extract
// sifts the displaced last element down, and a bulk discard empties the
// heap in one step for the dominance gate.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package astarheap

import "github.com/Cytosine2020/HDAStar/internal/cmn"

// NodeStore abstracts the arena-backed node storage a Heap orders,
// keeping this package free of any dependency on the concrete Node type
// or arena package - a Heap only needs to compare and tag f-scores.
type NodeStore[Ref comparable] interface {
	// FScore returns the current f-score of the node named by ref.
	FScore(ref Ref) int
	// HeapIndex returns the node's 1-based slot, or 0 if not in the heap.
	HeapIndex(ref Ref) int32
	// SetHeapIndex records the node's current slot (0 when removed).
	SetHeapIndex(ref Ref, idx int32)
}

// Heap is a private, single-owner min priority queue of Refs ordered by
// NodeStore.FScore. It is not safe for concurrent use.
type Heap[Ref comparable] struct {
	store NodeStore[Ref]
	slots []Ref // slots[0] is an unused dummy; real entries start at 1
}

// New creates an empty Heap backed by store, with room for capacity
// entries before the first reallocation.
func New[Ref comparable](store NodeStore[Ref], capacity int) *Heap[Ref] {
	var zero Ref
	slots := make([]Ref, 1, capacity+1)
	slots[0] = zero
	return &Heap[Ref]{store: store, slots: slots}
}

// Len returns the number of entries currently in the heap.
func (h *Heap[Ref]) Len() int { return len(h.slots) - 1 }

// Insert adds ref to the heap. ref must not already be present (its
// heap index must be 0).
func (h *Heap[Ref]) Insert(ref Ref) {
	cmn.Assertf(h.store.HeapIndex(ref) == 0, "heap: insert of node already present")
	h.slots = append(h.slots, ref)
	cur := len(h.slots) - 1
	h.store.SetHeapIndex(ref, int32(cur))
	h.siftUp(cur)
}

// ExtractMin removes and returns the node with the smallest f-score.
// The heap must be non-empty.
func (h *Heap[Ref]) ExtractMin() Ref {
	cmn.Assertf(h.Len() > 0, "heap: extract from empty heap")
	min := h.slots[1]
	h.store.SetHeapIndex(min, 0)
	last := h.slots[len(h.slots)-1]
	h.slots = h.slots[:len(h.slots)-1]
	if h.Len() > 0 {
		h.slots[1] = last
		h.store.SetHeapIndex(last, 1)
		h.siftDown(1)
	}
	return min
}

// Update restores the heap property after ref's f-score has decreased.
// ref must already be present in the heap.
func (h *Heap[Ref]) Update(ref Ref) {
	idx := h.store.HeapIndex(ref)
	cmn.Assertf(idx != 0, "heap: update of node not present")
	h.siftUp(int(idx))
}

// DiscardAll empties the heap in one step (the dominance gate's coarse
// flush once every remaining entry is known to be dominated by the
// current best meeting length) and returns the discarded entries so the
// caller can fold their count into its received-message counter.
func (h *Heap[Ref]) DiscardAll() []Ref {
	discarded := h.slots[1:]
	for _, ref := range discarded {
		h.store.SetHeapIndex(ref, 0)
	}
	h.slots = h.slots[:1]
	return discarded
}

func (h *Heap[Ref]) siftUp(cur int) {
	for cur > 1 {
		parent := cur / 2
		if h.store.FScore(h.slots[cur]) >= h.store.FScore(h.slots[parent]) {
			break
		}
		h.swap(cur, parent)
		cur = parent
	}
}

func (h *Heap[Ref]) siftDown(cur int) {
	n := len(h.slots)
	for {
		left, right, smallest := 2*cur, 2*cur+1, cur
		if left < n && h.store.FScore(h.slots[left]) < h.store.FScore(h.slots[smallest]) {
			smallest = left
		}
		if right < n && h.store.FScore(h.slots[right]) < h.store.FScore(h.slots[smallest]) {
			smallest = right
		}
		if smallest == cur {
			return
		}
		h.swap(cur, smallest)
		cur = smallest
	}
}

func (h *Heap[Ref]) swap(i, j int) {
	h.slots[i], h.slots[j] = h.slots[j], h.slots[i]
	h.store.SetHeapIndex(h.slots[i], int32(i))
	h.store.SetHeapIndex(h.slots[j], int32(j))
}
