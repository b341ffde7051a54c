// Package search implements the HDA* bidirectional parallel engine: two
// directions (forward and reverse), each a pool of workers that own a
// private arena, heap and inbox, cooperating through per-direction
// hash-distributed message routing and a small piece of cross-direction
// shared state used only to record the best meeting seen so far and to
// detect quiescence.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package search

import (
	"go.uber.org/atomic"

	"github.com/Cytosine2020/HDAStar/internal/arena"
	"github.com/Cytosine2020/HDAStar/internal/nodeid"
)

// Node is a single search-tree node, generalized from
// original_source/node.h's node_t. Every field except GS is touched only
// by the single worker goroutine that owns the arena slot it lives in;
// GS is read by the *opposite* direction's workers whenever they probe
// this direction's grid for a meeting, so it alone needs atomic
// load/store semantics.
type Node struct {
	X, Y int32

	// GS is the node's g-score (cost from this direction's start). It is
	// read cross-goroutine by the opposite direction's meeting check, so
	// it is the one field that needs an atomic type rather than a plain
	// int32 guarded by single-ownership.
	GS atomic.Int32

	// FS is the node's f-score (GS plus the admissible heuristic to this
	// direction's goal), used to order the owning worker's private heap
	// and to test the dominance gate. Only ever read or written by the
	// owner.
	FS int32

	// Parent names the predecessor on the best path found to this node
	// so far, packed as a (worker, arena.Ref) pair since hash-distributed
	// ownership means a parent routinely lives in a different worker's
	// arena than its child. The zero ID means "no parent" (the start
	// node of its direction).
	Parent nodeid.ID

	// HeapIdx is this node's 1-based slot in the owning worker's heap, or
	// 0 when not currently in the heap (see internal/astarheap).
	HeapIdx int32

	// Closed marks a node that has been extracted and expanded. A closed
	// node can still be reopened by a later improving message.
	Closed bool

	// CreditPending is true from the moment a node is created by a fresh
	// message until the moment its presence is first resolved by
	// extraction or bulk dominance-discard. The message that created the
	// node is deliberately not counted against the termination barrier's
	// received counter at creation time - only once its fate is decided,
	// see Worker.resolveCredit.
	CreditPending bool
}

// nodeStore adapts a single worker's node arena to astarheap.NodeStore,
// so astarheap.Heap never needs to know about the concrete Node type.
type nodeStore struct {
	nodes *arena.Arena[Node]
}

func (s nodeStore) FScore(ref arena.Ref) int             { return int(s.nodes.Get(ref).FS) }
func (s nodeStore) HeapIndex(ref arena.Ref) int32        { return s.nodes.Get(ref).HeapIdx }
func (s nodeStore) SetHeapIndex(ref arena.Ref, idx int32) { s.nodes.Get(ref).HeapIdx = idx }
