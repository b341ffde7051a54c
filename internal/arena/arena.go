// Package arena implements the bump allocator the search engine uses for
// both search nodes and MPSC messages: fixed-size chunks obtained as
// anonymous mmap regions, a bump pointer within the current chunk, and
// bulk teardown. It generalizes original_source/node.c's mem_pool (a
// singly-linked chain of 64 KiB mmap chunks walked on release) and the
// teacher's memsys.MMSA slab-growth pattern, portably: chunks are
// chained through an explicit Go slice (per the Design Notes, a
// contiguous-mmap placement is an optimization, not a correctness
// requirement). An Arena has a single owner, so it uses no atomics or
// locks.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package arena

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/Cytosine2020/HDAStar/internal/cmn"
)

// Ref is an index into an Arena's bump-allocated slots, standing in for
// a raw pointer. The zero Ref means "no reference" (see Design Notes:
// arena indices instead of pointers keep the node graph a plain index
// graph with no GC-visible ownership cycles). A valid Ref is always >= 1.
type Ref uint32

// Arena is a single-owner bump allocator over growable anonymous mmap
// chunks of a single element type T. It is not safe for concurrent
// Alloc calls; each search worker owns its own node Arena and message
// Arena and is the only caller of Alloc on them, so no synchronization
// is needed on the hot allocation path.
type Arena[T any] struct {
	chunkBytes int
	perChunk   int
	chunks     [][]T
	next       int
}

// New creates an Arena that hands out zero-valued T values in chunks of
// chunkBytes (rounded down to a whole number of slots); the first chunk
// is mapped eagerly, matching original_source/node.c's init_pool.
func New[T any](chunkBytes int) *Arena[T] {
	var zero T
	size := int(unsafe.Sizeof(zero))
	cmn.Assertf(size > 0, "arena: zero-sized element type")
	perChunk := chunkBytes / size
	cmn.Assertf(perChunk > 0, "arena: chunk size %d too small for %d-byte element", chunkBytes, size)
	a := &Arena[T]{chunkBytes: chunkBytes, perChunk: perChunk}
	a.grow()
	return a
}

func (a *Arena[T]) grow() {
	buf, err := unix.Mmap(-1, 0, a.chunkBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	cmn.AssertNoErr(err)
	slots := unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), a.perChunk)
	a.chunks = append(a.chunks, slots)
}

// Alloc returns a Ref to a freshly zero-valued T slot. When the current
// chunk is exhausted a new chunk is mapped and appended to the chunk
// list (original_source/node.c's alloc_node growth path).
func (a *Arena[T]) Alloc() Ref {
	chunkIdx := a.next / a.perChunk
	if chunkIdx >= len(a.chunks) {
		a.grow()
	}
	slot := a.next
	a.next++
	return Ref(slot + 1) // +1 so Ref(0) can mean "none"
}

// AllocPtr allocates a slot and returns it directly as a pointer, for
// callers (the MPSC queue) that need to thread it through an intrusive
// linked list rather than address it by Ref.
func (a *Arena[T]) AllocPtr() *T {
	return a.Get(a.Alloc())
}

// Get dereferences a Ref returned by this same Arena. The returned
// pointer is valid until Destroy.
func (a *Arena[T]) Get(ref Ref) *T {
	idx := int(ref) - 1
	chunkIdx, slot := idx/a.perChunk, idx%a.perChunk
	return &a.chunks[chunkIdx][slot]
}

// Len reports how many slots have been handed out so far.
func (a *Arena[T]) Len() int { return a.next }

// Destroy unmaps every chunk. Pointers and Refs obtained from this
// Arena must not be used afterward.
func (a *Arena[T]) Destroy() {
	for _, chunk := range a.chunks {
		if len(chunk) == 0 {
			continue
		}
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&chunk[0])), a.chunkBytes)
		cmn.AssertNoErr(unix.Munmap(buf))
	}
	a.chunks = nil
}
