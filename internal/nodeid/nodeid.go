// Package nodeid packs a (worker index, arena.Ref) pair into a single
// uint64 so a grid cell or a node's parent pointer can name a node
// owned by any worker in a direction's pool, not just the caller's own
// arena - each direction's workers shard cell ownership by a hash of
// (x,y), so a parent chain routinely crosses worker-owned arenas.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package nodeid

import "github.com/Cytosine2020/HDAStar/internal/arena"

// ID identifies a node by the global index of the worker whose arena
// owns it and that arena's Ref for the node. The zero ID means "none":
// since arena.Ref 0 is itself reserved as "no reference", any packed ID
// with a zero Ref is invalid regardless of the worker field.
type ID uint64

// Pack combines a worker's global index and an arena.Ref into an ID.
func Pack(worker int, ref arena.Ref) ID {
	return ID(uint64(uint32(worker))<<32 | uint64(ref))
}

// Worker returns the global index of the owning worker.
func (id ID) Worker() int { return int(uint32(id >> 32)) }

// Ref returns the arena.Ref within the owning worker's arena.
func (id ID) Ref() arena.Ref { return arena.Ref(uint32(id)) }

// Valid reports whether id names an actual node.
func (id ID) Valid() bool { return id.Ref() != 0 }
