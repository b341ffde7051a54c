// Package grid implements the dense per-direction (x,y) -> node mapping
// from original_source/maze.c's row-major node array, sized for
// constant-time index by y*cols+x. Cells are stored as raw uint64s
// accessed with sync/atomic rather than plain reads/writes: one
// direction's workers are the sole writers of their own Grid, but the
// *other* direction's workers read it continuously to detect meetings
// (§5's "read-shared" resource), so loads and stores need to be
// race-free without taking a lock on every neighbor check.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package grid

import "sync/atomic"

// Grid is a dense rows*cols array of opaque 64-bit cell values, where 0
// means "unoccupied". The packed value itself (which worker owns the
// node living there, and that worker's arena.Ref for it) is meaningful
// only to the search package; Grid just needs atomic get/set semantics.
type Grid struct {
	rows, cols int
	cells      []uint64
}

// New allocates a Grid for a rows x cols maze, all cells initially 0.
func New(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, cells: make([]uint64, rows*cols)}
}

func (g *Grid) index(x, y int) int { return y*g.cols + x }

// Get atomically loads the cell at (x,y).
func (g *Grid) Get(x, y int) uint64 {
	return atomic.LoadUint64(&g.cells[g.index(x, y)])
}

// Set atomically stores value into the cell at (x,y). Only the single
// writer direction may call this for a given (x,y).
func (g *Grid) Set(x, y int, value uint64) {
	atomic.StoreUint64(&g.cells[g.index(x, y)], value)
}

// Rows and Cols report the Grid's dimensions.
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
