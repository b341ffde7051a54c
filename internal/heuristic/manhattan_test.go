/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package heuristic_test

import (
	"math/rand"
	"testing"

	"github.com/Cytosine2020/HDAStar/internal/heuristic"
	"github.com/Cytosine2020/HDAStar/internal/tassert"
)

func TestManhattanKnownValues(t *testing.T) {
	cases := []struct{ x1, y1, x2, y2, want int }{
		{0, 0, 0, 0, 0},
		{0, 0, 3, 4, 7},
		{3, 4, 0, 0, 7},
		{-2, -3, 2, 3, 10},
	}
	for _, c := range cases {
		got := heuristic.Manhattan(c.x1, c.y1, c.x2, c.y2)
		tassert.Errorf(t, got == c.want, "Manhattan(%d,%d,%d,%d) = %d, want %d", c.x1, c.y1, c.x2, c.y2, got, c.want)
	}
}

// TestManhattanAdmissibleOnUnitGrid checks the heuristic never exceeds
// the true 4-connected shortest-path length on an open grid (where the
// true distance always equals the Manhattan distance), across random
// endpoint pairs.
func TestManhattanAdmissibleOnUnitGrid(t *testing.T) {
	for i := 0; i < 1000; i++ {
		x1, y1 := rand.Intn(200)-100, rand.Intn(200)-100
		x2, y2 := rand.Intn(200)-100, rand.Intn(200)-100
		h := heuristic.Manhattan(x1, y1, x2, y2)
		trueDist := abs(x1-x2) + abs(y1-y2)
		tassert.Errorf(t, h == trueDist, "Manhattan not tight on open grid: got %d want %d", h, trueDist)
		tassert.Errorf(t, h >= 0, "Manhattan returned negative distance %d", h)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
