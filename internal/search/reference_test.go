/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package search_test

import (
	"os"

	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
)

// referenceShortestPath is a plain single-threaded breadth-first search
// used only by tests, to check the HDA* engine's reported length against
// an obviously-correct baseline on the same 4-connected unit-cost grid.
// It has no production caller.
func referenceShortestPath(m *ioadapter.Maze, start, goal ioadapter.Point) (int, bool) {
	type cell struct{ x, y int }
	visited := make(map[cell]bool)
	queue := []cell{{start.X, start.Y}}
	dist := map[cell]int{{start.X, start.Y}: 0}
	visited[cell{start.X, start.Y}] = true

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.x == goal.X && cur.y == goal.Y {
			return dist[cur], true
		}
		for _, d := range dirs {
			nxt := cell{cur.x + d[0], cur.y + d[1]}
			if !m.InBounds(nxt.x, nxt.y) || visited[nxt] || m.At(nxt.x, nxt.y) == '#' {
				continue
			}
			visited[nxt] = true
			dist[nxt] = dist[cur] + 1
			queue = append(queue, nxt)
		}
	}
	return 0, false
}

func writeMazeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
