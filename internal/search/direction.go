package search

import (
	"github.com/Cytosine2020/HDAStar/internal/config"
	"github.com/Cytosine2020/HDAStar/internal/grid"
	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
)

// direction is one of the two concurrent frontiers (forward, from '@',
// or reverse, from '%'). Its grid is written only by its own workers and
// read continuously by the opposite direction's workers looking for a
// meeting - see internal/grid's doc comment.
type direction struct {
	name      string
	isForward bool

	maze *ioadapter.Maze
	grid *grid.Grid

	start, goal ioadapter.Point

	workers  []*Worker
	opposite *direction
}

func newDirection(name string, isForward bool, maze *ioadapter.Maze, start, goal ioadapter.Point) *direction {
	return &direction{
		name:      name,
		isForward: isForward,
		maze:      maze,
		grid:      grid.New(maze.Rows, maze.Cols),
		start:     start,
		goal:      goal,
	}
}

// buildWorkers populates d.workers with cfg.WorkersPerDir freshly
// constructed Workers, assigning each the next available global index
// from *nextGlobalID (the flat worker index shared by both directions
// that nodeid.ID packs into its top 32 bits) and advancing it.
func (d *direction) buildWorkers(cfg config.Config, nextGlobalID *int) {
	d.workers = make([]*Worker, cfg.WorkersPerDir)
	for i := range d.workers {
		d.workers[i] = newWorker(d, *nextGlobalID, cfg)
		*nextGlobalID++
	}
}
