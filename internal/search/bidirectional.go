package search

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Cytosine2020/HDAStar/internal/config"
	"github.com/Cytosine2020/HDAStar/internal/ioadapter"
	"github.com/Cytosine2020/HDAStar/internal/nodeid"
)

// Outcome is the result of one Bidirectional search: whether a path
// exists between the maze's two openings and, if so, its length in
// unit-cost cardinal steps.
type Outcome struct {
	Found  bool
	Length int
}

// Bidirectional runs the HDA* parallel bidirectional search over maze
// and, on success, marks the shortest path in place via
// maze.MarkPath. It spawns 2*cfg.WorkersPerDir worker goroutines (one
// pool per direction) and returns once every worker has observed the
// shared termination barrier open, mirroring the teacher's errgroup
// fan-out/join pattern (cluster/fs.Walk).
func Bidirectional(ctx context.Context, cfg config.Config, maze *ioadapter.Maze) (*Outcome, error) {
	fwd := newDirection("forward", true, maze, maze.ForwardStart, maze.ForwardGoal)
	rev := newDirection("reverse", false, maze, maze.ReverseStart, maze.ReverseGoal)
	fwd.opposite, rev.opposite = rev, fwd

	nextID := 0
	fwd.buildWorkers(cfg, &nextID)
	rev.buildWorkers(cfg, &nextID)

	sh := newShared()
	sh.workers = make([]*Worker, 0, len(fwd.workers)+len(rev.workers))
	sh.workers = append(sh.workers, fwd.workers...)
	sh.workers = append(sh.workers, rev.workers...)
	for _, w := range sh.workers {
		w.shared = sh
	}
	defer func() {
		for _, w := range sh.workers {
			w.destroy()
		}
	}()

	glog.Infof("hdastar: starting search, %d workers per direction, %dx%d maze", cfg.WorkersPerDir, maze.Cols, maze.Rows)

	fwd.workers[ownerOf(int32(fwd.start.X), int32(fwd.start.Y), len(fwd.workers))].seed(fwd.start)
	rev.workers[ownerOf(int32(rev.start.X), int32(rev.start.Y), len(rev.workers))].seed(rev.start)

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range sh.workers {
		w := w
		g.Go(func() error { return w.Run(gctx) })
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "hdastar: search")
	}

	if !sh.hasMeeting() {
		glog.Infof("hdastar: no path exists between the two openings")
		return &Outcome{Found: false}, nil
	}

	meeting, fwdID, revID := sh.snapshot()
	fwdPath := walk(sh, fwdID)
	revPath := walk(sh, revID)
	maze.MarkPath(meeting, fwdPath, revPath)

	length := int(sh.bestLen.Load())
	glog.Infof("hdastar: found path of length %d, meeting at (%d,%d)", length, meeting.X, meeting.Y)
	return &Outcome{Found: true, Length: length}, nil
}

// walk reconstructs the chain of cells from id back to its direction's
// start by following Node.Parent links across worker-owned arenas.
func walk(sh *shared, id nodeid.ID) []ioadapter.Point {
	var pts []ioadapter.Point
	for id.Valid() {
		w := sh.workers[id.Worker()]
		node := w.nodes.Get(id.Ref())
		pts = append(pts, ioadapter.Point{X: int(node.X), Y: int(node.Y)})
		id = node.Parent
	}
	return pts
}
