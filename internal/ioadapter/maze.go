// Package ioadapter is the external collaborator that memory-maps the
// maze source file, locates its two openings, and writes the shortest
// path back in place, bit-exact with the input except for the '*'
// markers. It generalizes original_source/maze.c's mmap-based reader:
// the file is mapped once, read-write, shared, and the same bytes are
// mutated and msync'd back rather than rewritten through a buffered
// writer.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package ioadapter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/Cytosine2020/HDAStar/internal/cmn"
)

const (
	wall    = '#'
	open    = ' '
	startCh = '@'
	goalCh  = '%'
	newline = '\n'
)

// Point is a single (x,y) grid coordinate, x = column, y = row.
type Point struct {
	X, Y int
}

// Maze is an opened, memory-mapped maze source file. ForwardStart/Goal
// and ReverseStart/Goal are the four coordinates §6 of the design names:
// each direction's start is the interior cell neighboring its opening,
// each direction's goal is the *other* direction's raw opening
// coordinate (used only as a heuristic target, since the opening itself
// is walled off for the duration of the search).
type Maze struct {
	Rows, Cols int

	ForwardStart, ForwardGoal Point
	ReverseStart, ReverseGoal Point

	file      *os.File
	data      []byte
	lineStart []int // byte offset of column 0 of row y, for y in [0,Rows)

	openA, openB Point // original '@' and '%' cell coordinates, restored on Close
}

// Open memory-maps path read-write/shared, parses the header and scans
// the grid once for the two openings (mirroring maze.c's single
// row/column scan that builds the node array and records start/goal as
// it goes), then walls off both openings for the duration of the search.
func Open(path string) (*Maze, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open maze file")
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat maze file")
	}
	size := int(st.Size())
	if size == 0 {
		f.Close()
		return nil, errors.New("maze file is empty")
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap maze file")
	}

	m := &Maze{file: f, data: data}
	if err := m.parse(); err != nil {
		unix.Munmap(data)
		f.Close()
		return nil, err
	}

	m.wallOff(m.openA)
	m.wallOff(m.openB)
	m.ForwardStart = Point{m.openA.X + 1, m.openA.Y}
	m.ForwardGoal = m.openB
	m.ReverseStart = Point{m.openB.X - 1, m.openB.Y}
	m.ReverseGoal = m.openA

	return m, nil
}

func (m *Maze) parse() error {
	headerEnd := bytes.IndexByte(m.data, newline)
	if headerEnd < 0 {
		return errors.New("maze file: missing header line")
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(m.data[:headerEnd]), "%d %d", &rows, &cols); err != nil {
		return errors.Wrap(err, "maze file: malformed header")
	}
	if rows <= 0 || cols <= 0 {
		return errors.Errorf("maze file: invalid dimensions %dx%d", rows, cols)
	}
	m.Rows, m.Cols = rows, cols

	bodyStart := headerEnd + 1
	want := bodyStart + rows*(cols+1)
	if len(m.data) < want {
		return errors.Errorf("maze file: truncated body, want %d bytes got %d", want, len(m.data))
	}

	m.lineStart = make([]int, rows)
	foundA, foundB := false, false
	for y := 0; y < rows; y++ {
		off := bodyStart + y*(cols+1)
		m.lineStart[y] = off
		if m.data[off+cols] != newline {
			return errors.Errorf("maze file: row %d not newline-terminated", y)
		}
		for x := 0; x < cols; x++ {
			switch m.data[off+x] {
			case startCh:
				m.openA = Point{x, y}
				foundA = true
			case goalCh:
				m.openB = Point{x, y}
				foundB = true
			case wall, open:
				// nothing to record
			default:
				return errors.Errorf("maze file: invalid character %q at (%d,%d)", m.data[off+x], x, y)
			}
		}
	}
	if !foundA || !foundB {
		return errors.New("maze file: missing '@' or '%' opening")
	}
	return nil
}

// InBounds reports whether (x,y) names a cell within the maze's grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.Cols && y >= 0 && y < m.Rows
}

func (m *Maze) offset(x, y int) int { return m.lineStart[y] + x }

func (m *Maze) wallOff(p Point) { m.data[m.offset(p.X, p.Y)] = wall }

// At returns the character at (x,y); the two openings read as '#' for
// the duration of the search (see wallOff above).
func (m *Maze) At(x, y int) byte {
	return m.data[m.offset(x, y)]
}

// MarkPath writes '*' at the meeting cell and along every cell named in
// fwdAncestors and revAncestors, skipping any cell that currently holds
// '@' or '%' (while the maze is open the openings read as '#'). Per §6,
// the meeting cell itself is written first, then the forward-grid
// ancestor chain, then the reverse-grid ancestor chain.
func (m *Maze) MarkPath(meeting Point, fwdAncestors, revAncestors []Point) {
	m.mark(meeting)
	for _, p := range fwdAncestors {
		m.mark(p)
	}
	for _, p := range revAncestors {
		m.mark(p)
	}
}

func (m *Maze) mark(p Point) {
	off := m.offset(p.X, p.Y)
	if m.data[off] == startCh || m.data[off] == goalCh {
		return
	}
	m.data[off] = '*'
}

// Close restores the two openings, flushes the mapping back to disk and
// releases the mapping and file descriptor.
func (m *Maze) Close() error {
	m.data[m.offset(m.openA.X, m.openA.Y)] = startCh
	m.data[m.offset(m.openB.X, m.openB.Y)] = goalCh

	if err := unix.Msync(m.data, unix.MS_SYNC); err != nil {
		return errors.Wrap(err, "msync maze file")
	}
	if err := unix.Munmap(m.data); err != nil {
		cmn.AssertNoErr(err) // unmapping our own mapping cannot fail short of a programmer error
	}
	if err := m.file.Close(); err != nil {
		return errors.Wrap(err, "close maze file")
	}
	return nil
}

// Strip rewrites every '*' in the file at path back to ' ', leaving '@'
// and '%' untouched. It is test-only support for the round-trip
// property in the design's testable-properties section and has no
// production caller.
func Strip(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return errors.Wrap(err, "open maze file")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "stat maze file")
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return errors.Wrap(err, "mmap maze file")
	}
	defer unix.Munmap(data)
	for i, b := range data {
		if b == '*' {
			data[i] = ' '
		}
	}
	return unix.Msync(data, unix.MS_SYNC)
}
