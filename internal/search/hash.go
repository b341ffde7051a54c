package search

import (
	"encoding/binary"
	"hash/fnv"
)

// ownerOf computes which of a direction's n workers owns cell (x,y),
// per the design's hash-distributed cell ownership: ownership is a pure
// function of coordinates, so every worker can independently compute
// where to route a successor without any shared directory. FNV-1a is
// stdlib (hash/fnv) rather than a hand-rolled mix, per the rule against
// reinventing what the standard library already provides well.
func ownerOf(x, y int32, n int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(y))
	h := fnv.New32a()
	h.Write(buf[:])
	return int(h.Sum32() % uint32(n))
}

type offset struct{ dx, dy int32 }

// neighbors4 are the cardinal-direction unit moves, per the maze's
// 4-connected, unit-cost movement model.
var neighbors4 = [4]offset{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}
