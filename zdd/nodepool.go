// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"fmt"
	"math"
	"unsafe"
)

// nodeByteSize is the footprint of a single node-pool slot, used for the
// human-readable figures reported by Stats.
var nodeByteSize = unsafe.Sizeof(zddnode{})

// checkptr validates that n is a live handle produced by this manager.
func (z *ZDD) checkptr(n Node) error {
	if n == nil {
		return z.seterrorAsError("nil node")
	}
	idx := (*n).index()
	if (*n).isSentinel() {
		return nil
	}
	if idx < 0 || idx >= len(z.nodes) {
		return z.seterrorAsError("node reference (%d) out of range", idx)
	}
	if idx > 1 && z.nodes[idx].low == errorEdge {
		return z.seterrorAsError("stale node reference (%d)", idx)
	}
	return nil
}

func (z *ZDD) seterrorAsError(format string, a ...interface{}) error {
	z.seterror(format, a...)
	return z.error
}

func humanSize(count int, elemSize uintptr) string {
	bytes := float64(count) * float64(elemSize)
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	u := 0
	for bytes >= 1024 && u < len(units)-1 {
		bytes /= 1024
		u++
	}
	return fmt.Sprintf("%.3g %s", bytes, units[u])
}

func (z *ZDD) ismarked(n int) bool {
	return (z.nodes[n].level & 0x200000) != 0
}

func (z *ZDD) marknode(n int) {
	z.nodes[n].level |= 0x200000
}

func (z *ZDD) unmarknode(n int) {
	z.nodes[n].level &= 0x1FFFFF
}

// ptrhash recomputes the bucket for an already-allocated node.
func (z *ZDD) ptrhash(n int) int {
	return _TRIPLE(int(z.nodes[n].level), int(z.nodes[n].low), int(z.nodes[n].high), len(z.nodes))
}

// nodehash is the unique-table hash function, #(level, low, high).
func (z *ZDD) nodehash(level int32, low, high Edge) int {
	return _TRIPLE(int(level), int(low), int(high), len(z.nodes))
}

// findOrInsert interns a (level, low, high) triple, allocating a new slot
// when no existing node matches. The ZDD reduction rule (high == zero)
// is applied one layer up, in makenode.
func (z *ZDD) findOrInsert(level int32, low, high Edge) (Edge, error) {
	z.uniqueAccess++
	hash := z.nodehash(level, low, high)
	res := z.nodes[hash].hash
	for res != 0 {
		if z.nodes[res].level == level && z.nodes[res].low == low && z.nodes[res].high == high {
			z.uniqueHit++
			return Edge(res), nil
		}
		res = z.nodes[res].next
		z.uniqueChain++
	}
	z.uniqueMiss++
	var err error
	if z.freepos == 0 {
		if z.gcdisabled {
			return overflowEdge, errMemory
		}
		z.gbc()
		err = errReset
		if (z.freenum*100)/len(z.nodes) <= z.minfreenodes {
			err = z.noderesize()
			if err != errResize {
				return overflowEdge, errMemory
			}
			hash = z.nodehash(level, low, high)
		}
		if z.freepos == 0 {
			return overflowEdge, errMemory
		}
	}
	res = z.freepos
	z.freepos = z.nodes[z.freepos].next
	z.freenum--
	z.produced++
	z.nodes[res].level = level
	z.nodes[res].low = low
	z.nodes[res].high = high
	z.nodes[res].next = z.nodes[hash].hash
	z.nodes[hash].hash = res
	return Edge(res), err
}

// makenode builds the canonical edge for (level, low, high), applying the
// ZDD reduction rule: a node whose high branch is the empty family
// contributes nothing (there is no set that contains this variable), so it
// collapses to its low branch instead of being interned.
func (z *ZDD) makenode(level int32, low, high Edge) (Edge, error) {
	if low.isSentinel() {
		return low, nil
	}
	if high.isSentinel() {
		return high, nil
	}
	if high.isZero() {
		return low, nil
	}
	return z.findOrInsert(level, low, high)
}

func (z *ZDD) noderesize() error {
	oldsize := len(z.nodes)
	nodesize := oldsize
	if (oldsize >= z.maxnodesize) && (z.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if z.maxnodeincrease > 0 && nodesize > (oldsize+z.maxnodeincrease) {
		nodesize = oldsize + z.maxnodeincrease
	}
	if (nodesize > z.maxnodesize) && (z.maxnodesize > 0) {
		nodesize = z.maxnodesize
	}
	nodesize = primeLte(nodesize)
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := z.nodes
	z.nodes = make([]zddnode, nodesize)
	copy(z.nodes, tmp)
	for n := 0; n < oldsize; n++ {
		z.nodes[n].hash = 0
	}
	for n := oldsize; n < nodesize; n++ {
		z.nodes[n] = zddnode{low: errorEdge, next: n + 1}
	}
	z.nodes[nodesize-1].next = 0

	z.freepos = 0
	z.freenum = 0
	for n := nodesize - 1; n > 1; n-- {
		if z.nodes[n].low != errorEdge {
			hash := z.ptrhash(n)
			z.nodes[n].next = z.nodes[hash].hash
			z.nodes[hash].hash = n
		} else {
			z.nodes[n].next = z.freepos
			z.freepos = n
			z.freenum++
		}
	}
	z.logger.Debug("resized node pool")
	z.cacheresize(len(z.nodes))
	return errResize
}
