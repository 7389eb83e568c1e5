// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math"
	"unsafe"
)

// nodeByteSize is the footprint of a single node-pool slot, used for the
// human-readable figures reported by Stats.
var nodeByteSize = unsafe.Sizeof(bddnode{})

// checkptr validates that n is a live handle produced by this manager. Every
// public operator starts with this guard so that a stale or foreign Node
// never corrupts the node pool.
func (b *BDD) checkptr(n Node) error {
	if n == nil {
		return b.seterrorAsError("nil node")
	}
	idx := (*n).index()
	if (*n).isSentinel() {
		return nil
	}
	if idx < 0 || idx >= len(b.nodes) {
		return b.seterrorAsError("node reference (%d) out of range", idx)
	}
	if idx > 0 && b.nodes[idx].low == errorEdge {
		return b.seterrorAsError("stale node reference (%d)", idx)
	}
	return nil
}

// seterrorAsError is seterror without the nil Node coercion, for call sites
// that need the resulting error value directly.
func (b *BDD) seterrorAsError(format string, a ...interface{}) error {
	b.seterror(format, a...)
	return b.error
}

// humanSize formats a node-pool or cache table footprint as a short,
// human-readable byte count.
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

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].level & 0x200000) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].level |= 0x200000
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].level &= 0x1FFFFF
}

// ptrhash recomputes the bucket for an already-allocated node.
func (b *BDD) ptrhash(n int) int {
	return _TRIPLE(int(b.nodes[n].level), int(b.nodes[n].low), int(b.nodes[n].high), len(b.nodes))
}

// nodehash is the unique-table hash function, #(level, low, high).
func (b *BDD) nodehash(level int32, low, high Edge) int {
	return _TRIPLE(int(level), int(low), int(high), len(b.nodes))
}

// findOrInsert interns a (level, low, high) triple, allocating a new slot
// when no existing node matches. It never sees a complement bit on high:
// normalization happens one layer up, in makenode.
func (b *BDD) findOrInsert(level int32, low, high Edge) (Edge, error) {
	b.uniqueAccess++
	hash := b.nodehash(level, low, high)
	res := b.nodes[hash].hash
	for res != 0 {
		if b.nodes[res].level == level && b.nodes[res].low == low && b.nodes[res].high == high {
			b.uniqueHit++
			return mkedge(res, false), nil
		}
		res = b.nodes[res].next
		b.uniqueChain++
	}
	b.uniqueMiss++
	var err error
	if b.freepos == 0 {
		if b.gcdisabled {
			return overflowEdge, errMemory
		}
		b.gbc()
		err = errReset
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			err = b.noderesize()
			if err != errResize {
				return overflowEdge, errMemory
			}
			hash = b.nodehash(level, low, high)
		}
		if b.freepos == 0 {
			return overflowEdge, errMemory
		}
	}
	res = b.freepos
	b.freepos = b.nodes[b.freepos].next
	b.freenum--
	b.produced++
	b.nodes[res].level = level
	b.nodes[res].low = low
	b.nodes[res].high = high
	b.nodes[res].next = b.nodes[hash].hash
	b.nodes[hash].hash = res
	return mkedge(res, false), err
}

// makenode builds the canonical edge for (level, low, high), normalizing the
// BDD complement invariant: the high branch stored in the node pool never
// carries a complement bit, the bit is folded onto the returned edge instead.
func (b *BDD) makenode(level int32, low, high Edge) (Edge, error) {
	if low.isSentinel() {
		return low, nil
	}
	if high.isSentinel() {
		return high, nil
	}
	comp := high.comp()
	if comp {
		low = low.not()
		high = high.not()
	}
	if low == high {
		if comp {
			return low.not(), nil
		}
		return low, nil
	}
	e, err := b.findOrInsert(level, low, high)
	if e.isSentinel() {
		return e, err
	}
	if comp {
		return e.not(), err
	}
	return e, err
}

func (b *BDD) noderesize() error {
	oldsize := len(b.nodes)
	nodesize := oldsize
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	nodesize = primeLte(nodesize)
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]bddnode, nodesize)
	copy(b.nodes, tmp)
	for n := 0; n < oldsize; n++ {
		b.nodes[n].hash = 0
	}
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = bddnode{low: errorEdge, next: n + 1}
	}
	b.nodes[nodesize-1].next = 0

	b.freepos = 0
	b.freenum = 0
	for n := nodesize - 1; n > 0; n-- {
		if b.nodes[n].low != errorEdge {
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else {
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	b.logger.Debug("resized node pool")
	b.cacheresize(len(b.nodes))
	return errResize
}
