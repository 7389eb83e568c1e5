// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "github.com/pkg/errors"

// _MAXVAR is the maximal number of levels in a BDD. We reserve a handful of
// high bits of the (32 bits) level field for GC marks, so the usable range is
// smaller than the full int32 range.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick permanent nodes (constants and variables) in the node pool.
const _MAXREFCOUNT int32 = 0x3FF

// _MINFREENODES is the minimal percentage of nodes that must remain free
// after a garbage collection, or a resize is triggered.
const _MINFREENODES int = 20

// _DEFAULTMAXNODEINC bounds the number of nodes added to the pool in a single
// resize (about one million nodes).
const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("unable to free memory or resize the node pool")
var errResize = errors.New("should resize caches")
var errReset = errors.New("should reset caches")

// Edge is the tagged handle used internally to reference a node: the low bit
// is a complement attribute, the remaining bits index into the node pool.
// Two negative values are reserved as sentinels for a malformed operation
// (errorEdge) or an allocation failure (overflowEdge); both propagate in-band
// through every operator instead of panicking.
type Edge int

const (
	// oneEdge is the constant true edge: index 0, no complement.
	oneEdge Edge = 0
	// zeroEdge is the constant false edge: index 0, complemented.
	zeroEdge Edge = 1
	// errorEdge marks an internal invariant violation. It is a poison value:
	// every operator that consumes it returns it unchanged.
	errorEdge Edge = -1
	// overflowEdge marks an allocation failure (node pool or cache exhausted
	// under the configured limits). It propagates exactly like errorEdge.
	overflowEdge Edge = -2
)

func mkedge(index int, comp bool) Edge {
	e := Edge(index << 1)
	if comp {
		e |= 1
	}
	return e
}

func (e Edge) index() int { return int(e) >> 1 }

func (e Edge) comp() bool { return e&1 == 1 }

func (e Edge) isSentinel() bool { return e == errorEdge || e == overflowEdge }

func (e Edge) isConst() bool { return !e.isSentinel() && e.index() == 0 }

func (e Edge) isOne() bool { return e == oneEdge }

func (e Edge) isZero() bool { return e == zeroEdge }

// not returns the complement of e. It never allocates and never fails: it is
// the constant-time replacement for the teacher project's recursive Not.
func (e Edge) not() Edge {
	if e.isSentinel() {
		return e
	}
	return e ^ 1
}

// bddnode is the fixed-shape element of the node pool. Unused slots form an
// intrusive freelist through next (chained off low == -1 as a sentinel, and
// the pool reserves index 0 for the shared terminal).
type bddnode struct {
	level  int32 // variable level; high bit range reserved for GC marks
	low    Edge  // false branch
	high   Edge  // true branch, never complemented (BDD canonical form)
	refcou int32 // external (root) reference count
	hash   int   // head of the unique-table bucket chain starting at this slot
	next   int   // next slot in the same bucket chain, or the freelist
}
