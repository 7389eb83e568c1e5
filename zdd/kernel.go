// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package zdd implements a Zero-suppressed Decision Diagram engine,
// structurally the sibling of the root dd package (same node pool, unique
// table, operation cache and garbage collection idiom) but without
// complement edges, and with the ZDD reduction rule in place of the BDD one:
// a node whose high branch is the empty family collapses to its low branch.
// A ZDD node represents a family of sets rather than a Boolean function;
// the two constants are the empty family (no sets at all) and the base
// family (the family containing only the empty set).
package zdd

import "github.com/pkg/errors"

const _MAXVAR int32 = 0x1FFFFF

const _MAXREFCOUNT int32 = 0x3FF

const _MINFREENODES int = 20

const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("unable to free memory or resize the node pool")
var errResize = errors.New("should resize caches")
var errReset = errors.New("cache reset")

// Edge is the internal, tagged representation of a node reference: a plain
// index into the node pool, together with two reserved negative sentinels
// that poison every operation they flow through.
type Edge int

const (
	zeroEdge     Edge = 0
	oneEdge      Edge = 1
	errorEdge    Edge = -1
	overflowEdge Edge = -2
)

func (e Edge) index() int {
	return int(e)
}

func (e Edge) isSentinel() bool {
	return e < 0
}

func (e Edge) isConst() bool {
	return e == zeroEdge || e == oneEdge
}

func (e Edge) isZero() bool {
	return e == zeroEdge
}

func (e Edge) isOne() bool {
	return e == oneEdge
}

// zddnode is the fixed-shape record stored in the node pool. hash and next
// are overloaded: hash is the bucket head while the node is live, next is
// either the next entry in its hash bucket (live) or the next free slot
// (reclaimed).
type zddnode struct {
	level  int32
	low    Edge
	high   Edge
	refcou int32
	hash   int
	next   int
}
