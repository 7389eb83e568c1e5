// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Node is a handle to a family of sets represented in a ZDD. Like the root
// dd package's Node, its lifetime is tracked with a finalizer so that
// holding one alive keeps the underlying node (and everything below it)
// alive across garbage collections.
type Node *Edge

// ZDD is a manager for a family of Zero-suppressed Decision Diagrams sharing
// a single node pool, unique table and set of operation caches. It mirrors
// the structure of the root dd.BDD manager, minus the complement-edge
// bookkeeping that has no ZDD counterpart.
type ZDD struct {
	nodes    []zddnode
	freenum  int
	freepos  int
	produced int

	refstack []Edge

	varnum int32
	single []Edge // [level] -> singleton family {id}

	extid   map[int]int32
	levelid []int

	minfreenodes    int
	maxnodesize     int
	maxnodeincrease int
	gcdisabled      bool

	setcache   *setcache
	cofaccache *cofaccache
	remapcache *remapcache

	uniqueAccess int
	uniqueChain  int
	uniqueHit    int
	uniqueMiss   int

	gcstat
	observers []Observer

	error  error
	logger *zap.Logger
}

// New returns a new ZDD manager with varnum initial variables (items).
// Additional variables can be introduced later through SetVarnum or on
// first use through Ithvar.
func New(varnum int, options ...Option) (*ZDD, error) {
	z := &ZDD{}
	if varnum < 1 || varnum > int(_MAXVAR) {
		z.logger = zap.NewNop()
		z.seterror("bad number of variables (%d)", varnum)
		return nil, z.error
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	z.logger = config.logger
	z.minfreenodes = config.minfreenodes
	z.maxnodesize = config.maxnodesize
	z.maxnodeincrease = config.maxnodeincrease

	nodesize := primeGte(config.nodesize)
	z.nodes = make([]zddnode, nodesize)
	for k := range z.nodes {
		z.nodes[k] = zddnode{low: errorEdge, next: k + 1}
	}
	z.nodes[nodesize-1].next = 0
	z.nodes[0] = zddnode{refcou: _MAXREFCOUNT, low: errorEdge}
	z.nodes[1] = zddnode{refcou: _MAXREFCOUNT, low: errorEdge}
	z.freepos = 2
	z.freenum = nodesize - 2

	z.extid = make(map[int]int32, varnum)
	z.levelid = make([]int, 0, varnum)
	z.single = make([]Edge, 0, varnum)
	z.refstack = make([]Edge, 0, 2*varnum+4)

	z.cacheinit(config)

	for k := 0; k < varnum; k++ {
		if _, err := z.newvar(k); err != nil {
			return nil, err
		}
	}
	z.logger.Debug("created manager", zap.Int("varnum", varnum))
	return z, nil
}

// Varnum returns the number of declared variables (items).
func (z *ZDD) Varnum() int {
	return int(z.varnum)
}

// SetVarnum grows the number of declared variables to num. Like the BDD
// manager, the variable table is append-only: it can only ever grow.
func (z *ZDD) SetVarnum(num int) error {
	if num < 1 || num > int(_MAXVAR) {
		z.seterror("bad number of variables (%d)", num)
		return z.error
	}
	for k := int(z.varnum); k < num; k++ {
		if _, err := z.newvar(k); err != nil {
			return err
		}
	}
	return nil
}

// Zero returns the empty family (the family containing no set at all).
func (z *ZDD) Zero() Node {
	return z.retnode(zeroEdge)
}

// One returns the base family, the family whose only member is the empty
// set.
func (z *ZDD) One() Node {
	return z.retnode(oneEdge)
}

func (z *ZDD) level(e Edge) int32 {
	return z.nodes[e.index()].level
}

func (z *ZDD) low(e Edge) Edge {
	return z.nodes[e.index()].low
}

func (z *ZDD) high(e Edge) Edge {
	return z.nodes[e.index()].high
}

// Low returns the family obtained from n by dropping every set that
// contains the top variable of n.
func (z *ZDD) Low(n Node) Node {
	if z.checkptr(n) != nil {
		return nil
	}
	if (*n).isConst() {
		return nil
	}
	return z.retnode(z.low(*n))
}

// High returns the family of sets obtained from n by keeping only the sets
// containing the top variable of n, and removing that variable from them.
func (z *ZDD) High(n Node) Node {
	if z.checkptr(n) != nil {
		return nil
	}
	if (*n).isConst() {
		return nil
	}
	return z.retnode(z.high(*n))
}

// RootVar returns the external variable (item) id of the topmost node of n,
// or -1 if n is a constant.
func (z *ZDD) RootVar(n Node) int {
	if z.checkptr(n) != nil {
		return -1
	}
	if (*n).isConst() {
		return -1
	}
	return z.Varid(int(z.level(*n)))
}

// RootDecomp splits n into its (cofactor0, cofactor1) pair with respect to
// its topmost item, equivalent to calling Low and High but in a single
// call. It returns nil, nil if n is a constant.
func (z *ZDD) RootDecomp(n Node) (Node, Node) {
	if z.checkptr(n) != nil {
		return nil, nil
	}
	if (*n).isConst() {
		return nil, nil
	}
	return z.Low(n), z.High(n)
}

func (z *ZDD) levelOrVarnum(e Edge) int32 {
	if e.isConst() {
		return z.varnum
	}
	return z.level(e)
}

// Count returns the number of sets in the family denoted by n, using
// arbitrary-precision arithmetic since the number of sets can be
// exponential in the number of variables.
func (z *ZDD) Count(n Node) *big.Int {
	if z.checkptr(n) != nil || (*n).isSentinel() {
		return big.NewInt(0)
	}
	memo := make(map[Edge]*big.Int)
	return z.countrec(*n, memo)
}

func (z *ZDD) countrec(n Edge, memo map[Edge]*big.Int) *big.Int {
	if n.isZero() {
		return big.NewInt(0)
	}
	if n.isOne() {
		return big.NewInt(1)
	}
	if res, ok := memo[n]; ok {
		return res
	}
	res := new(big.Int).Add(z.countrec(z.low(n), memo), z.countrec(z.high(n), memo))
	memo[n] = res
	return res
}

// Stats returns a human-readable report on the manager's node pool, garbage
// collection history and operation cache occupancy.
func (z *ZDD) Stats() string {
	res := "Impl.:      zdd\n"
	res += fmt.Sprintf("Varnum:     %d\n", z.varnum)
	res += fmt.Sprintf("Allocated:  %d  (%s)\n", len(z.nodes), humanSize(len(z.nodes), nodeByteSize))
	res += fmt.Sprintf("Produced:   %d\n", z.produced)
	r := (float64(z.freenum) / float64(len(z.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", z.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(z.nodes)-z.freenum, (100.0 - r))
	res += "==============\n"
	res += z.gcstats()
	res += "==============\n"
	res += z.setcache.String()
	res += z.cofaccache.String()
	res += z.remapcache.String()
	return res
}

func (z *ZDD) gcstats() string {
	res := fmt.Sprintf("# of GC:    %d\n", len(z.gcstat.history))
	allocated := int(z.gcstat.setfinalizers)
	reclaimed := int(z.gcstat.calledfinalizers)
	for _, g := range z.gcstat.history {
		allocated += g.setfinalizers
		reclaimed += g.calledfinalizers
	}
	res += fmt.Sprintf("Ext. refs:  %d\n", allocated)
	res += fmt.Sprintf("Reclaimed:  %d\n", reclaimed)
	return res
}
