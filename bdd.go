// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Node is a handle to an element of a BDD. It is the atomic unit of
// interaction with the outside world: every public operator consumes and
// returns Node values, while internally the manager works with bare Edge
// values. A Node's lifetime is tracked with a finalizer, so holding one
// alive keeps the underlying node (and everything below it) alive across
// garbage collections.
type Node *Edge

// BDD is a manager for a family of Binary Decision Diagrams sharing a single
// node pool, unique table, and set of operation caches.
type BDD struct {
	nodes    []bddnode
	freenum  int
	freepos  int
	produced int

	refstack []Edge

	varnum int32
	varset [][2]Edge // [level] -> {negative ithvar, positive ithvar}

	extid   map[int]int32 // external variable id -> level
	levelid []int         // level -> external variable id

	minfreenodes    int
	maxnodesize     int
	maxnodeincrease int
	mode            ManagerMode
	gcdisabled      bool

	applycache   *applycache
	itecache     *itecache
	quantcache   *quantcache
	appexcache   *appexcache
	replacecache *replacecache
	cofaccache   *cofaccache
	isopcache    *isopcache

	quantset   []int32
	quantsetID int32
	quantlast  int32

	uniqueAccess int
	uniqueChain  int
	uniqueHit    int
	uniqueMiss   int

	gcstat
	observers []Observer

	error  error
	logger *zap.Logger
}

// Set encapsulates access to a BDD manager and provides convenience
// operators built out of Apply/AppEx, for callers that prefer a
// method-chaining style over the raw operator kernel.
type Set struct {
	*BDD
}

// New returns a new BDD manager with varnum initial variables (levels 0
// through varnum-1 are pre-created; additional variables can be introduced
// later, either through SetVarnum or on first use through Ithvar/NIthvar).
//
// The initial number of nodes is not critical since the pool is resized
// whenever too few nodes remain free after a garbage collection, but it does
// affect the efficiency of early operations. Use Option values such as
// Nodesize or Cachesize to tune it. We return a nil manager and a non-nil
// error if varnum is out of range.
func New(varnum int, options ...Option) (*BDD, error) {
	b := &BDD{}
	if varnum < 1 || varnum > int(_MAXVAR) {
		b.logger = zap.NewNop()
		b.seterror("bad number of variables (%d)", varnum)
		return nil, b.error
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b.logger = config.logger
	b.mode = config.mode
	b.minfreenodes = config.minfreenodes
	b.maxnodesize = config.maxnodesize
	b.maxnodeincrease = config.maxnodeincrease

	nodesize := primeGte(config.nodesize)
	b.nodes = make([]bddnode, nodesize)
	for k := range b.nodes {
		b.nodes[k] = bddnode{low: errorEdge, next: k + 1}
	}
	b.nodes[nodesize-1].next = 0
	b.nodes[0] = bddnode{refcou: _MAXREFCOUNT, level: _MAXVAR, low: oneEdge, high: oneEdge}
	b.freepos = 1
	b.freenum = nodesize - 1

	b.extid = make(map[int]int32, varnum)
	b.levelid = make([]int, 0, varnum)
	b.varset = make([][2]Edge, 0, varnum)
	b.refstack = make([]Edge, 0, 2*varnum+4)

	b.cacheinit(config)

	for k := 0; k < varnum; k++ {
		if _, err := b.newvar(k); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("created manager", zap.Int("varnum", varnum))
	return b, nil
}

// Varnum returns the number of declared variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// SetVarnum grows the number of declared variables to num. It can only ever
// increase the variable count; shrinking it is not supported, matching the
// append-only level assignment used by the variable table.
func (b *BDD) SetVarnum(num int) error {
	if num < 1 || num > int(_MAXVAR) {
		b.seterror("bad number of variables (%d)", num)
		return b.error
	}
	for k := int(b.varnum); k < num; k++ {
		if _, err := b.newvar(k); err != nil {
			return err
		}
	}
	return nil
}

// True returns the Node for the constant true.
func (b *BDD) True() Node {
	return b.retnode(oneEdge)
}

// False returns the Node for the constant false.
func (b *BDD) False() Node {
	return b.retnode(zeroEdge)
}

// From returns the constant Node corresponding to v.
func (b *BDD) From(v bool) Node {
	if v {
		return b.True()
	}
	return b.False()
}

func (b *BDD) level(e Edge) int32 {
	return b.nodes[e.index()].level
}

func (b *BDD) low(e Edge) Edge {
	n := b.nodes[e.index()]
	if e.comp() {
		return n.low.not()
	}
	return n.low
}

func (b *BDD) high(e Edge) Edge {
	n := b.nodes[e.index()]
	if e.comp() {
		return n.high.not()
	}
	return n.high
}

// Low returns the false branch of n.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return nil
	}
	if (*n).isConst() {
		return nil
	}
	return b.retnode(b.low(*n))
}

// High returns the true branch of n.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) != nil {
		return nil
	}
	if (*n).isConst() {
		return nil
	}
	return b.retnode(b.high(*n))
}

// RootVar returns the external variable id of the topmost node of n, or -1
// if n is a constant.
func (b *BDD) RootVar(n Node) int {
	if b.checkptr(n) != nil {
		return -1
	}
	if (*n).isConst() {
		return -1
	}
	return b.Varid(int(b.level(*n)))
}

// RootDecomp splits n into its two Shannon cofactors with respect to its
// topmost variable, equivalent to calling Low and High but in a single
// call. It returns nil, nil if n is a constant.
func (b *BDD) RootDecomp(n Node) (Node, Node) {
	if b.checkptr(n) != nil {
		return nil, nil
	}
	if (*n).isConst() {
		return nil, nil
	}
	return b.Low(n), b.High(n)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, using arbitrary-precision arithmetic to avoid
// overflow with large variable counts.
func (b *BDD) Satcount(n Node) *big.Int {
	if b.checkptr(n) != nil {
		return big.NewInt(0)
	}
	if (*n).isZero() || (*n).isSentinel() {
		return big.NewInt(0)
	}
	size := new(big.Int).Lsh(big.NewInt(1), uint(b.level(*n)))
	count := b.satcountrec(*n)
	return new(big.Int).Mul(count, size)
}

func (b *BDD) satcountrec(n Edge) *big.Int {
	if n.isOne() {
		return big.NewInt(1)
	}
	if n.isZero() {
		return big.NewInt(0)
	}
	low, high := b.low(n), b.high(n)
	lw := new(big.Int).Lsh(big.NewInt(1), uint(b.levelOrVarnum(low)-b.level(n)-1))
	lw.Mul(lw, b.satcountrec(low))
	hw := new(big.Int).Lsh(big.NewInt(1), uint(b.levelOrVarnum(high)-b.level(n)-1))
	hw.Mul(hw, b.satcountrec(high))
	return lw.Add(lw, hw)
}

func (b *BDD) levelOrVarnum(e Edge) int32 {
	if e.isConst() {
		return b.varnum
	}
	return b.level(e)
}

// Stats returns a human-readable report on the manager's node pool, garbage
// collection history and operation cache occupancy.
func (b *BDD) Stats() string {
	res := "Impl.:      classic\n"
	res += fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d  (%s)\n", len(b.nodes), humanSize(len(b.nodes), nodeByteSize))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	res += "==============\n"
	res += b.gcstats()
	res += "==============\n"
	res += b.applycache.String()
	res += b.itecache.String()
	res += b.quantcache.String()
	res += b.appexcache.String()
	res += b.replacecache.String()
	res += b.cofaccache.String()
	res += b.isopcache.String()
	return res
}

func (b *BDD) gcstats() string {
	res := fmt.Sprintf("# of GC:    %d\n", len(b.gcstat.history))
	allocated := int(b.gcstat.setfinalizers)
	reclaimed := int(b.gcstat.calledfinalizers)
	for _, g := range b.gcstat.history {
		allocated += g.setfinalizers
		reclaimed += g.calledfinalizers
	}
	res += fmt.Sprintf("Ext. refs:  %d\n", allocated)
	res += fmt.Sprintf("Reclaimed:  %d\n", reclaimed)
	return res
}
