// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"runtime"
)

// gcpoint is a snapshot of the manager state taken at the start of a garbage
// collection pass.
type gcpoint struct {
	nodes            int
	freenodes        int
	setfinalizers    int
	calledfinalizers int
}

// gcstat accumulates garbage collection history and external reference
// bookkeeping.
type gcstat struct {
	setfinalizers    uint64
	calledfinalizers uint64
	history          []gcpoint
}

// Observer is notified before a garbage collection pass begins sweeping the
// operation caches. Registering an observer never fails; it is purely an
// instrumentation hook (e.g. to flush an externally held cache of Node
// handles before they might be invalidated).
type Observer interface {
	OnSweepBegin()
}

// RegisterObserver adds an observer invoked at the start of every GC pass.
func (b *BDD) RegisterObserver(o Observer) {
	b.observers = append(b.observers, o)
}

// EnableGC turns automatic garbage collection back on. GC is enabled by
// default; this only matters after a call to DisableGC.
func (b *BDD) EnableGC() {
	b.gcdisabled = false
}

// DisableGC stops automatic GC from running inside makenode. Operations that
// would otherwise trigger a collection instead fail with OVERFLOW once the
// node pool is exhausted. This is an observable toggle only: it does not
// implement a parallel allocation strategy.
func (b *BDD) DisableGC() {
	b.gcdisabled = true
}

// retnode wraps a freshly produced edge into an externally held Node, setting
// a finalizer so that the Go runtime drives reference counting once the
// handle becomes unreachable, mirroring the piggyback-on-the-host-GC scheme.
func (b *BDD) retnode(e Edge) Node {
	if e.isSentinel() {
		n := e
		return &n
	}
	idx := e.index()
	n := e
	if idx > 0 && b.nodes[idx].refcou < _MAXREFCOUNT {
		b.nodes[idx].refcou++
		b.gcstat.setfinalizers++
		runtime.SetFinalizer(&n, b.finalizeNode)
	}
	return &n
}

func (b *BDD) finalizeNode(n *Edge) {
	if (*n).isSentinel() {
		return
	}
	idx := (*n).index()
	if idx == 0 {
		return
	}
	b.gcstat.calledfinalizers++
	if b.nodes[idx].refcou < _MAXREFCOUNT {
		b.nodes[idx].refcou--
	}
}

// AddRef increases the reference count on node n and returns n so calls can
// be chained. It never fails, even on a stale or constant node.
func (b *BDD) AddRef(n Node) Node {
	if n == nil || (*n).isSentinel() {
		return n
	}
	idx := (*n).index()
	if idx <= 0 || idx >= len(b.nodes) {
		return n
	}
	if b.nodes[idx].low == errorEdge {
		return n
	}
	if b.nodes[idx].refcou < _MAXREFCOUNT {
		b.nodes[idx].refcou++
	}
	return n
}

// DelRef decreases the reference count on node n and returns n so calls can
// be chained. It never fails.
func (b *BDD) DelRef(n Node) Node {
	if n == nil || (*n).isSentinel() {
		return n
	}
	idx := (*n).index()
	if idx <= 0 || idx >= len(b.nodes) {
		return n
	}
	if b.nodes[idx].low == errorEdge {
		return n
	}
	if b.nodes[idx].refcou <= 0 {
		return n
	}
	if b.nodes[idx].refcou < _MAXREFCOUNT {
		b.nodes[idx].refcou--
	}
	return n
}

// GC explicitly runs a garbage collection pass, regardless of the state of
// the node pool.
func (b *BDD) GC() {
	b.gbc()
}

// gbc reclaims unused nodes. It is invoked from makenode when the freelist is
// exhausted, or explicitly via GC. Observers run first, then every operation
// cache is swept of entries that reference a node about to be unlinked, and
// only then do we unlink and recycle the unreachable nodes: cache entries
// must never outlive the node they point to.
func (b *BDD) gbc() {
	for _, o := range b.observers {
		o.OnSweepBegin()
	}
	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:            len(b.nodes),
		freenodes:        b.freenum,
		setfinalizers:    int(b.gcstat.setfinalizers),
		calledfinalizers: int(b.gcstat.calledfinalizers),
	})
	b.gcstat.setfinalizers = 0
	b.gcstat.calledfinalizers = 0

	for k := 0; k < len(b.nodes); k++ {
		if b.nodes[k].refcou > 0 {
			b.markrec(k)
		}
		b.nodes[k].hash = 0
	}
	// we also mark the nodes still referenced from the refstack, so that a
	// collection triggered mid-recursion (e.g. deep inside apply) never
	// reclaims an intermediate result that a caller higher up the stack is
	// still holding onto.
	for _, r := range b.refstack {
		if !r.isSentinel() {
			b.markrec(r.index())
		}
	}
	// the caches are swept before any node is unlinked: a cache hit must
	// never point at a node that is about to be recycled.
	b.cachereset()

	b.freepos = 0
	b.freenum = 0
	for n := len(b.nodes) - 1; n > 0; n-- {
		if b.ismarked(n) && (b.nodes[n].low != errorEdge) {
			b.unmarknode(n)
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else if n > 0 {
			b.nodes[n].low = errorEdge
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	b.logger.Debug("ran garbage collection")
}

func (b *BDD) markrec(n int) {
	if n <= 0 || b.ismarked(n) || (b.nodes[n].low == errorEdge) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low.index())
	b.markrec(b.nodes[n].high.index())
}

func (b *BDD) unmarkall() {
	for k := range b.nodes {
		if k <= 0 || !b.ismarked(k) || (b.nodes[k].low == errorEdge) {
			continue
		}
		b.unmarknode(k)
	}
}
