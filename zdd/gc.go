// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

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
// operation caches.
type Observer interface {
	OnSweepBegin()
}

// RegisterObserver adds an observer invoked at the start of every GC pass.
func (z *ZDD) RegisterObserver(o Observer) {
	z.observers = append(z.observers, o)
}

// EnableGC turns automatic garbage collection back on. GC is enabled by
// default; this only matters after a call to DisableGC.
func (z *ZDD) EnableGC() {
	z.gcdisabled = false
}

// DisableGC stops automatic GC from running inside makenode. Operations that
// would otherwise trigger a collection instead fail with OVERFLOW once the
// node pool is exhausted.
func (z *ZDD) DisableGC() {
	z.gcdisabled = true
}

// retnode wraps a freshly produced edge into an externally held Node,
// setting a finalizer so that the Go runtime drives reference counting once
// the handle becomes unreachable.
func (z *ZDD) retnode(e Edge) Node {
	if e.isSentinel() {
		n := e
		return &n
	}
	idx := e.index()
	n := e
	if idx > 1 && z.nodes[idx].refcou < _MAXREFCOUNT {
		z.nodes[idx].refcou++
		z.gcstat.setfinalizers++
		runtime.SetFinalizer(&n, z.finalizeNode)
	}
	return &n
}

func (z *ZDD) finalizeNode(n *Edge) {
	if (*n).isSentinel() {
		return
	}
	idx := (*n).index()
	if idx <= 1 {
		return
	}
	z.gcstat.calledfinalizers++
	if z.nodes[idx].refcou < _MAXREFCOUNT {
		z.nodes[idx].refcou--
	}
}

// AddRef increases the reference count on node n and returns n so calls can
// be chained. It never fails, even on a stale or constant node.
func (z *ZDD) AddRef(n Node) Node {
	if n == nil || (*n).isSentinel() {
		return n
	}
	idx := (*n).index()
	if idx <= 1 || idx >= len(z.nodes) {
		return n
	}
	if z.nodes[idx].low == errorEdge {
		return n
	}
	if z.nodes[idx].refcou < _MAXREFCOUNT {
		z.nodes[idx].refcou++
	}
	return n
}

// DelRef decreases the reference count on node n and returns n so calls can
// be chained. It never fails.
func (z *ZDD) DelRef(n Node) Node {
	if n == nil || (*n).isSentinel() {
		return n
	}
	idx := (*n).index()
	if idx <= 1 || idx >= len(z.nodes) {
		return n
	}
	if z.nodes[idx].low == errorEdge {
		return n
	}
	if z.nodes[idx].refcou <= 0 {
		return n
	}
	if z.nodes[idx].refcou < _MAXREFCOUNT {
		z.nodes[idx].refcou--
	}
	return n
}

// GC explicitly runs a garbage collection pass, regardless of the state of
// the node pool.
func (z *ZDD) GC() {
	z.gbc()
}

// gbc reclaims unused nodes, mirroring the root dd package's collector:
// observers run first, then every operation cache is swept of entries that
// reference a node about to be unlinked, and only then are unreachable
// nodes unlinked and recycled.
func (z *ZDD) gbc() {
	for _, o := range z.observers {
		o.OnSweepBegin()
	}
	z.gcstat.history = append(z.gcstat.history, gcpoint{
		nodes:            len(z.nodes),
		freenodes:        z.freenum,
		setfinalizers:    int(z.gcstat.setfinalizers),
		calledfinalizers: int(z.gcstat.calledfinalizers),
	})
	z.gcstat.setfinalizers = 0
	z.gcstat.calledfinalizers = 0

	for k := 0; k < len(z.nodes); k++ {
		if z.nodes[k].refcou > 0 {
			z.markrec(k)
		}
		z.nodes[k].hash = 0
	}
	for _, r := range z.refstack {
		if !r.isSentinel() {
			z.markrec(r.index())
		}
	}
	z.cachereset()

	z.freepos = 0
	z.freenum = 0
	for n := len(z.nodes) - 1; n > 1; n-- {
		if z.ismarked(n) && (z.nodes[n].low != errorEdge) {
			z.unmarknode(n)
			hash := z.ptrhash(n)
			z.nodes[n].next = z.nodes[hash].hash
			z.nodes[hash].hash = n
		} else if n > 1 {
			z.nodes[n].low = errorEdge
			z.nodes[n].next = z.freepos
			z.freepos = n
			z.freenum++
		}
	}
	z.logger.Debug("ran garbage collection")
}

func (z *ZDD) markrec(n int) {
	if n <= 1 || z.ismarked(n) || (z.nodes[n].low == errorEdge) {
		return
	}
	z.marknode(n)
	z.markrec(z.nodes[n].low.index())
	z.markrec(z.nodes[n].high.index())
}

func (z *ZDD) unmarkall() {
	for k := range z.nodes {
		if k <= 1 || !z.ismarked(k) || (z.nodes[k].low == errorEdge) {
			continue
		}
		z.unmarknode(k)
	}
}
