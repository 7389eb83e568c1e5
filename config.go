// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "go.uber.org/zap"

// ManagerMode selects between the two historical BDD manager flavors. Both
// values are accepted for API compatibility with the source this library is
// adapted from, but they select the very same implementation: see DESIGN.md
// for the rationale.
type ManagerMode int

const (
	// Classic is the default manager mode.
	Classic ManagerMode = iota
	// Modern is accepted for compatibility; behaviorally identical to Classic.
	Modern
)

// configs stores the values of the different configurable parameters of a BDD.
type configs struct {
	varnum          int // number of BDD variables
	nodesize        int // initial number of nodes in the pool
	cachesize       int // initial cache size (general)
	cacheratio      int // initial ratio (%) between cache size and node pool size, 0 if constant
	maxnodesize     int // maximum total number of nodes (0 if no limit)
	maxnodeincrease int // maximum number of nodes added to the pool at each resize (0 if no limit)
	minfreenodes    int // minimum percentage of free nodes that should remain after a GC
	mode            ManagerMode
	logger          *zap.Logger
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	// we build enough nodes to include all the variables in varset
	c.nodesize = 2*varnum + 2
	c.logger = zap.NewNop()
	return c
}

// Option configures a BDD manager; see New.
type Option func(*configs)

// Nodesize sets a preferred initial size for the node pool. The pool can grow
// during computation. By default we allocate enough nodes to include the two
// constants and the variables declared in the call to New.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize sets a limit on the number of nodes in the pool. An operation
// that would raise the pool above this limit returns the OVERFLOW edge
// instead. The default (0) means no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease sets a limit on the growth of the node pool during a single
// resize. Below this limit we typically double the size of the pool. The
// default is about one million nodes; zero removes the limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection before a resize is triggered. The default is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries in each operation cache. The
// default is 10 000.
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio sets a ratio (%) so that the caches grow whenever the node pool
// is resized: with a ratio of r we keep r available cache entries for every
// 100 slots in the node pool. The default (0) means the cache size is fixed.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Mode selects the manager flavor. Both Classic and Modern currently select
// the same implementation.
func Mode(m ManagerMode) Option {
	return func(c *configs) {
		c.mode = m
	}
}

// Logger attaches a structured logger used to report GC, resize and
// unique-table statistics. The default is a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(c *configs) {
		if l != nil {
			c.logger = l
		}
	}
}
