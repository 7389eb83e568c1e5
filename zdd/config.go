// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import "go.uber.org/zap"

// configs stores the values of the different configurable parameters of a
// ZDD manager, mirroring the root dd package's configs.
type configs struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	logger          *zap.Logger
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = 2*varnum + 2
	c.logger = zap.NewNop()
	return c
}

// Option configures a ZDD manager; see New.
type Option func(*configs)

// Nodesize sets a preferred initial size for the node pool.
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

// Maxnodeincrease sets a limit on the growth of the node pool during a
// single resize.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection before a resize is triggered.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries in each operation cache.
func Cachesize(size int) Option {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio sets a ratio (%) so that the caches grow whenever the node pool
// is resized.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
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
