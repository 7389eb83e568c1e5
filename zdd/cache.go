// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"fmt"
	"unsafe"
)

// Hash functions, identical in shape to the root dd package's.

func _TRIPLE(a, b, c, length int) int {
	return _PAIR(c, _PAIR(a, b, length), length)
}

func _PAIR(a, b, length int) int {
	ua := uint64(uint32(a))
	ub := uint64(uint32(b))
	return int(((((ua + ub) * (ua + ub + 1)) / 2) + (ua)) % uint64(length))
}

type data4n struct {
	res  Edge
	a, b Edge
	c    int
}

type data4ncache struct {
	ratio  int
	opHit  int
	opMiss int
	table  []data4n
}

func (bc *data4ncache) init(size, ratio int) {
	size = primeGte(size)
	bc.table = make([]data4n, size)
	bc.ratio = ratio
	bc.reset()
}

func (bc *data4ncache) resize(size int) {
	if bc.ratio > 0 {
		size = primeGte((size * bc.ratio) / 100)
		bc.table = make([]data4n, size)
	}
	bc.reset()
}

func (bc *data4ncache) reset() {
	for k := range bc.table {
		bc.table[k].a = errorEdge
	}
}

type data3n struct {
	res Edge
	a   Edge
	c   int
}

type data3ncache struct {
	ratio  int
	opHit  int
	opMiss int
	table  []data3n
}

func (bc *data3ncache) init(size, ratio int) {
	size = primeGte(size)
	bc.table = make([]data3n, size)
	bc.ratio = ratio
	bc.reset()
}

func (bc *data3ncache) resize(size int) {
	if bc.ratio > 0 {
		size = primeGte((size * bc.ratio) / 100)
		bc.table = make([]data3n, size)
	}
	bc.reset()
}

func (bc *data3ncache) reset() {
	for k := range bc.table {
		bc.table[k].a = errorEdge
	}
}

func (z *ZDD) cacheinit(c *configs) {
	size := 10000
	if c.cachesize != 0 {
		size = c.cachesize
	}
	size = primeGte(size)
	z.setcache = &setcache{}
	z.setcache.init(size, c.cacheratio)
	z.cofaccache = &cofaccache{}
	z.cofaccache.init(size, c.cacheratio)
	z.remapcache = &remapcache{}
	z.remapcache.init(size, c.cacheratio)
}

func (z *ZDD) cachereset() {
	z.setcache.reset()
	z.cofaccache.reset()
	z.remapcache.reset()
}

func (z *ZDD) cacheresize(nodesize int) {
	z.setcache.resize(nodesize)
	z.cofaccache.resize(nodesize)
	z.remapcache.resize(nodesize)
}

// setcache backs union/intersection/difference; the hash function is
// #(left, right, op).

type setcache struct {
	data4ncache
	op int
}

func (bc *setcache) matchset(left, right Edge) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(left), int(right), bc.op, len(bc.table))]
	if entry.a == left && entry.b == right && entry.c == bc.op {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *setcache) setset(left, right, res Edge) Edge {
	bc.table[_TRIPLE(int(left), int(right), bc.op, len(bc.table))] = data4n{
		a: left, b: right, c: bc.op, res: res,
	}
	return res
}

func (bc setcache) String() string {
	res := fmt.Sprintf("== Set ops      %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// cofaccache backs Cofactor0/Cofactor1; the hash function is #(n, level, op)
// where op distinguishes the polarity.

type cofaccache struct {
	data4ncache
}

func (bc *cofaccache) matchcofac(n Edge, lvl int32, op int) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(n), int(lvl), op, len(bc.table))]
	if entry.a == n && entry.b == Edge(lvl) && entry.c == op {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *cofaccache) setcofac(n Edge, lvl int32, op int, res Edge) Edge {
	bc.table[_TRIPLE(int(n), int(lvl), op, len(bc.table))] = data4n{
		a: n, b: Edge(lvl), c: op, res: res,
	}
	return res
}

func (bc cofaccache) String() string {
	res := fmt.Sprintf("== Cofactor     %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// remapcache caches RemapVar(n); the hash function is simply n, like the
// root dd package's replacecache.

type remapcache struct {
	data3ncache
	id int
}

func (bc *remapcache) matchremap(n Edge) (Edge, bool) {
	entry := bc.table[int(n)%len(bc.table)]
	if entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *remapcache) setremap(n, res Edge) Edge {
	bc.table[int(n)%len(bc.table)] = data3n{a: n, c: bc.id, res: res}
	return res
}

func (bc remapcache) String() string {
	res := fmt.Sprintf("== RemapVar     %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data3n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}
