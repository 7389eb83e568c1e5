// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math"
	"unsafe"
)

// Hash functions

func _TRIPLE(a, b, c, length int) int {
	return _PAIR(c, _PAIR(a, b, length), length)
}

// _PAIR is a mapping function that maps (bijectively) a pair of integers
// into a unique integer then casts it into a value in the interval [0..len)
// using a modulo operation.
func _PAIR(a, b, length int) int {
	ua := uint64(uint32(a))
	ub := uint64(uint32(b))
	return int(((((ua + ub) * (ua + ub + 1)) / 2) + (ua)) % uint64(length))
}

// Hash value modifiers so several operator families can share the same
// table shape without their entries colliding.
const cacheidREPLACE int = 0x0
const cacheidEXIST int = 0x0
const cacheidAPPEX int = 0x3
const cacheidCOFACTOR int = 0x1
const cacheidCONSTRAIN int = 0x2

type data4n struct {
	res  Edge
	a, b Edge
	c    int
}

type data4ncache struct {
	ratio  int
	opHit  int // entries found in the caches
	opMiss int // entries not found in the caches
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

// data3ncache backs the single-argument caches (Replace, Isop...).
type data3ncache struct {
	ratio  int
	opHit  int
	opMiss int
	table  []data3n
}

type data3n struct {
	res Edge
	a   Edge
	c   int
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

// Setup and shutdown

func (b *BDD) cacheinit(c *configs) {
	size := 10000
	if c.cachesize != 0 {
		size = c.cachesize
	}
	size = primeGte(size)
	b.applycache = &applycache{}
	b.applycache.init(size, c.cacheratio)
	b.itecache = &itecache{}
	b.itecache.init(size, c.cacheratio)
	b.quantcache = &quantcache{}
	b.quantcache.init(size, c.cacheratio)
	b.quantset = make([]int32, c.varnum)
	b.quantsetID = 0
	b.appexcache = &appexcache{}
	b.appexcache.init(size, c.cacheratio)
	b.replacecache = &replacecache{}
	b.replacecache.init(size, c.cacheratio)
	b.cofaccache = &cofaccache{}
	b.cofaccache.init(size, c.cacheratio)
	b.isopcache = &isopcache{}
	b.isopcache.init(size, c.cacheratio)
}

func (b *BDD) cachereset() {
	b.applycache.reset()
	b.itecache.reset()
	b.quantcache.reset()
	b.appexcache.reset()
	b.replacecache.reset()
	b.cofaccache.reset()
	b.isopcache.reset()
}

func (b *BDD) cacheresize(nodesize int) {
	b.applycache.resize(nodesize)
	b.itecache.resize(nodesize)
	b.quantcache.resize(nodesize)
	b.appexcache.resize(nodesize)
	b.replacecache.resize(nodesize)
	b.cofaccache.resize(nodesize)
	b.isopcache.resize(nodesize)
}

//
// Quantification Cache
//

// quantset2cache takes a variable cube, similar to the ones generated with
// Makeset, and records its variables in the quantification cache.
func (b *BDD) quantset2cache(n Edge) error {
	if n.index() <= 0 {
		b.seterror("illegal variable set in quantification cache")
		return b.error
	}
	b.quantsetID++
	if b.quantsetID == math.MaxInt32 {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	for i := n; i.index() > 0; i = b.high(i) {
		b.quantset[b.level(i)] = b.quantsetID
		b.quantlast = b.level(i)
	}
	return nil
}

// The hash function for Apply is #(left, right, applycache.op).

type applycache struct {
	data4ncache
	op int // Current operation during an apply
}

func (bc *applycache) matchapply(left, right Edge) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(left), int(right), bc.op, len(bc.table))]
	if entry.a == left && entry.b == right && entry.c == bc.op {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *applycache) setapply(left, right, res Edge) Edge {
	bc.table[_TRIPLE(int(left), int(right), bc.op, len(bc.table))] = data4n{
		a: left, b: right, c: bc.op, res: res,
	}
	return res
}

func (bc applycache) String() string {
	res := fmt.Sprintf("== Apply cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// itecache caches the if-then-else operator; the hash function is #(f,g,h).

type itecache struct {
	data4ncache
}

func (bc *itecache) matchite(f, g, h Edge) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(f), int(g), int(h), len(bc.table))]
	if entry.a == f && entry.b == g && entry.c == int(h) {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *itecache) setite(f, g, h, res Edge) Edge {
	bc.table[_TRIPLE(int(f), int(g), int(h), len(bc.table))] = data4n{
		a: f, b: g, c: int(h), res: res,
	}
	return res
}

func (bc itecache) String() string {
	res := fmt.Sprintf("== ITE cache    %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// quantcache caches exist/forall/smooth results; the hash function is (n,
// varset, quantid).

type quantcache struct {
	data4ncache
	quantset   []int32
	quantsetID int32
	quantlast  int32
	id         int
}

func (bc *quantcache) matchquant(n, varset Edge) (Edge, bool) {
	entry := bc.table[_PAIR(int(n), int(varset), len(bc.table))]
	if entry.a == n && entry.b == varset && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *quantcache) setquant(n, varset, res Edge) Edge {
	bc.table[_PAIR(int(n), int(varset), len(bc.table))] = data4n{
		a: n, b: varset, c: bc.id, res: res,
	}
	return res
}

func (bc quantcache) String() string {
	res := fmt.Sprintf("== Quant cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// appexcache is a mix of the quant and apply caches, so several appex
// operators can share it; the hash function is #(left, right, id).

type appexcache struct {
	data4ncache
	op int
	id int
}

func (bc *appexcache) matchappex(left, right Edge) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(left), int(right), bc.id, len(bc.table))]
	if entry.a == left && entry.b == right && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *appexcache) setappex(left, right, res Edge) Edge {
	bc.table[_TRIPLE(int(left), int(right), bc.id, len(bc.table))] = data4n{
		a: left, b: right, c: bc.id, res: res,
	}
	return res
}

func (bc appexcache) String() string {
	res := fmt.Sprintf("== AppEx cache  %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// replacecache caches Replace(n); the hash function is simply n.

type replacecache struct {
	data3ncache
	id int
}

func (bc *replacecache) matchreplace(n Edge) (Edge, bool) {
	entry := bc.table[int(n)%len(bc.table)]
	if entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *replacecache) setreplace(n, res Edge) Edge {
	bc.table[int(n)%len(bc.table)] = data3n{a: n, c: bc.id, res: res}
	return res
}

func (bc replacecache) String() string {
	res := fmt.Sprintf("== Replace      %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data3n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// cofaccache backs Cofactor0, Cofactor1 and Constrain; the hash function is
// #(n, other, op) where op distinguishes the three operations.

type cofaccache struct {
	data4ncache
}

func (bc *cofaccache) matchcofac(n, other Edge, op int) (Edge, bool) {
	entry := bc.table[_TRIPLE(int(n), int(other), op, len(bc.table))]
	if entry.a == n && entry.b == other && entry.c == op {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *cofaccache) setcofac(n, other Edge, op int, res Edge) Edge {
	bc.table[_TRIPLE(int(n), int(other), op, len(bc.table))] = data4n{
		a: n, b: other, c: op, res: res,
	}
	return res
}

func (bc cofaccache) String() string {
	res := fmt.Sprintf("== Cofactor     %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data4n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}

// isopcache caches irredundant sum-of-products extraction; the hash function
// is simply n, like Replace.

type isopcache struct {
	data3ncache
}

func (bc *isopcache) matchisop(n Edge) (Edge, bool) {
	entry := bc.table[int(n)%len(bc.table)]
	if entry.a == n {
		bc.opHit++
		return entry.res, true
	}
	bc.opMiss++
	return errorEdge, false
}

func (bc *isopcache) setisop(n, res Edge) Edge {
	bc.table[int(n)%len(bc.table)] = data3n{a: n, res: res}
	return res
}

func (bc isopcache) String() string {
	res := fmt.Sprintf("== Isop         %d (%s)\n", len(bc.table), humanSize(len(bc.table), unsafe.Sizeof(data3n{})))
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", bc.opHit, (float64(bc.opHit)*100)/(float64(bc.opHit)+float64(bc.opMiss)))
	res += fmt.Sprintf(" Operator Miss: %d\n", bc.opMiss)
	return res
}
