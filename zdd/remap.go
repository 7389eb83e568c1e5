// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"fmt"
	"math"
)

var _REMAPID = 1

// Remapper is the type of association lists used to rename items inside a
// ZDD node, the set-family analogue of the root dd package's Replacer.
type Remapper interface {
	Remap(int32) (int32, bool)
	Id() int
}

type remapper struct {
	id    int
	image []int32
	last  int32
}

func (r *remapper) Remap(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *remapper) Id() int {
	return r.id
}

// NewRemapper returns a Remapper for renaming item oldvars[k] into
// newvars[k]. Both slices must have the same length, contain no duplicate,
// and hold values in [0..Varnum).
func (z *ZDD) NewRemapper(oldvars []int, newvars []int) (Remapper, error) {
	res := &remapper{}
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	if _REMAPID == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("too many remappers created")
	}
	res.id = _REMAPID
	_REMAPID++
	varnum := z.Varnum()
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("invalid variable in oldvars (%d)", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
		if int32(v) > res.last {
			res.last = int32(v)
		}
	}
	seen := make([]bool, varnum)
	for _, v := range newvars {
		if seen[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in newvars", v)
		}
		seen[v] = true
	}
	return res, nil
}

// RemapVar takes a Remapper and renames every item it maps inside n,
// rebuilding the family so it stays canonical under the new item ordering.
func (z *ZDD) RemapVar(n Node, r Remapper) Node {
	if z.checkptr(n) != nil {
		return z.seterror("wrong operand in call to RemapVar")
	}
	z.initref()
	z.pushref(*n)
	z.remapcache.id = r.Id()
	res := z.remap(*n, r)
	z.popref(1)
	return z.retnode(res)
}

func (z *ZDD) remap(n Edge, r Remapper) Edge {
	if n.isSentinel() || n.isConst() {
		return n
	}
	image, ok := r.Remap(z.level(n))
	if !ok {
		return n
	}
	if res, ok := z.remapcache.matchremap(n); ok {
		return res
	}
	low := z.pushref(z.remap(z.low(n), r))
	high := z.pushref(z.remap(z.high(n), r))
	res := z.correctify(image, low, high)
	z.popref(2)
	if res.isSentinel() {
		return res
	}
	return z.remapcache.setremap(n, res)
}

// correctify rebuilds a node at level, inserting it below any level of low
// or high that happens to be shallower than the renamed item's new
// position. A side whose top item is deeper than the split item holds no
// set containing that item, so it goes only into the low (item absent)
// branch of the split.
func (z *ZDD) correctify(level int32, low, high Edge) Edge {
	llvl, hlvl := z.levelOrVarnum(low), z.levelOrVarnum(high)
	if level < llvl && level < hlvl {
		res, _ := z.makenode(level, low, high)
		return res
	}
	if level == llvl || level == hlvl {
		z.seterror("error in remap: level (%d) clashes with low (%d) or high (%d)", level, llvl, hlvl)
		return errorEdge
	}
	switch {
	case llvl == hlvl:
		left := z.pushref(z.correctify(level, z.low(low), z.low(high)))
		right := z.pushref(z.correctify(level, z.high(low), z.high(high)))
		res, _ := z.makenode(llvl, left, right)
		z.popref(2)
		return res
	case llvl < hlvl:
		left := z.pushref(z.correctify(level, z.low(low), high))
		right := z.pushref(z.correctify(level, z.high(low), zeroEdge))
		res, _ := z.makenode(llvl, left, right)
		z.popref(2)
		return res
	default:
		left := z.pushref(z.correctify(level, low, z.low(high)))
		right := z.pushref(z.correctify(level, zeroEdge, z.high(high)))
		res, _ := z.makenode(hlvl, left, right)
		z.popref(2)
		return res
	}
}
