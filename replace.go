// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math"
)

var _REPLACEID = 1

// Replacer is the type of association lists used to replace variables in a BDD
// node.
type Replacer interface {
	Replace(int32) (int32, bool)
	Id() int
}

type replacer struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the level of old variables to the level of new variables
	last  int32   // last index in the Replacer, to speed up computations
}

func (r *replacer) String() string {
	res := fmt.Sprintf("replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k != int(v) {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

func (r *replacer) Replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *replacer) Id() int {
	return r.id
}

// NewReplacer returns a Replacer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same length
// or if we find the same index twice in either of them. All values must be in
// [0..Varnum).
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (Replacer, error) {
	res := &replacer{}
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	if _REPLACEID == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("too many replacers created")
	}
	res.id = (_REPLACEID << 2) | cacheidREPLACE
	_REPLACEID++
	varnum := b.Varnum()
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
	for _, v := range newvars {
		if int(res.image[v]) != v {
			return nil, fmt.Errorf("variable in newvars (%d) also occur in oldvars", v)
		}
	}
	return res, nil
}

// Replace takes a Replacer and computes the result of substituting every
// variable it maps inside n. This implements the single-pass, level-to-level
// variable substitution; for substituting a variable with an arbitrary
// function instead of another variable, use Compose.
func (b *BDD) Replace(n Node, r Replacer) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Replace")
	}
	b.initref()
	b.pushref(*n)
	b.replacecache.id = r.Id()
	res := b.replace(*n, r)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) replace(n Edge, r Replacer) Edge {
	if n.isSentinel() || n.isConst() {
		return n
	}
	image, ok := r.Replace(b.level(n))
	if !ok {
		return n
	}
	if res, ok := b.replacecache.matchreplace(n); ok {
		return res
	}
	low := b.pushref(b.replace(b.low(n), r))
	high := b.pushref(b.replace(b.high(n), r))
	res := b.correctify(image, low, high)
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	return b.replacecache.setreplace(n, res)
}

// correctify rebuilds a node at level, inserting it below any level of low
// or high that happens to be shallower than the substituted variable's new
// position (Replace can move a variable past others in the ordering).
func (b *BDD) correctify(level int32, low, high Edge) Edge {
	llvl, hlvl := b.levelOrVarnum(low), b.levelOrVarnum(high)
	if level < llvl && level < hlvl {
		res, _ := b.makenode(level, low, high)
		return res
	}
	if level == llvl || level == hlvl {
		b.seterror("error in replace: level (%d) clashes with low (%d) or high (%d)", level, llvl, hlvl)
		return errorEdge
	}
	switch {
	case llvl == hlvl:
		left := b.pushref(b.correctify(level, b.low(low), b.low(high)))
		right := b.pushref(b.correctify(level, b.high(low), b.high(high)))
		res, _ := b.makenode(llvl, left, right)
		b.popref(2)
		return res
	case llvl < hlvl:
		left := b.pushref(b.correctify(level, b.low(low), high))
		right := b.pushref(b.correctify(level, b.high(low), high))
		res, _ := b.makenode(llvl, left, right)
		b.popref(2)
		return res
	default:
		left := b.pushref(b.correctify(level, low, b.low(high)))
		right := b.pushref(b.correctify(level, low, b.high(high)))
		res, _ := b.makenode(hlvl, left, right)
		b.popref(2)
		return res
	}
}

// Compose substitutes variable id inside n with the function g: the
// variable-to-BDD analogue of Replace's variable-to-variable substitution.
// It is implemented directly (rather than through correctify, which assumes
// its replacement targets are plain variables) following the textbook
// Shannon-expansion definition: compose(n, id, g) = ite(g, n{id<-1}, n{id<-0}).
func (b *BDD) Compose(n Node, id int, g Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Compose (n)")
	}
	if b.checkptr(g) != nil {
		return b.seterror("wrong operand in call to Compose (g)")
	}
	n1 := b.Cofactor1(n, id)
	if b.checkptr(n1) != nil {
		return n1
	}
	n0 := b.Cofactor0(n, id)
	if b.checkptr(n0) != nil {
		return n0
	}
	return b.Ite(g, n1, n0)
}
