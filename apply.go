// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// initref, pushref and popref manage the refstack, a scratch area that keeps
// intermediate results of a recursive operator alive across a nested call to
// makenode that might trigger a garbage collection. Root handles protect
// values that escape to calling code; the refstack protects values that are
// still being assembled on the Go call stack.
func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(e Edge) Edge {
	b.refstack = append(b.refstack, e)
	return e
}

func (b *BDD) popref(count int) {
	b.refstack = b.refstack[:len(b.refstack)-count]
}

func constidx(e Edge) int {
	if e.isZero() {
		return 0
	}
	return 1
}

// constedge maps an opres truth-table entry (0 = false, 1 = true) to the
// constant edge it denotes: the Edge encoding is the reverse, oneEdge is 0
// and zeroEdge is 1.
func constedge(v Edge) Edge {
	if v == 1 {
		return oneEdge
	}
	return zeroEdge
}

// Not returns the negation of n. Because the complement bit lives in the
// edge itself, this is a constant-time operation: no recursion, no cache,
// no allocation.
func (b *BDD) Not(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Not")
	}
	return b.retnode((*n).not())
}

// Apply computes one of the ten binary boolean operators described by op on
// the functions denoted by n1 and n2.
func (b *BDD) Apply(n1, n2 Node, op Operator) Node {
	if b.checkptr(n1) != nil {
		return b.seterror("wrong operand in call to Apply %s(n1: ...)", op)
	}
	if b.checkptr(n2) != nil {
		return b.seterror("wrong operand in call to Apply %s(n2: ...)", op)
	}
	if int(op) >= len(opres) {
		return b.seterror("unauthorized operation (%s) in Apply", op)
	}
	b.applycache.op = int(op)
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	res := b.apply(*n1, *n2)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) apply(left, right Edge) Edge {
	if left.isSentinel() {
		return left
	}
	if right.isSentinel() {
		return right
	}
	switch Operator(b.applycache.op) {
	case OPand:
		if left == right {
			return left
		}
		if left.isZero() || right.isZero() {
			return zeroEdge
		}
		if left.isOne() {
			return right
		}
		if right.isOne() {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if left.isOne() || right.isOne() {
			return oneEdge
		}
		if left.isZero() {
			return right
		}
		if right.isZero() {
			return left
		}
	case OPxor:
		if left == right {
			return zeroEdge
		}
		if left.isZero() {
			return right
		}
		if right.isZero() {
			return left
		}
	case OPnand:
		if left.isZero() || right.isZero() {
			return oneEdge
		}
	case OPnor:
		if left.isOne() || right.isOne() {
			return zeroEdge
		}
	case OPimp:
		if left.isZero() {
			return oneEdge
		}
		if left.isOne() {
			return right
		}
		if right.isOne() {
			return oneEdge
		}
		if left == right {
			return oneEdge
		}
	case OPbiimp:
		if left == right {
			return oneEdge
		}
		if left.isOne() {
			return right
		}
		if right.isOne() {
			return left
		}
	case OPdiff:
		if left == right {
			return zeroEdge
		}
		if right.isOne() {
			return zeroEdge
		}
		if left.isZero() {
			return zeroEdge
		}
	case OPless:
		if left == right || left.isOne() {
			return zeroEdge
		}
		if left.isZero() {
			return right
		}
	case OPinvimp:
		if right.isZero() {
			return oneEdge
		}
		if right.isOne() {
			return left
		}
		if left.isOne() {
			return oneEdge
		}
		if left == right {
			return oneEdge
		}
	default:
		b.seterror("unauthorized operation (%s) in apply", Operator(b.applycache.op))
		return errorEdge
	}

	if left.isConst() && right.isConst() {
		return constedge(opres[b.applycache.op][constidx(left)][constidx(right)])
	}
	if res, ok := b.applycache.matchapply(left, right); ok {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res Edge
	var err error
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.apply(b.low(left), b.low(right)))
		high := b.pushref(b.apply(b.high(left), b.high(right)))
		res, err = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.pushref(b.apply(b.low(left), right))
		high := b.pushref(b.apply(b.high(left), right))
		res, err = b.makenode(leftlvl, low, high)
	default:
		low := b.pushref(b.apply(left, b.low(right)))
		high := b.pushref(b.apply(left, b.high(right)))
		res, err = b.makenode(rightlvl, low, high)
	}
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	_ = err
	return b.applycache.setapply(left, right, res)
}

// opcall runs fn with the applycache operator temporarily switched to op,
// restoring the previous operator on return. It lets operators such as
// Constrain and Isop reuse the boolean kernel (and/or/diff) internally
// without disturbing an in-flight Apply/AppEx call higher on the stack.
func (b *BDD) opcall(op Operator, fn func() Edge) Edge {
	old := b.applycache.op
	b.applycache.op = int(op)
	res := fn()
	b.applycache.op = old
	return res
}

func (b *BDD) andEdge(x, y Edge) Edge {
	return b.opcall(OPand, func() Edge { return b.apply(x, y) })
}

func (b *BDD) orEdge(x, y Edge) Edge {
	return b.opcall(OPor, func() Edge { return b.apply(x, y) })
}

func (b *BDD) diffEdge(x, y Edge) Edge {
	return b.opcall(OPdiff, func() Edge { return b.apply(x, y) })
}

// Ite computes the if-then-else operator (f & g) | (!f & h) in one pass,
// which is both cheaper and tighter than combining three calls to Apply.
func (b *BDD) Ite(f, g, h Node) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Ite (f)")
	}
	if b.checkptr(g) != nil {
		return b.seterror("wrong operand in call to Ite (g)")
	}
	if b.checkptr(h) != nil {
		return b.seterror("wrong operand in call to Ite (h)")
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) iteLow(p, q, r int32, n Edge) Edge {
	if p > q || p > r {
		return n
	}
	return b.low(n)
}

func (b *BDD) iteHigh(p, q, r int32, n Edge) Edge {
	if p > q || p > r {
		return n
	}
	return b.high(n)
}

func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

func (b *BDD) ite(f, g, h Edge) Edge {
	switch {
	case f.isOne():
		return g
	case f.isZero():
		return h
	case g == h:
		return g
	case g.isOne() && h.isZero():
		return f
	case g.isZero() && h.isOne():
		return f.not()
	}
	if f.isSentinel() {
		return f
	}
	if g.isSentinel() {
		return g
	}
	if h.isSentinel() {
		return h
	}
	if res, ok := b.itecache.matchite(f, g, h); ok {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.iteLow(p, q, r, f), b.iteLow(q, p, r, g), b.iteLow(r, p, q, h)))
	high := b.pushref(b.ite(b.iteHigh(p, q, r, f), b.iteHigh(q, p, r, g), b.iteHigh(r, p, q, h)))
	res, _ := b.makenode(min3(p, q, r), low, high)
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	return b.itecache.setite(f, g, h, res)
}

// Exist returns the existential quantification of n over the variables in
// varset (built with Makeset).
func (b *BDD) Exist(n, varset Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong node in call to Exist")
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to Exist")
	}
	if (*varset).isSentinel() {
		return b.retnode(*varset)
	}
	if (*varset).isConst() {
		return b.retnode(*n)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}
	b.quantcache.id = cacheidEXIST
	b.applycache.op = int(OPor)
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n, *varset)
	b.popref(2)
	return b.retnode(res)
}

// Smooth is an alias for Exist, kept for callers coming from the relational
// (cofactor/smoothing) vocabulary rather than the quantifier one.
func (b *BDD) Smooth(n, varset Node) Node {
	return b.Exist(n, varset)
}

// Forall returns the universal quantification of n over the variables in
// varset. It is defined as the de Morgan dual of Exist: !exist(!n, varset).
func (b *BDD) Forall(n, varset Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong node in call to Forall")
	}
	notN := b.Not(n)
	if b.checkptr(notN) != nil {
		return notN
	}
	res := b.Exist(notN, varset)
	if b.checkptr(res) != nil {
		return res
	}
	return b.Not(res)
}

func (b *BDD) quant(n, varset Edge) Edge {
	if n.isSentinel() {
		return n
	}
	if n.isConst() || b.level(n) > b.quantlast {
		return n
	}
	if res, ok := b.quantcache.matchquant(n, varset); ok {
		return res
	}
	low := b.pushref(b.quant(b.low(n), varset))
	high := b.pushref(b.quant(b.high(n), varset))
	var res Edge
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		var err error
		res, err = b.makenode(b.level(n), low, high)
		_ = err
	}
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	return b.quantcache.setquant(n, varset, res)
}

// AppEx computes exist(varset, Apply(n1, n2, op)) in a single bottom-up pass,
// which is considerably cheaper than quantifying after the fact. With op ==
// OPand this is the relational product of n1 and n2.
func (b *BDD) AppEx(n1, n2 Node, op Operator, varset Node) Node {
	if int(op) > int(OPnand) {
		return b.seterror("operator %s not supported in call to AppEx", op)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to AppEx")
	}
	if (*varset).isConst() {
		return b.Apply(n1, n2, op)
	}
	if b.checkptr(n1) != nil {
		return b.seterror("wrong operand in call to AppEx %s(left: ...)", op)
	}
	if b.checkptr(n2) != nil {
		return b.seterror("wrong operand in call to AppEx %s(right: ...)", op)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}
	b.applycache.op = int(OPor)
	b.appexcache.op = int(op)
	b.appexcache.id = (int(*varset) << 2) | b.appexcache.op
	b.quantcache.id = (b.appexcache.id << 3) | cacheidAPPEX
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	b.pushref(*varset)
	res := b.appquant(*n1, *n2, *varset)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) appquant(left, right, varset Edge) Edge {
	if left.isSentinel() {
		return left
	}
	if right.isSentinel() {
		return right
	}
	switch Operator(b.appexcache.op) {
	case OPand:
		if left.isZero() || right.isZero() {
			return zeroEdge
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left.isOne() {
			return b.quant(right, varset)
		}
		if right.isOne() {
			return b.quant(left, varset)
		}
	case OPor:
		if left.isOne() || right.isOne() {
			return oneEdge
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left.isZero() {
			return b.quant(right, varset)
		}
		if right.isZero() {
			return b.quant(left, varset)
		}
	case OPxor:
		if left == right {
			return zeroEdge
		}
		if left.isZero() {
			return b.quant(right, varset)
		}
		if right.isZero() {
			return b.quant(left, varset)
		}
	case OPnand:
		if left.isZero() || right.isZero() {
			return oneEdge
		}
	case OPnor:
		if left.isOne() || right.isOne() {
			return zeroEdge
		}
	default:
		b.seterror("unauthorized operation (%s) in AppEx", Operator(b.appexcache.op))
		return errorEdge
	}

	if left.isConst() && right.isConst() {
		return constedge(opres[b.appexcache.op][constidx(left)][constidx(right)])
	}
	if b.level(left) > b.quantlast && b.level(right) > b.quantlast {
		return b.opcall(Operator(b.appexcache.op), func() Edge { return b.apply(left, right) })
	}
	if res, ok := b.appexcache.matchappex(left, right); ok {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var low, high Edge
	var lvl int32
	switch {
	case leftlvl == rightlvl:
		lvl = leftlvl
		low = b.pushref(b.appquant(b.low(left), b.low(right), varset))
		high = b.pushref(b.appquant(b.high(left), b.high(right), varset))
	case leftlvl < rightlvl:
		lvl = leftlvl
		low = b.pushref(b.appquant(b.low(left), right, varset))
		high = b.pushref(b.appquant(b.high(left), right, varset))
	default:
		lvl = rightlvl
		low = b.pushref(b.appquant(left, b.low(right), varset))
		high = b.pushref(b.appquant(left, b.high(right), varset))
	}
	var res Edge
	if b.quantset[lvl] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		var err error
		res, err = b.makenode(lvl, low, high)
		_ = err
	}
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	return b.appexcache.setappex(left, right, res)
}

// Cofactor0 restricts n by setting variable id to false.
func (b *BDD) Cofactor0(n Node, id int) Node {
	return b.cofactorConst(n, id, false)
}

// Cofactor1 restricts n by setting variable id to true.
func (b *BDD) Cofactor1(n Node, id int) Node {
	return b.cofactorConst(n, id, true)
}

func (b *BDD) cofactorConst(n Node, id int, val bool) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Cofactor")
	}
	lvl, err := b.levelOf(id)
	if err != nil {
		return nil
	}
	op := 0
	if val {
		op = 1
	}
	b.initref()
	b.pushref(*n)
	res := b.cofactorrec(*n, lvl, op)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) cofactorrec(n Edge, lvl int32, op int) Edge {
	if n.isSentinel() || n.isConst() {
		return n
	}
	nlvl := b.level(n)
	if nlvl > lvl {
		return n
	}
	if nlvl == lvl {
		if op == 0 {
			return b.low(n)
		}
		return b.high(n)
	}
	if res, ok := b.cofaccache.matchcofac(n, Edge(lvl), op); ok {
		return res
	}
	low := b.pushref(b.cofactorrec(b.low(n), lvl, op))
	high := b.pushref(b.cofactorrec(b.high(n), lvl, op))
	res, _ := b.makenode(nlvl, low, high)
	b.popref(2)
	if res.isSentinel() {
		return res
	}
	return b.cofaccache.setcofac(n, Edge(lvl), op, res)
}

// Constrain computes the generalized cofactor of f with respect to c (the
// Coudert-Madre restrict operator): a function that agrees with f wherever c
// holds, chosen to be structurally simpler than f whenever that is possible.
// Restricting by the false constant is an ill-defined request and returns
// the ERROR sentinel rather than OVERFLOW, per the error-handling table.
func (b *BDD) Constrain(f, c Node) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Constrain (f)")
	}
	if b.checkptr(c) != nil {
		return b.seterror("wrong operand in call to Constrain (c)")
	}
	if (*c).isZero() {
		return b.retnode(errorEdge)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*c)
	res := b.constrain(*f, *c)
	b.popref(2)
	return b.retnode(res)
}

const cofacopConstrain = 2

func (b *BDD) constrain(f, c Edge) Edge {
	if f.isSentinel() {
		return f
	}
	if c.isSentinel() {
		return c
	}
	if c.isZero() {
		return errorEdge
	}
	if c.isOne() || f.isConst() {
		return f
	}
	if f == c {
		return oneEdge
	}
	if f == c.not() {
		return zeroEdge
	}
	if res, ok := b.cofaccache.matchcofac(f, c, cofacopConstrain); ok {
		return res
	}
	flvl, clvl := b.level(f), b.level(c)
	var res Edge
	switch {
	case flvl == clvl:
		cLow, cHigh := b.low(c), b.high(c)
		switch {
		case cLow.isZero():
			res = b.constrain(b.high(f), cHigh)
		case cHigh.isZero():
			res = b.constrain(b.low(f), cLow)
		default:
			lo := b.pushref(b.constrain(b.low(f), cLow))
			hi := b.pushref(b.constrain(b.high(f), cHigh))
			var err error
			res, err = b.makenode(flvl, lo, hi)
			_ = err
			b.popref(2)
		}
	case flvl < clvl:
		lo := b.pushref(b.constrain(b.low(f), c))
		hi := b.pushref(b.constrain(b.high(f), c))
		var err error
		res, err = b.makenode(flvl, lo, hi)
		_ = err
		b.popref(2)
	default:
		cLow, cHigh := b.low(c), b.high(c)
		switch {
		case cLow.isZero():
			res = b.constrain(f, cHigh)
		case cHigh.isZero():
			res = b.constrain(f, cLow)
		default:
			merged := b.orEdge(cLow, cHigh)
			res = b.constrain(f, merged)
		}
	}
	if res.isSentinel() {
		return res
	}
	return b.cofaccache.setcofac(f, c, cofacopConstrain, res)
}

// Isop extracts an irredundant sum-of-products cover of n, returned as a
// Node that denotes the same function. It follows Minato's recursive
// construction: at every level it first covers the part of each cofactor
// that the other cofactor does not allow, then covers what is left of both
// cofactors with terms that do not mention the splitting variable.
func (b *BDD) Isop(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Isop")
	}
	if res, ok := b.isopcache.matchisop(*n); ok {
		return b.retnode(res)
	}
	memo := make(map[[2]Edge]Edge)
	b.initref()
	b.pushref(*n)
	res := b.isop(*n, *n, memo)
	b.popref(1)
	if !res.isSentinel() {
		b.isopcache.setisop(*n, res)
	}
	return b.retnode(res)
}

func (b *BDD) isop(l, u Edge, memo map[[2]Edge]Edge) Edge {
	if l.isSentinel() {
		return l
	}
	if u.isSentinel() {
		return u
	}
	if l.isZero() {
		return zeroEdge
	}
	if u.isOne() {
		return oneEdge
	}
	key := [2]Edge{l, u}
	if res, ok := memo[key]; ok {
		return res
	}
	lvl := b.minlevel(l, u)
	l0, l1 := b.branchAt(l, lvl)
	u0, u1 := b.branchAt(u, lvl)
	c0 := b.isop(b.diffEdge(l0, u1), u0, memo)
	c1 := b.isop(b.diffEdge(l1, u0), u1, memo)
	shared := b.orEdge(b.diffEdge(l0, c0), b.diffEdge(l1, c1))
	cind := b.isop(shared, b.andEdge(u0, u1), memo)
	low := b.orEdge(c0, cind)
	high := b.orEdge(c1, cind)
	res, _ := b.makenode(lvl, low, high)
	if !res.isSentinel() {
		memo[key] = res
	}
	return res
}

// minlevel returns the shallower of the two levels of a and b, treating a
// constant as infinitely deep.
func (b *BDD) minlevel(x, y Edge) int32 {
	lx, ly := b.levelOrVarnum(x), b.levelOrVarnum(y)
	if lx < ly {
		return lx
	}
	return ly
}

// branchAt returns the (low, high) cofactors of e at lvl: e itself on both
// sides if e's level is deeper than lvl (e does not depend on the variable
// at lvl), its own children otherwise.
func (b *BDD) branchAt(e Edge, lvl int32) (Edge, Edge) {
	if e.isConst() || b.level(e) != lvl {
		return e, e
	}
	return b.low(e), b.high(e)
}

// Support returns the cube (conjunction of positive literals) of every
// variable that n actually depends on.
func (b *BDD) Support(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Support")
	}
	if (*n).isConst() {
		return b.retnode(oneEdge)
	}
	seen := make(map[int]bool)
	levels := make(map[int32]bool)
	var walk func(e Edge)
	walk = func(e Edge) {
		if e.isSentinel() || e.isConst() {
			return
		}
		idx := e.index()
		if seen[idx] {
			return
		}
		seen[idx] = true
		levels[b.level(e)] = true
		walk(b.low(e))
		walk(b.high(e))
	}
	walk(*n)
	sorted := make([]int32, 0, len(levels))
	for lv := range levels {
		sorted = append(sorted, lv)
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	res := oneEdge
	for i := len(sorted) - 1; i >= 0; i-- {
		var err error
		res, err = b.makenode(sorted[i], zeroEdge, res)
		if err != nil && res.isSentinel() {
			return b.seterror("cannot build support cube")
		}
	}
	return b.retnode(res)
}

// Size returns the number of unique nodes in the support DAG of n (0 for a
// constant).
func (b *BDD) Size(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Size")
		return 0
	}
	if (*n).isConst() {
		return 0
	}
	count := 0
	b.markrec((*n).index())
	for k := 1; k < len(b.nodes); k++ {
		if b.ismarked(k) {
			count++
		}
	}
	b.unmarkall()
	return count
}

// OnePath returns one satisfying path of n, represented as the conjunction
// (cube) of the literals visited along that path. It always follows the
// high branch when available, matching the reference onepath() walk.
func (b *BDD) OnePath(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to OnePath")
	}
	res := b.onepath(*n)
	return b.retnode(res)
}

func (b *BDD) onepath(e Edge) Edge {
	if e.isSentinel() || e.isOne() {
		return e
	}
	if e.isZero() {
		b.seterror("no satisfying path in call to OnePath")
		return errorEdge
	}
	lvl := b.level(e)
	low, high := b.low(e), b.high(e)
	var res Edge
	var err error
	if high.isZero() {
		chd := b.onepath(low)
		res, err = b.makenode(lvl, chd, zeroEdge)
	} else {
		chd := b.onepath(high)
		res, err = b.makenode(lvl, zeroEdge, chd)
	}
	_ = err
	return res
}

// ShortestOnePath returns a satisfying path of n with as few positive
// literals (variables set to true) as possible; negative literals on the
// path are not counted.
func (b *BDD) ShortestOnePath(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to ShortestOnePath")
	}
	memo := make(map[Edge]Edge)
	res := b.spStep(*n, memo)
	return b.retnode(res)
}

func (b *BDD) spStep(e Edge, memo map[Edge]Edge) Edge {
	if e.isOne() {
		return oneEdge
	}
	if e.isZero() {
		return zeroEdge
	}
	if e.isSentinel() {
		return e
	}
	if res, ok := memo[e]; ok {
		return res
	}
	low := b.spStep(b.low(e), memo)
	high := b.spStep(b.high(e), memo)
	llen := b.spLen(low)
	hlen := b.spLen(high)
	if hlen != -1 && llen > hlen+1 {
		low = zeroEdge
	} else if llen != -1 && llen <= hlen+1 {
		high = zeroEdge
	}
	res, _ := b.makenode(b.level(e), low, high)
	memo[e] = res
	return res
}

// spLen returns the number of positive literals on the path to the true
// terminal in the already-computed shortest-path cube e, or -1 if e is the
// false constant (no such path).
func (b *BDD) spLen(e Edge) int {
	if e.isZero() {
		return -1
	}
	length := 0
	for !e.isOne() {
		low := b.low(e)
		if low.isZero() {
			length++
			e = b.high(e)
		} else {
			e = low
		}
	}
	return length
}

// ShortestOnePathLen returns the length of the shortest satisfying path of
// n, where the length counts only the then-branches taken (the variables set
// to true); else-branches add nothing.
func (b *BDD) ShortestOnePathLen(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to ShortestOnePathLen")
		return 0
	}
	memo := make(map[Edge]int)
	res := b.splStep(*n, memo)
	if res < 0 {
		return 0
	}
	return res
}

func (b *BDD) splStep(e Edge, memo map[Edge]int) int {
	if e.isOne() {
		return 0
	}
	if e.isZero() {
		return -1
	}
	if res, ok := memo[e]; ok {
		return res
	}
	ans1 := b.splStep(b.low(e), memo)
	ans2 := b.splStep(b.high(e), memo)
	if ans2 != -1 {
		ans2++
	}
	var res int
	if ans1 != -1 && (ans2 == -1 || ans1 < ans2) {
		res = ans1
	} else {
		res = ans2
	}
	memo[e] = res
	return res
}
