// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// newvar introduces a fresh level for external variable id, appending it
// to the variable table and building its single node; the negative literal
// is the complement edge of that node. Levels
// are handed out in creation order: there is no reordering or sifting.
func (b *BDD) newvar(id int) (int32, error) {
	if lv, ok := b.extid[id]; ok {
		return lv, nil
	}
	lv := int32(len(b.levelid))
	if lv >= _MAXVAR {
		b.seterror("too many variables (%d)", lv)
		return 0, b.error
	}
	v1, err := b.makenode(lv, zeroEdge, oneEdge)
	if err != nil && v1.isSentinel() {
		b.seterror("cannot allocate new variable %d", id)
		return 0, b.error
	}
	b.nodes[v1.index()].refcou = _MAXREFCOUNT
	v0 := v1.not()

	b.extid[id] = lv
	b.levelid = append(b.levelid, id)
	b.varset = append(b.varset, [2]Edge{v0, v1})
	b.varnum = lv + 1
	if int(b.varnum) > len(b.quantset) {
		nset := make([]int32, b.varnum)
		copy(nset, b.quantset)
		b.quantset = nset
	}
	return lv, nil
}

// levelOf returns the level assigned to external variable id, auto-creating
// it the first time it is seen, per the "unsupported id" resolution in the
// variable management design.
func (b *BDD) levelOf(id int) (int32, error) {
	if lv, ok := b.extid[id]; ok {
		return lv, nil
	}
	return b.newvar(id)
}

// Ithvar returns the Node for the i'th variable, auto-creating it if i has
// not been seen before.
func (b *BDD) Ithvar(i int) Node {
	if i < 0 {
		b.seterror("bad variable index (%d)", i)
		return nil
	}
	lv, err := b.levelOf(i)
	if err != nil {
		return nil
	}
	return b.retnode(b.varset[lv][1])
}

// NIthvar returns the Node for the negation of the i'th variable.
func (b *BDD) NIthvar(i int) Node {
	if i < 0 {
		b.seterror("bad variable index (%d)", i)
		return nil
	}
	lv, err := b.levelOf(i)
	if err != nil {
		return nil
	}
	return b.retnode(b.varset[lv][0])
}

// Varid returns the external variable id assigned to level, or -1 if the
// level is out of range.
func (b *BDD) Varid(level int) int {
	if level < 0 || level >= len(b.levelid) {
		return -1
	}
	return b.levelid[level]
}

// Makeset returns a Node for the conjunction (the cube) of the positive
// literal of every variable in varset. It is such that
// Scanset(Makeset(varset)) == varset.
func (b *BDD) Makeset(varset []int) Node {
	res := oneEdge
	for i := len(varset) - 1; i >= 0; i-- {
		lv, err := b.levelOf(varset[i])
		if err != nil {
			return nil
		}
		var e error
		res, e = b.makenode(lv, zeroEdge, res)
		if e != nil && res.isSentinel() {
			b.seterror("cannot build variable set")
			return nil
		}
	}
	return b.retnode(res)
}

// Scanset returns the external variable ids found along the high branch of
// n, the dual of Makeset.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) != nil {
		return nil
	}
	res := []int{}
	for e := *n; e.index() > 0; e = b.high(e) {
		res = append(res, b.Varid(int(b.level(e))))
	}
	return res
}

// EnableDVO is a compatibility call: dynamic variable ordering is not
// implemented, so this call only writes a debug log entry. It keeps no
// state and never reorders levels.
func (b *BDD) EnableDVO() {
	b.logger.Debug("dynamic variable ordering requested but not implemented")
}

// DisableDVO is the inverse toggle of EnableDVO; both are no-ops.
func (b *BDD) DisableDVO() {
	b.logger.Debug("dynamic variable ordering disabled (already inactive)")
}
