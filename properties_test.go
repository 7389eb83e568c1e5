// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInvariants exercises the algebraic laws every pair of handles built in
// the same manager must satisfy, independent of construction order.
func TestInvariants(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	f := bdd.Ithvar(0)
	g := bdd.Ithvar(1)
	h := bdd.Ithvar(2)

	// Involution.
	assert.True(t, bdd.Equal(bdd.Not(bdd.Not(f)), f))

	// Commutativity.
	assert.True(t, bdd.Equal(bdd.And(f, g), bdd.And(g, f)))
	assert.True(t, bdd.Equal(bdd.Or(f, g), bdd.Or(g, f)))
	assert.True(t, bdd.Equal(bdd.Apply(f, g, OPxor), bdd.Apply(g, f, OPxor)))

	// Associativity.
	assert.True(t, bdd.Equal(bdd.And(bdd.And(f, g), h), bdd.And(f, bdd.And(g, h))))
	assert.True(t, bdd.Equal(bdd.Or(bdd.Or(f, g), h), bdd.Or(f, bdd.Or(g, h))))
	fgxor := bdd.Apply(f, g, OPxor)
	assert.True(t, bdd.Equal(bdd.Apply(fgxor, h, OPxor), bdd.Apply(f, bdd.Apply(g, h, OPxor), OPxor)))

	// De Morgan.
	assert.True(t, bdd.Equal(bdd.Not(bdd.And(f, g)), bdd.Or(bdd.Not(f), bdd.Not(g))))

	// Shannon expansion of f with respect to every variable in its support.
	assert.True(t, bdd.Equal(f, bdd.Ite(bdd.Ithvar(0), bdd.Cofactor1(f, 0), bdd.Cofactor0(f, 0))))

	// Quantifier duality: forall(f,S) == not(exist(not(f),S)).
	vs := bdd.Makeset([]int{0})
	assert.True(t, bdd.Equal(bdd.Forall(f, vs), bdd.Not(bdd.Exist(bdd.Not(f), vs))))
}

// TestGCQuiescence checks that, once the only outstanding reference to a
// derived node is explicitly dropped, a GC pass reclaims it: the pool
// shrinks back down to exactly the permanent per-variable literal nodes
// (which never become garbage candidates; see newvar's _MAXREFCOUNT marking).
func TestGCQuiescence(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	f := bdd.Ithvar(0)
	g := bdd.Ithvar(1)
	prod := bdd.And(f, g)
	bdd.DelRef(prod)
	bdd.GC()
	count := 0
	bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	})
	assert.Equal(t, 2, count)
}

// TestOverflowMonotonicity checks that feeding an OVERFLOW operand through
// the operator kernel propagates OVERFLOW rather than silently recovering.
func TestOverflowMonotonicity(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	overflow := bdd.retnode(overflowEdge)
	f := bdd.Ithvar(0)
	assert.Equal(t, overflowEdge, *bdd.Apply(overflow, f, OPand))
	assert.Equal(t, overflowEdge, *bdd.Apply(f, overflow, OPor))
	assert.Equal(t, overflowEdge, *bdd.Not(overflow))
}

// TestScenarioE1 checks and(x, !x) == zero for a literal conjoined with its
// own negation.
func TestScenarioE1(t *testing.T) {
	bdd, err := New(1)
	require.NoError(t, err)
	a := bdd.Ithvar(0)
	na := bdd.NIthvar(0)
	assert.True(t, bdd.Equal(bdd.And(a, na), bdd.False()))
}

// TestScenarioE2 checks xor(x, x) == zero.
func TestScenarioE2(t *testing.T) {
	bdd, err := New(1)
	require.NoError(t, err)
	a := bdd.Ithvar(0)
	assert.True(t, bdd.Equal(bdd.Apply(a, a, OPxor), bdd.False()))
}

// TestScenarioE3 checks that ite(a,b,c) over three independent variables has
// size 3 (one node per level: a's own split node, reusing the existing b and
// c literal nodes as its two branches) and 4 minterms out of the 8 possible
// 3-variable assignments.
func TestScenarioE3(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Ite(a, b, c)
	assert.Equal(t, 3, bdd.Size(f))
	assert.Equal(t, int64(4), bdd.Satcount(f).Int64())
}

// TestScenarioE4 checks exist({a}, a & b) == b.
func TestScenarioE4(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)
	vs := bdd.Makeset([]int{0})
	assert.True(t, bdd.Equal(bdd.Exist(f, vs), b))
}

// thf3_2 builds the threshold function "at least 2 of {a,b,c} are true".
func thf3_2(bdd *BDD, a, b, c Node) Node {
	ab := bdd.And(a, b)
	ac := bdd.And(a, c)
	bc := bdd.And(b, c)
	return bdd.Or(ab, bdd.Or(ac, bc))
}

// TestScenarioE5 checks the threshold function thf(3,2) ("at least 2 of
// {a,b,c} are true"): of the 8 assignments to 3 Boolean variables, the 4
// with two or three bits set (011, 101, 110, 111) satisfy it, and its
// reduced BDD shares the literal-c node between its two branches down to 4
// unique nodes (one per variable plus the disjunction/conjunction split).
func TestScenarioE5(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := thf3_2(bdd, a, b, c)
	assert.Equal(t, int64(4), bdd.Satcount(f).Int64())
	assert.Equal(t, 4, bdd.Size(f))
}

// TestScenarioE6 dumps thf(3,2) and restores it in a fresh manager, checking
// that the restored edge has the same minterm count and root variable.
func TestScenarioE6(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := thf3_2(bdd, a, b, c)

	var buf bytes.Buffer
	require.NoError(t, bdd.Dump(&buf, f))

	fresh, err := New(1)
	require.NoError(t, err)
	roots, err := fresh.Restore(&buf)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, int64(4), fresh.Satcount(roots[0]).Int64())
	assert.Equal(t, 0, fresh.RootVar(roots[0]))
}

// TestDumpRestoreRoundtrip checks the general roundtrip property for an
// arbitrary non-error edge: dumping and restoring preserves the function.
func TestDumpRestoreRoundtrip(t *testing.T) {
	bdd, err := New(4)
	require.NoError(t, err)
	f := bdd.Or(bdd.And(bdd.Ithvar(0), bdd.Ithvar(1)), bdd.NIthvar(2))

	var buf bytes.Buffer
	require.NoError(t, bdd.Dump(&buf, f))

	fresh, err := New(1)
	require.NoError(t, err)
	roots, err := fresh.Restore(&buf)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, bdd.Satcount(f).String(), fresh.Satcount(roots[0]).String())
}

// TestAndOpOrOpXorOp checks the batched, min-heap-ordered operators agree
// with the plain left-to-right fold on the same operand list.
func TestAndOpOrOpXorOp(t *testing.T) {
	bdd, err := New(5)
	require.NoError(t, err)
	lits := []Node{bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3), bdd.Ithvar(4)}

	assert.True(t, bdd.Equal(bdd.AndOp(lits...), bdd.And(lits...)))
	assert.True(t, bdd.Equal(bdd.OrOp(lits...), bdd.Or(lits...)))

	var xorFold Node = bdd.False()
	for _, l := range lits {
		xorFold = bdd.Apply(xorFold, l, OPxor)
	}
	assert.True(t, bdd.Equal(bdd.XorOp(lits...), xorFold))

	assert.True(t, bdd.Equal(bdd.AndOp(), bdd.True()))
	assert.True(t, bdd.Equal(bdd.OrOp(), bdd.False()))
	assert.True(t, bdd.Equal(bdd.XorOp(), bdd.False()))
	assert.True(t, bdd.Equal(bdd.AndOp(lits[0]), lits[0]))
}
