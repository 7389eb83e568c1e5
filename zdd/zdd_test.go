// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlsiforge/dd/zdd"
)

func TestUnionIdentities(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(1)
	assert.True(t, z.Equal(z.Union(a, b), z.Union(b, a)))
	assert.True(t, z.Equal(z.Union(a, a), a))
	assert.True(t, z.Equal(z.Union(a, z.Zero()), a))
}

func TestIntersectionAndDifference(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(1)
	u := z.Union(a, b)
	// {a} ∩ ({a} ∪ {b}) == {a}
	assert.True(t, z.Equal(z.Intersection(a, u), a))
	// ({a} ∪ {b}) \ {b} == {a}
	assert.True(t, z.Equal(z.Difference(u, b), a))
	assert.True(t, z.Equal(z.Difference(a, a), z.Zero()))
	assert.True(t, z.Equal(z.Intersection(a, z.Zero()), z.Zero()))
}

func TestCofactors(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(1)
	u := z.Union(a, b)
	// cofactor0 w.r.t. item 0 drops every set containing it: {a} is removed.
	assert.True(t, z.Equal(z.Cofactor0(u, 0), b))
	// cofactor1 w.r.t. item 0 keeps the sets containing it, minus item 0:
	// {a} becomes the base family, {b} disappears entirely.
	assert.True(t, z.Equal(z.Cofactor1(u, 0), z.One()))
	assert.True(t, z.Equal(z.Cofactor1(u, 1), z.One()))
}

func TestCountAndSize(t *testing.T) {
	z, err := zdd.New(3)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(1)
	c := z.Ithvar(2)
	u := z.Union(z.Union(a, b), c)
	assert.Equal(t, int64(3), z.Count(u).Int64())
	assert.True(t, z.Size(u) >= 1)
	assert.Equal(t, int64(1), z.Count(z.One()).Int64())
	assert.Equal(t, int64(0), z.Count(z.Zero()).Int64())
}

func TestSupport(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(2)
	u := z.Union(a, b)
	assert.Equal(t, []int{0, 2}, z.Support(u))
}

func TestRootVarAndDecomp(t *testing.T) {
	z, err := zdd.New(3)
	require.NoError(t, err)
	a := z.Ithvar(0)
	assert.Equal(t, 0, z.RootVar(a))
	low, high := z.RootDecomp(a)
	assert.True(t, z.Equal(low, z.Zero()))
	assert.True(t, z.Equal(high, z.One()))
	assert.Equal(t, -1, z.RootVar(z.One()))
}

func TestRemapVar(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(1)
	u := z.Union(a, b)
	r, err := z.NewRemapper([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	res := z.RemapVar(u, r)
	// renaming 0<->1 on {0}∪{1} yields the same family back.
	assert.True(t, z.Equal(res, u))
}

func TestDumpRestoreRoundtrip(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	a := z.Ithvar(0)
	b := z.Ithvar(2)
	u := z.Union(a, b)

	var buf bytes.Buffer
	require.NoError(t, z.Dump(&buf, u))

	z2, err := zdd.New(1)
	require.NoError(t, err)
	roots, err := z2.Restore(&buf)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, int64(2), z2.Count(roots[0]).Int64())
}

func TestGC(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	u := z.Union(z.Ithvar(0), z.Ithvar(1))
	z.AddRef(u)
	z.GC()
	assert.Equal(t, int64(2), z.Count(u).Int64())
	z.DelRef(u)
}
