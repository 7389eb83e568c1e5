// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "container/heap"

// nodeHeap is a min-heap of Nodes ordered by Size, smallest first. Combining
// the two smallest operands at each step (rather than folding left to right)
// keeps the intermediate BDDs built by AndOp/OrOp/XorOp as small as possible,
// since a small operand combined early tends to stay small.
type nodeHeap struct {
	b     *BDD
	nodes []Node
}

func (h nodeHeap) Len() int { return len(h.nodes) }
func (h nodeHeap) Less(i, j int) bool {
	return h.b.Size(h.nodes[i]) < h.b.Size(h.nodes[j])
}
func (h nodeHeap) Swap(i, j int) { h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i] }
func (h *nodeHeap) Push(x interface{}) {
	h.nodes = append(h.nodes, x.(Node))
}
func (h *nodeHeap) Pop() interface{} {
	old := h.nodes
	n := len(old)
	x := old[n-1]
	h.nodes = old[:n-1]
	return x
}

// opOp builds a balanced evaluation tree over n by repeatedly applying op to
// the two smallest remaining operands (smallest-first min-heap ordering),
// which tends to produce much smaller intermediate results than a
// left-to-right fold whenever the operands' sizes vary widely.
func (b *BDD) opOp(n []Node, op Operator, identity Node) Node {
	switch len(n) {
	case 0:
		return identity
	case 1:
		return n[0]
	}
	h := &nodeHeap{b: b, nodes: append([]Node(nil), n...)}
	heap.Init(h)
	for h.Len() > 1 {
		x := heap.Pop(h).(Node)
		y := heap.Pop(h).(Node)
		heap.Push(h, b.Apply(x, y, op))
	}
	return h.nodes[0]
}

// AndOp returns the conjunction of every node in n, built bottom-up by
// repeatedly combining the two smallest remaining operands first. Use this
// instead of And for large batches where operand sizes vary widely: it
// holds down peak intermediate BDD size compared to a left-to-right fold.
func (b *BDD) AndOp(n ...Node) Node {
	return b.opOp(n, OPand, b.True())
}

// OrOp is the disjunctive counterpart of AndOp.
func (b *BDD) OrOp(n ...Node) Node {
	return b.opOp(n, OPor, b.False())
}

// XorOp is the exclusive-or counterpart of AndOp.
func (b *BDD) XorOp(n ...Node) Node {
	return b.opOp(n, OPxor, b.False())
}

// And returns the conjunction of every node in n. It returns True if n is
// empty.
func (b *BDD) And(n ...Node) Node {
	if len(n) == 0 {
		return b.True()
	}
	if len(n) == 1 {
		return n[0]
	}
	return b.Apply(n[0], b.And(n[1:]...), OPand)
}

// Or returns the disjunction of every node in n. It returns False if n is
// empty.
func (b *BDD) Or(n ...Node) Node {
	if len(n) == 0 {
		return b.False()
	}
	if len(n) == 1 {
		return n[0]
	}
	return b.Apply(n[0], b.Or(n[1:]...), OPor)
}

// Imp returns the material implication n1 -> n2.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical equivalence (biconditional) of n1 and n2.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal reports whether low and high denote the same node. Two Node values
// compare equal if they point to the same edge, which, by canonicity, holds
// exactly when they represent the same Boolean function.
func (b *BDD) Equal(low, high Node) bool {
	if low == high {
		return true
	}
	if low == nil || high == nil {
		return false
	}
	return *low == *high
}

// AndExist applies the AND operator to n1 and n2 then existentially
// quantifies the result over the variables in varset. It is a thin wrapper
// around AppEx and is typically faster than composing And and Exist, since
// no intermediate node for n1 & n2 needs to be built in full.
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}
