// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package dd implements a Reduced Ordered Binary Decision Diagram (BDD) engine:
a canonical DAG representation of Boolean functions over a fixed set of
variables, together with the node pool, unique table, operation caches and
garbage collector that make the representation practical at scale. The
sibling package dd/zdd implements the analogous Zero-suppressed Decision
Diagram (ZDD) representation for families of finite sets.

Basics

A BDD has a fixed number of variables, Varnum, growable with SetVarnum, and
each variable is represented by an (integer) index in [0, Varnum) called a
level. Operations on a BDD manipulate Edge values: a tagged index pointing at
a node plus a complement bit, so that negation is a constant-time bit flip
rather than a recursive rebuild of the represented function. External code
never manipulates edges directly: it holds Node handles (*Edge values), whose
lifetime is tied to Go's own garbage collector through a finalizer, mirroring
the scheme this library is adapted from.

Node representation

Nodes live in a single growable slice with an intrusive freelist threaded
through unused slots, and are interned through a chained-hash unique table
keyed on (level, low, high); this guarantees that any two semantically equal
sub-functions share the same node (strong canonicity) and makes equality of
edges a pointer (integer) comparison.

Automatic memory management

Like the BuDDy-derived library this package descends from, we piggyback on
the garbage collection mechanism offered by our host language: resizing and
interning of internal nodes is managed directly by the library, but external
references made by user code are reclaimed automatically by the Go runtime
through finalizers attached to Node handles.
*/
package dd
