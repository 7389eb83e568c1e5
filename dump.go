// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// dumpMagic identifies the binary dump format; dumpVersion lets a future,
// incompatible format change be rejected instead of silently misread.
var dumpMagic = [8]byte{'R', 'U', 'D', 'D', 'D', 'U', 'M', 'P'}

const dumpVersion uint32 = 1

// reserved root-reference codes for roots that carry a sentinel value
// instead of a real node reference.
const (
	rootRefError    int64 = -1
	rootRefOverflow int64 = -2
)

type dumpNodeRecord struct {
	level int32
	low   int64
	lowInv byte
	high  int64
	highInv byte
}

// Dump serializes the forest reachable from roots into w using the binary
// little-endian format made of a header, the
// variable table, the node records of the transitive cone of every root (in
// children-first order, so Restore can rebuild each node as soon as its
// children are known), and a trailer of root references.
func (b *BDD) Dump(w io.Writer, roots ...Node) error {
	for _, r := range roots {
		if err := b.checkptr(r); err != nil {
			return fmt.Errorf("wrong node in call to Dump: %w", err)
		}
	}
	seq := map[int]int64{}
	var records []dumpNodeRecord
	var walk func(e Edge)
	walk = func(e Edge) {
		if e.isSentinel() || e.isConst() {
			return
		}
		idx := e.index()
		if _, ok := seq[idx]; ok {
			return
		}
		low, high := b.nodes[idx].low, b.nodes[idx].high
		walk(low)
		walk(high)
		lowRef, lowInv := b.edgeRef(low, seq)
		highRef, highInv := b.edgeRef(high, seq)
		records = append(records, dumpNodeRecord{
			level: b.nodes[idx].level & 0x1FFFFF,
			low:   lowRef, lowInv: lowInv,
			high: highRef, highInv: highInv,
		})
		seq[idx] = int64(len(records) + 1) // 0 and 1 are reserved for the constants
	}
	for _, r := range roots {
		walk(*r)
	}

	var buf bytes.Buffer
	buf.Write(dumpMagic[:])
	binary.Write(&buf, binary.LittleEndian, dumpVersion)
	binary.Write(&buf, binary.LittleEndian, int64(len(roots)))

	binary.Write(&buf, binary.LittleEndian, int64(b.varnum))
	for level := int32(0); level < b.varnum; level++ {
		binary.Write(&buf, binary.LittleEndian, int64(b.Varid(int(level))))
		binary.Write(&buf, binary.LittleEndian, level)
	}

	binary.Write(&buf, binary.LittleEndian, int64(len(records)))
	for _, rec := range records {
		binary.Write(&buf, binary.LittleEndian, rec.level)
		binary.Write(&buf, binary.LittleEndian, rec.low)
		buf.WriteByte(rec.lowInv)
		binary.Write(&buf, binary.LittleEndian, rec.high)
		buf.WriteByte(rec.highInv)
	}

	for _, r := range roots {
		ref, inv := b.edgeRef(*r, seq)
		binary.Write(&buf, binary.LittleEndian, ref)
		buf.WriteByte(inv)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// edgeRef translates an internal edge into the (sequence-index, complement)
// pair written to the dump stream, using the reserved sentinel codes for
// ERROR/OVERFLOW and the reserved indices 0/1 for the constants.
func (b *BDD) edgeRef(e Edge, seq map[int]int64) (int64, byte) {
	switch {
	case e == errorEdge:
		return rootRefError, 0
	case e == overflowEdge:
		return rootRefOverflow, 0
	case e.isZero():
		return 0, 0
	case e.isOne():
		return 1, 0
	}
	inv := byte(0)
	if e.comp() {
		inv = 1
	}
	return seq[e.index()], inv
}

// Restore reads a forest previously written with Dump and rebuilds it inside
// b, replaying every node through makenode so the result is canonical in b's
// unique table (which need not be the manager that produced the dump).
// Restored variables are created, in level order, as needed.
func (b *BDD) Restore(r io.Reader) ([]Node, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if magic != dumpMagic {
		return nil, fmt.Errorf("restore: bad magic number")
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if version != dumpVersion {
		return nil, fmt.Errorf("restore: unsupported dump version %d", version)
	}
	var rootCount int64
	if err := binary.Read(r, binary.LittleEndian, &rootCount); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	var varCount int64
	if err := binary.Read(r, binary.LittleEndian, &varCount); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	type varEntry struct {
		id    int64
		level int32
	}
	vars := make([]varEntry, varCount)
	for i := range vars {
		if err := binary.Read(r, binary.LittleEndian, &vars[i].id); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &vars[i].level); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].level < vars[j].level })
	for _, v := range vars {
		if _, err := b.newvar(int(v.id)); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
	}

	var nodeCount int64
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	seq := make([]Edge, nodeCount+2)
	seq[0] = zeroEdge
	seq[1] = oneEdge
	for i := int64(0); i < nodeCount; i++ {
		var level int32
		var low, high int64
		var lowInv, highInv byte
		if err := binary.Read(r, binary.LittleEndian, &level); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &low); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		lb, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		lowInv = lb
		if err := binary.Read(r, binary.LittleEndian, &high); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		hb, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		highInv = hb
		lowEdge := withComp(seq[low], lowInv == 1)
		highEdge := withComp(seq[high], highInv == 1)
		node, err := b.makenode(level, lowEdge, highEdge)
		if err != nil && node.isSentinel() {
			return nil, fmt.Errorf("restore: %w", err)
		}
		seq[i+2] = node
	}

	roots := make([]Node, rootCount)
	for i := range roots {
		var ref int64
		if err := binary.Read(r, binary.LittleEndian, &ref); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		inv, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		var e Edge
		switch {
		case ref == rootRefError:
			e = errorEdge
		case ref == rootRefOverflow:
			e = overflowEdge
		default:
			e = withComp(seq[ref], inv == 1)
		}
		roots[i] = b.retnode(e)
	}
	return roots, nil
}

func withComp(e Edge, comp bool) Edge {
	if e.isSentinel() {
		return e
	}
	if comp {
		return e.not()
	}
	return e
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
