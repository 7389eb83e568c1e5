// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

var dumpMagic = [8]byte{'R', 'U', 'D', 'D', 'Z', 'D', 'U', 'P'}

const dumpVersion uint32 = 1

const (
	rootRefError    int64 = -1
	rootRefOverflow int64 = -2
)

type dumpNodeRecord struct {
	level int32
	low   int64
	high  int64
}

// Dump serializes the forest reachable from roots into w, using the same
// binary little-endian layout as the root dd package's Dump: a header, the
// variable table, the node records of the transitive cone of every root in
// children-first order, and a trailer of root references. ZDD nodes carry
// no complement bit, so each record is a plain (level, lowRef, highRef)
// triple.
func (z *ZDD) Dump(w io.Writer, roots ...Node) error {
	for _, r := range roots {
		if err := z.checkptr(r); err != nil {
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
		low, high := z.nodes[idx].low, z.nodes[idx].high
		walk(low)
		walk(high)
		records = append(records, dumpNodeRecord{
			level: z.nodes[idx].level & 0x1FFFFF,
			low:   z.edgeRef(low, seq),
			high:  z.edgeRef(high, seq),
		})
		seq[idx] = int64(len(records) + 1)
	}
	for _, r := range roots {
		walk(*r)
	}

	var buf bytes.Buffer
	buf.Write(dumpMagic[:])
	binary.Write(&buf, binary.LittleEndian, dumpVersion)
	binary.Write(&buf, binary.LittleEndian, int64(len(roots)))

	binary.Write(&buf, binary.LittleEndian, int64(z.varnum))
	for level := int32(0); level < z.varnum; level++ {
		binary.Write(&buf, binary.LittleEndian, int64(z.Varid(int(level))))
		binary.Write(&buf, binary.LittleEndian, level)
	}

	binary.Write(&buf, binary.LittleEndian, int64(len(records)))
	for _, rec := range records {
		binary.Write(&buf, binary.LittleEndian, rec.level)
		binary.Write(&buf, binary.LittleEndian, rec.low)
		binary.Write(&buf, binary.LittleEndian, rec.high)
	}

	for _, r := range roots {
		binary.Write(&buf, binary.LittleEndian, z.edgeRef(*r, seq))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (z *ZDD) edgeRef(e Edge, seq map[int]int64) int64 {
	switch {
	case e == errorEdge:
		return rootRefError
	case e == overflowEdge:
		return rootRefOverflow
	case e.isZero():
		return 0
	case e.isOne():
		return 1
	}
	return seq[e.index()]
}

// Restore reads a forest previously written with Dump and rebuilds it
// inside z, replaying every node through makenode so the result is
// canonical in z's unique table.
func (z *ZDD) Restore(r io.Reader) ([]Node, error) {
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
		if _, err := z.newvar(int(v.id)); err != nil {
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
		if err := binary.Read(r, binary.LittleEndian, &level); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &low); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &high); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		node, err := z.makenode(level, seq[low], seq[high])
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
		var e Edge
		switch {
		case ref == rootRefError:
			e = errorEdge
		case ref == rootRefOverflow:
			e = overflowEdge
		default:
			e = seq[ref]
		}
		roots[i] = z.retnode(e)
	}
	return roots, nil
}
