// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Allsat iterates through all legal variable assignments for n and calls f on
// each of them. Each call receives a slice of length Varnum where entry k is
// 0 if variable k is false, 1 if it is true, and -1 if it is a don't care
// (n does not depend on it along that branch). Iteration stops, and Allsat
// returns the error, the first time f returns a non-nil one.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if b.checkptr(n) != nil {
		return fmt.Errorf("wrong node in call to Allsat")
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// Allsat never allocates, so there is no risk of a GC invalidating n
	// mid-walk.
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(n Edge, prof []int, f func([]int) error) error {
	if n.isOne() {
		return f(prof)
	}
	if n.isZero() || n.isSentinel() {
		return nil
	}
	if low := b.low(n); !low.isZero() {
		prof[b.level(n)] = 0
		for v := b.levelOrVarnum(low) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := b.high(n); !high.isZero() {
		prof[b.level(n)] = 1
		for v := b.levelOrVarnum(high) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies f to every node reachable from the edges in n..., or to
// every live node in the pool if n is omitted. f receives the node's id (its
// index in the pool), its level, and the raw edge values of its low and high
// successors (index<<1, plus 1 when the edge is complemented), so a successor
// value of 0 is the true terminal and 1 is the false terminal. The shared
// terminal itself is never passed to f. Visiting order is unspecified. Allnodes stops and returns the first non-nil error f produces.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("wrong node in call to Allnodes: %w", err)
		}
	}
	if len(n) == 0 {
		return b.allnodes(f)
	}
	return b.allnodesfrom(f, n)
}

func (b *BDD) allnodesfrom(f func(id, level, low, high int) error, n []Node) error {
	for _, v := range n {
		if (*v).isSentinel() || (*v).isConst() {
			continue
		}
		b.markrec((*v).index())
	}
	for k := range b.nodes {
		if b.ismarked(k) {
			b.unmarknode(k)
			if err := f(k, int(b.nodes[k].level), int(b.nodes[k].low), int(b.nodes[k].high)); err != nil {
				b.unmarkall()
				return err
			}
		}
	}
	return nil
}

func (b *BDD) allnodes(f func(id, level, low, high int) error) error {
	for k, v := range b.nodes {
		if k > 0 && v.low != errorEdge {
			if err := f(k, int(v.level), int(v.low), int(v.high)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Print writes a textual representation of the BDD reachable from n to
// standard output, or of every live node if n is omitted.
func (b Set) Print(n ...Node) {
	b.print(os.Stdout, n...)
}

func (b Set) print(w io.Writer, n ...Node) {
	if mesg := b.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		return
	}
	if len(n) == 1 && n[0] != nil {
		if (*n[0]).isZero() {
			fmt.Fprintln(w, "False")
			return
		}
		if (*n[0]).isOne() {
			fmt.Fprintln(w, "True")
			return
		}
	}
	nodes := make([][4]int, 0)
	err := b.Allnodes(func(id, level, low, high int) error {
		i := sort.Search(len(nodes), func(i int) bool {
			return nodes[i][0] >= id
		})
		nodes = append(nodes, [4]int{})
		copy(nodes[i+1:], nodes[i:])
		nodes[i] = [4]int{id, level, low, high}
		return nil
	}, n...)
	if err != nil {
		fmt.Fprintln(w, err.Error())
		return
	}
	printSet(w, nodes)
}

func printSet(w io.Writer, nodes [][4]int) {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, n := range nodes {
		if n[0] > 0 {
			fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", n[0], n[1], n[2], n[3])
		}
	}
	tw.Flush()
}

// PrintDot writes a DOT-format graph of the BDD reachable from n (or of
// every live node if n is omitted) to filename, or to standard output if
// filename is "-".
func (b Set) PrintDot(filename string, n ...Node) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	if mesg := b.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		w.Flush()
		return fmt.Errorf(mesg)
	}
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	_ = b.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			fmt.Fprintf(w, "%d %s\n", id, dotlabel(id, level))
			if low != 0 {
				fmt.Fprintf(w, "%d -> %d [style=dotted];\n", id, low)
			}
			if high != 0 {
				fmt.Fprintf(w, "%d -> %d [style=filled];\n", id, high)
			}
		}
		return nil
	}, n...)
	fmt.Fprintln(w, "}")
	return w.Flush()
}

func dotlabel(a int, b int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
