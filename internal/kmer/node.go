package kmer

import (
	"fmt"
	"sort"
)

// Node is a single nucleotide position within an Index
type Node struct {
	// symbol is the nucleotide this node represents
	symbol byte

	// children, one slot per symbol in Alphabet. a nil slot is a missing child
	children [len(Alphabet)]*Node

	// degree is the number of non-nil children
	degree int

	// origins are the tags of the reads that produced the k-mer ending here.
	// only nodes at depth k have origins
	origins map[string]struct{}
}

// Symbol returns the nucleotide of the node
func (n *Node) Symbol() byte {
	return n.symbol
}

// HasChild returns whether the node has a child for the symbol
func (n *Node) HasChild(b byte) bool {
	i := slot(b)
	return i >= 0 && n.children[i] != nil
}

// Child returns the node's child for the symbol
func (n *Node) Child(b byte) (*Node, error) {
	i := slot(b)
	if i < 0 || n.children[i] == nil {
		return nil, fmt.Errorf("%w: no child %q under %q", ErrNotFound, b, n.symbol)
	}
	return n.children[i], nil
}

// Degree is the number of children of the node. At depth k-1 it's the
// number of ways a (k-1)-mer can be extended by one symbol
func (n *Node) Degree() int {
	return n.degree
}

// Symbols returns the symbols of the node's children in Alphabet order
func (n *Node) Symbols() []byte {
	symbols := make([]byte, 0, n.degree)
	for i, c := range n.children {
		if c != nil {
			symbols = append(symbols, Alphabet[i])
		}
	}
	return symbols
}

// first returns the child with the smallest symbol, nil for a leaf
func (n *Node) first() *Node {
	for _, c := range n.children {
		if c != nil {
			return c
		}
	}
	return nil
}

// Origins returns the sorted origin tags of the node
func (n *Node) Origins() []string {
	origins := make([]string, 0, len(n.origins))
	for o := range n.origins {
		origins = append(origins, o)
	}
	sort.Strings(origins)
	return origins
}

// HasOrigin returns whether the origin tag is recorded on the node
func (n *Node) HasOrigin(origin string) bool {
	_, ok := n.origins[origin]
	return ok
}

// garbage nodes carry neither children nor origins and must be pruned
func (n *Node) garbage() bool {
	return n.degree == 0 && len(n.origins) == 0
}

// child returns the child at slot i, creating it if it's missing
func (n *Node) child(i int) *Node {
	if n.children[i] == nil {
		n.children[i] = &Node{symbol: Alphabet[i]}
		n.degree++
	}
	return n.children[i]
}

// drop removes the child at slot i
func (n *Node) drop(i int) {
	if n.children[i] != nil {
		n.children[i] = nil
		n.degree--
	}
}
