// Package kmer is a prefix tree of fixed-length nucleotide substrings.
//
// Every k-mer in an Index is the path from the root to a node at depth k.
// Those nodes keep the set of origin tags (reads) that produced the k-mer.
// Nodes at depth k-1 double as the vertices of an implicit de Bruijn graph:
// their children are the one-symbol extensions of a (k-1)-mer.
package kmer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a symbol, k-mer or origin isn't in the Index
	ErrNotFound = errors.New("not found")

	// ErrInvalidSymbol is returned for symbols outside Alphabet
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrLength is returned for k-mers whose length isn't the Index's k
	ErrLength = errors.New("k-mer length mismatch")
)

// Index stores k-mers of a single length along with the origins that produced them
type Index struct {
	// root is the empty path
	root *Node

	// k is the length of every k-mer in the Index
	k int

	// size is the number of distinct k-mers
	size int
}

// New returns an empty Index for k-mers of length k
func New(k int) *Index {
	return &Index{
		root: &Node{symbol: rootSymbol},
		k:    k,
	}
}

// K returns the k-mer length of the Index
func (x *Index) K() int {
	return x.k
}

// Len returns the number of distinct k-mers in the Index
func (x *Index) Len() int {
	return x.size
}

// Empty returns whether there are no k-mers left in the Index
func (x *Index) Empty() bool {
	return x.root.degree == 0
}

// Root returns the root node of the Index
func (x *Index) Root() *Node {
	return x.root
}

// Insert adds a k-mer to the Index and records its origin.
// Inserting the same k-mer and origin twice is a no-op
func (x *Index) Insert(kmer, origin string) error {
	if err := x.check(kmer); err != nil {
		return err
	}

	n := x.root
	for i := 0; i < len(kmer); i++ {
		n = n.child(slot(kmer[i]))
	}

	if n.origins == nil {
		n.origins = make(map[string]struct{})
		x.size++
	}
	n.origins[origin] = struct{}{}
	return nil
}

// Locate follows path from the root and returns the node it ends on,
// or nil as soon as a symbol is missing.
//
// A path of length k finds the node holding a k-mer's origins. A path of
// length k-1 finds the node whose children are the possible extensions
func (x *Index) Locate(path string) *Node {
	n := x.root
	for i := 0; i < len(path); i++ {
		s := slot(path[i])
		if s < 0 || n.children[s] == nil {
			return nil
		}
		n = n.children[s]
	}
	return n
}

// Contains returns whether the k-mer is in the Index
func (x *Index) Contains(kmer string) bool {
	return len(kmer) == x.k && x.Locate(kmer) != nil
}

// Origins returns the sorted origins of a k-mer
func (x *Index) Origins(kmer string) ([]string, error) {
	if err := x.check(kmer); err != nil {
		return nil, err
	}
	n := x.Locate(kmer)
	if n == nil {
		return nil, fmt.Errorf("%w: k-mer %s", ErrNotFound, kmer)
	}
	return n.Origins(), nil
}

// Remove deletes a single origin from a k-mer. The k-mer stays in the
// Index until its last origin is removed
func (x *Index) Remove(kmer, origin string) error {
	return x.remove(kmer, func(n *Node) error {
		if !n.HasOrigin(origin) {
			return fmt.Errorf("%w: origin %s of k-mer %s", ErrNotFound, origin, kmer)
		}
		delete(n.origins, origin)
		return nil
	})
}

// RemoveAll deletes a k-mer regardless of how many origins it has
func (x *Index) RemoveAll(kmer string) error {
	return x.remove(kmer, func(n *Node) error {
		n.origins = nil
		return nil
	})
}

// remove walks to the k-mer's node, updates its origins with clear and
// prunes the nodes left without children or origins on the way back up
func (x *Index) remove(kmer string, clear func(*Node) error) error {
	if err := x.check(kmer); err != nil {
		return err
	}

	path := make([]*Node, len(kmer)+1)
	path[0] = x.root
	for i := 0; i < len(kmer); i++ {
		next := path[i].children[slot(kmer[i])]
		if next == nil {
			return fmt.Errorf("%w: k-mer %s", ErrNotFound, kmer)
		}
		path[i+1] = next
	}

	leaf := path[len(kmer)]
	if err := clear(leaf); err != nil {
		return err
	}
	if len(leaf.origins) > 0 {
		return nil
	}
	leaf.origins = nil
	x.size--

	for i := len(kmer); i > 0 && path[i].garbage(); i-- {
		path[i-1].drop(slot(kmer[i-1]))
	}
	return nil
}

// Each calls fn for every k-mer in the Index in lexicographic order
// until fn returns false
func (x *Index) Each(fn func(kmer string, origins []string) bool) {
	buf := make([]byte, 0, x.k)
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if len(buf) == x.k {
			return fn(string(buf), n.Origins())
		}
		for _, c := range n.children {
			if c == nil {
				continue
			}
			buf = append(buf, c.symbol)
			ok := walk(c)
			buf = buf[:len(buf)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(x.root)
}

// First returns the k-mer reached by always taking the smallest child
func (x *Index) First() (string, bool) {
	buf := make([]byte, 0, x.k)
	n := x.root
	for len(buf) < x.k {
		if n = n.first(); n == nil {
			return "", false
		}
		buf = append(buf, n.symbol)
	}
	return string(buf), true
}

// check enforces the Index's contract on a k-mer
func (x *Index) check(kmer string) error {
	if len(kmer) != x.k {
		return fmt.Errorf("%w: %s has length %d, want %d", ErrLength, kmer, len(kmer), x.k)
	}
	return Valid(kmer)
}
