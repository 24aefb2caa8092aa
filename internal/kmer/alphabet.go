package kmer

import "fmt"

// Alphabet is the set of nucleotides an Index accepts, in the order
// children are enumerated
const Alphabet = "ACGT"

// rootSymbol is the sentinel symbol carried by an Index's root node
const rootSymbol = '^'

// slot maps a nucleotide to its position in Alphabet, -1 if it isn't one
func slot(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	}
	return -1
}

// Valid returns an ErrInvalidSymbol error naming the first symbol of seq
// that's outside Alphabet
func Valid(seq string) error {
	for i := 0; i < len(seq); i++ {
		if slot(seq[i]) < 0 {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidSymbol, seq[i], i)
		}
	}
	return nil
}
