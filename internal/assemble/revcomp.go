package assemble

import (
	"fmt"

	"github.com/jjtimmons/contigs/internal/kmer"
)

// complement maps each nucleotide to its pair. zero for anything else
var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['G'] = 'C'
	complement['C'] = 'G'
}

// ReverseComplement returns the sequence read from its other strand
func ReverseComplement(seq string) (string, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			return "", fmt.Errorf("%w: %q at position %d", kmer.ErrInvalidSymbol, seq[n-1-i], n-1-i)
		}
		out[i] = c
	}
	return string(out), nil
}
