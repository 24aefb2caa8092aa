// Package output writes contigs and the statistics of assembly runs
package output

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/jjtimmons/contigs/internal/assemble"
)

// FASTA writes contigs as FASTA records. It's an assemble.Sink
type FASTA struct {
	w *fasta.Writer

	// k is noted in every record's description
	k int

	// minLength is the length below which contigs are dropped
	minLength int

	// lengths of the contigs written
	lengths []int
}

// NewFASTA returns a sink writing to w with lines of width bases. Contigs
// shorter than minLength are skipped
func NewFASTA(w io.Writer, k, width, minLength int) *FASTA {
	return &FASTA{
		w:         fasta.NewWriter(w, width),
		k:         k,
		minLength: minLength,
	}
}

// Write writes the contig as a record named contig_<id>
func (f *FASTA) Write(c assemble.Contig) error {
	if c.Len() < f.minLength {
		return nil
	}

	s := linear.NewSeq(fmt.Sprintf("contig_%d", c.ID), alphabet.BytesToLetters([]byte(c.Seq)), alphabet.DNA)
	s.Desc = fmt.Sprintf("length=%d k=%d", c.Len(), f.k)
	if _, err := f.w.Write(s); err != nil {
		return err
	}

	f.lengths = append(f.lengths, c.Len())
	return nil
}

// Written returns the number of contigs written
func (f *FASTA) Written() int {
	return len(f.lengths)
}

// Lengths returns the lengths of the contigs written, in order
func (f *FASTA) Lengths() []int {
	return f.lengths
}
