// Package assemble builds contigs from reads by walking unbranched paths
// through a k-mer index.
//
// Both strands of every read are indexed, so the index is an undirected de
// Bruijn graph. Contigs are grown from an arbitrary seed to the right, then
// reverse complemented and grown again, which covers what was the seed's
// left side. Growth only passes through (k-1)-mers with exactly one
// extension, so every contig is a unitig.
package assemble

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jjtimmons/contigs/internal/kmer"
)

const (
	// Sense is appended to a read's tag for k-mers from the read's own strand
	Sense = "s"

	// Reverse is appended to a read's tag for k-mers from the opposite strand
	Reverse = "r"
)

// ErrEmpty is returned when a k-mer is requested from an empty index
var ErrEmpty = errors.New("k-mer index is empty")

// Assembler grows contigs from the reads ingested into it. It owns a
// single k-mer index for one k and isn't safe for concurrent use
type Assembler struct {
	// k is the k-mer length
	k int

	// index holds every k-mer that's yet to be used in a contig
	index *kmer.Index

	log *slog.Logger
	rec Recorder
}

// New returns an Assembler for k-mers of length k with an empty index
func New(k int, opts ...Option) *Assembler {
	a := &Assembler{
		k:     k,
		index: kmer.New(k),
		log:   slog.Default(),
		rec:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Index returns the Assembler's k-mer index
func (a *Assembler) Index() *kmer.Index {
	return a.index
}

// Ingest adds every k-mer of the read, and the reverse complement of each,
// to the index. Sense k-mers are tagged origin+Sense and reverse ones
// origin+Reverse. Reads shorter than k contribute nothing
func (a *Assembler) Ingest(read, origin string) error {
	if err := kmer.Valid(read); err != nil {
		return fmt.Errorf("read %s: %w", origin, err)
	}

	n := 0
	for i := 0; i+a.k <= len(read); i++ {
		window := read[i : i+a.k]
		rc, err := ReverseComplement(window)
		if err != nil {
			return fmt.Errorf("read %s: %w", origin, err)
		}

		if err := a.index.Insert(window, origin+Sense); err != nil {
			return fmt.Errorf("read %s: %w", origin, err)
		}
		if err := a.index.Insert(rc, origin+Reverse); err != nil {
			return fmt.Errorf("read %s: %w", origin, err)
		}
		n += 2
	}

	a.rec.Ingested(n)
	return nil
}

// Run turns the whole index into contigs, handing each to the sink as it's
// finished, and returns the number of contigs made. The index is empty
// afterwards unless an error is returned, in which case the run is corrupt
// and should be discarded
func (a *Assembler) Run(sink Sink) (int, error) {
	a.log.Debug("assembling", "k", a.k, "kmers", a.index.Len())

	id := 0
	for !a.index.Empty() {
		seed, err := a.PickAny()
		if err != nil {
			return id, err
		}
		if err := a.consume(seed); err != nil {
			return id, err
		}

		right, stop, err := a.ExtendForward(seed)
		if err != nil {
			return id, err
		}
		a.rec.Stopped(stop)

		flipped, err := ReverseComplement(right)
		if err != nil {
			return id, err
		}

		full, stop, err := a.ExtendForward(flipped)
		if err != nil {
			return id, err
		}
		a.rec.Stopped(stop)

		id++
		c := Contig{ID: id, Seq: full}
		if err := sink.Write(c); err != nil {
			return id, fmt.Errorf("failed to write contig %d: %w", id, err)
		}
		a.rec.Emitted(c)
	}

	a.log.Debug("assembled", "k", a.k, "contigs", id)
	return id, nil
}

// Assemble ingests the reads into a new Assembler and returns its contigs
func Assemble(reads []Read, k int, opts ...Option) ([]Contig, error) {
	a := New(k, opts...)
	for _, r := range reads {
		if err := a.Ingest(r.Seq, r.Tag); err != nil {
			return nil, err
		}
	}

	var contigs []Contig
	_, err := a.Run(SinkFunc(func(c Contig) error {
		contigs = append(contigs, c)
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return contigs, nil
}
