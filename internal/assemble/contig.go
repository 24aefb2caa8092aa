package assemble

import "log/slog"

// Read is a single sequencing read and the tag that identifies it
type Read struct {
	// Seq is the read's nucleotide sequence
	Seq string

	// Tag is unique per read. Strand suffixes are added on ingest
	Tag string
}

// Contig is a finished unitig
type Contig struct {
	// ID starts at 1 and increases by one per contig of a run
	ID int

	// Seq is the assembled sequence
	Seq string
}

// Len returns the number of bases in the contig
func (c Contig) Len() int {
	return len(c.Seq)
}

// Sink receives contigs as they're finished
type Sink interface {
	Write(Contig) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(Contig) error

// Write calls f
func (f SinkFunc) Write(c Contig) error {
	return f(c)
}

// Stop is why an extension ended
type Stop int

const (
	// DeadEnd means no k-mer continues the contig
	DeadEnd Stop = iota

	// Branch means more than one k-mer continues the contig
	Branch
)

// String returns the label of the stop reason
func (s Stop) String() string {
	switch s {
	case DeadEnd:
		return "dead_end"
	case Branch:
		return "branch"
	}
	return "unknown"
}

// Recorder is notified of an Assembler's progress
type Recorder interface {
	// Ingested is called after each read with the number of k-mers inserted
	// from it, both strands included
	Ingested(kmers int)

	// Stopped is called at the end of every extension
	Stopped(s Stop)

	// Emitted is called for every contig handed to the Sink
	Emitted(c Contig)
}

type nopRecorder struct{}

func (nopRecorder) Ingested(int)   {}
func (nopRecorder) Stopped(Stop)   {}
func (nopRecorder) Emitted(Contig) {}

// Option configures an Assembler
type Option func(*Assembler)

// WithLogger sets the logger of the Assembler
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.log = l
	}
}

// WithRecorder sets the Recorder notified of the Assembler's progress
func WithRecorder(r Recorder) Option {
	return func(a *Assembler) {
		a.rec = r
	}
}
