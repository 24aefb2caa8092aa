// Package reads loads sequencing reads from FASTA or FASTQ files
package reads

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/jjtimmons/contigs/internal/assemble"
	"github.com/jjtimmons/contigs/internal/kmer"
	"github.com/klauspost/compress/gzip"
)

// Format is a sequence file format
type Format int

const (
	// Auto picks FASTA or FASTQ from the first character of the input
	Auto Format = iota

	// FASTA records start with '>'
	FASTA

	// FASTQ records start with '@'. Qualities are read and discarded
	FASTQ
)

// ParseFormat returns the Format with the name s
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "fasta", "fa":
		return FASTA, nil
	case "fastq", "fq":
		return FASTQ, nil
	}
	return Auto, fmt.Errorf("unknown read format %q, expected auto, fasta or fastq", s)
}

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	}
	return "auto"
}

// Policy is how reads with symbols other than A, C, G and T are handled
type Policy int

const (
	// Reject fails the load on the first ambiguous symbol
	Reject Policy = iota

	// Split cuts reads at ambiguous symbols and keeps the pieces
	Split
)

// ParsePolicy returns the Policy with the name s
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "error", "reject":
		return Reject, nil
	case "split":
		return Split, nil
	}
	return Reject, fmt.Errorf("unknown ambiguous symbol policy %q, expected error or split", s)
}

// Record is a single entry of a sequence file
type Record struct {
	// ID is the first word of the record's header
	ID string

	// Seq is the record's sequence as it's in the file
	Seq string
}

// readCloser closes every closer when it's closed
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *readCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader of the file at path, or of stdin if path is "-".
// gzipped input is decompressed
func Open(path string) (io.ReadCloser, error) {
	var f io.ReadCloser = os.Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f = fh
	}

	br := bufio.NewReader(f)
	sig, _ := br.Peek(2)
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		return &readCloser{Reader: gr, closers: []io.Closer{gr, f}}, nil
	}
	return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// Scan parses records from r and calls fn with each. Scanning stops at the
// first error from fn
func Scan(r io.Reader, format Format, fn func(Record) error) error {
	br := bufio.NewReader(r)

	if format == Auto {
		var err error
		if format, err = sniff(br); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}

	var sr seqio.Reader
	switch format {
	case FASTA:
		sr = fasta.NewReader(br, linear.NewSeq("", nil, alphabet.DNA))
	case FASTQ:
		sr = fastq.NewReader(br, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	default:
		return fmt.Errorf("unsupported read format %d", format)
	}

	sc := seqio.NewScanner(sr)
	for sc.Next() {
		s := sc.Seq()
		if err := fn(Record{ID: s.Name(), Seq: letters(s)}); err != nil {
			return err
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("failed to parse %s: %w", format, err)
	}
	return nil
}

// Load reads every record of the file at path into a read for assembly.
//
// Sequences are upper-cased and tagged with their 0-based position in the
// file, so tags are unique per record
func Load(path string, format Format, policy Policy) ([]assemble.Read, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []assemble.Read
	ordinal := 0
	err = Scan(f, format, func(r Record) error {
		tag := strconv.Itoa(ordinal)
		ordinal++

		s := strings.ToUpper(r.Seq)
		if policy == Split {
			for _, piece := range split(s) {
				out = append(out, assemble.Read{Seq: piece, Tag: tag})
			}
			return nil
		}

		if err := kmer.Valid(s); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		out = append(out, assemble.Read{Seq: s, Tag: tag})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load reads from %s: %w", path, err)
	}
	return out, nil
}

// sniff guesses the format from the first non-blank byte and leaves it unread
func sniff(br *bufio.Reader) (Format, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return Auto, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '>':
			return FASTA, br.UnreadByte()
		case '@':
			return FASTQ, br.UnreadByte()
		}
		return Auto, fmt.Errorf("can't tell the read format from a leading %q", b)
	}
}

// letters copies the sequence's letters into a string
func letters(s seq.Sequence) string {
	b := make([]byte, 0, s.Len())
	for i := s.Start(); i < s.End(); i++ {
		b = append(b, byte(s.At(i).L))
	}
	return string(b)
}

// split returns the runs of s made only of A, C, G and T
func split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !strings.ContainsRune(kmer.Alphabet, r)
	})
}
