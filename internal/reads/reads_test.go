package reads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjtimmons/contigs/internal/assemble"
	"github.com/jjtimmons/contigs/internal/kmer"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGz gzips the file at src into the test's temp dir
func writeGz(t *testing.T, src string) string {
	t.Helper()

	data, err := os.ReadFile(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), filepath.Base(src)+".gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func scanAll(t *testing.T, input string, format Format) []Record {
	t.Helper()

	var records []Record
	err := Scan(strings.NewReader(input), format, func(r Record) error {
		records = append(records, r)
		return nil
	})
	require.NoError(t, err)
	return records
}

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   []Record
	}{
		{
			"fasta",
			">a desc\nACGT\nAC\n>b\nTTTT\n",
			FASTA,
			[]Record{{"a", "ACGTAC"}, {"b", "TTTT"}},
		},
		{
			"fasta sniffed",
			"\n>a\nACGT\n",
			Auto,
			[]Record{{"a", "ACGT"}},
		},
		{
			"fastq sniffed",
			"@q1\nACGT\n+\nIIII\n@q2\nGG\n+\n##\n",
			Auto,
			[]Record{{"q1", "ACGT"}, {"q2", "GG"}},
		},
		{
			"empty",
			"",
			Auto,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanAll(t, tt.input, tt.format))
		})
	}
}

func TestScan_UnknownFormat(t *testing.T) {
	err := Scan(strings.NewReader("ACGT\n"), Auto, func(Record) error { return nil })
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	got, err := Load(filepath.Join("testdata", "reads.fa"), Auto, Reject)
	require.NoError(t, err)

	want := []assemble.Read{
		{Seq: "AAATGCGATCCGATAGGCA", Tag: "0"},
		{Seq: "GATAGGCAAGGTGAGCTAG", Tag: "1"},
		{Seq: "GCTAGGGGATTCACTGATT", Tag: "2"},
	}
	assert.Equal(t, want, got)
}

func TestLoad_Gzip(t *testing.T) {
	plain, err := Load(filepath.Join("testdata", "reads.fa"), FASTA, Reject)
	require.NoError(t, err)

	gz, err := Load(writeGz(t, filepath.Join("testdata", "reads.fa")), FASTA, Reject)
	require.NoError(t, err)
	assert.Equal(t, plain, gz)
}

func TestLoad_Ambiguous(t *testing.T) {
	path := filepath.Join("testdata", "reads.fq")

	_, err := Load(path, Auto, Reject)
	assert.ErrorIs(t, err, kmer.ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "read_2")

	got, err := Load(path, FASTQ, Split)
	require.NoError(t, err)
	want := []assemble.Read{
		{Seq: "AAATGCGATCCGATAGGCA", Tag: "0"},
		{Seq: "GATAGGCAAG", Tag: "1"},
		{Seq: "TGAGCTAG", Tag: "1"},
	}
	assert.Equal(t, want, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.fa"), Auto, Reject)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"FASTA", FASTA, false},
		{"fq", FASTQ, false},
		{"sam", Auto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("split")
	require.NoError(t, err)
	assert.Equal(t, Split, p)

	p, err = ParsePolicy("error")
	require.NoError(t, err)
	assert.Equal(t, Reject, p)

	_, err = ParsePolicy("mask")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"ACG", "TT"}, split("NACGNNTTN"))
	assert.Empty(t, split("NNN"))
}
