package exec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjtimmons/contigs/config"
	"github.com/jjtimmons/contigs/internal/output"
	"github.com/jjtimmons/contigs/internal/reads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		In:        filepath.Join("testdata", "reads.fa"),
		Out:       filepath.Join(dir, "out"),
		K:         []int{7, 5},
		Format:    "auto",
		Ambiguous: "error",
		Width:     60,
		Parallel:  2,
		Stats:     "stats.yaml",
		Metrics:   filepath.Join(dir, "contigs.prom"),
	}
}

func TestExecute(t *testing.T) {
	conf := testConfig(t)

	stats, err := Execute(context.Background(), conf, quiet)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	tests := []struct {
		k           int
		wantKmers   int
		wantContigs int
		wantTotal   int
		wantLongest int
	}{
		{5, 136, 24, 164, 15},
		{7, 144, 6, 108, 30},
	}
	for i, tt := range tests {
		s := stats[i]
		assert.Equal(t, tt.k, s.K)
		assert.Equal(t, 6, s.Reads)
		assert.Equal(t, tt.wantKmers, s.Kmers)
		assert.Equal(t, tt.wantContigs, s.Contigs)
		assert.Equal(t, tt.wantContigs, s.Written)
		assert.Equal(t, tt.wantTotal, s.Total)
		assert.Equal(t, tt.wantLongest, s.Longest)
		assert.NotEmpty(t, s.Run)
		assert.Equal(t, conf.ContigPath(tt.k), s.Output)

		var ids []string
		fh, err := os.Open(s.Output)
		require.NoError(t, err)
		err = reads.Scan(fh, reads.FASTA, func(r reads.Record) error {
			ids = append(ids, r.ID)
			assert.GreaterOrEqual(t, len(r.Seq), tt.k)
			return nil
		})
		fh.Close()
		require.NoError(t, err)
		assert.Len(t, ids, tt.wantContigs)
		assert.Equal(t, "contig_1", ids[0])
	}
	assert.Equal(t, 26, stats[1].N50)
	assert.NotEqual(t, stats[0].Run, stats[1].Run, "every run gets its own id")

	data, err := os.ReadFile(conf.StatsPath())
	require.NoError(t, err)
	var written []output.Stats
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, stats, written)

	prom, err := os.ReadFile(conf.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `contigs_emitted_total{k="5"} 24`)
	assert.Contains(t, string(prom), `contigs_emitted_total{k="7"} 6`)
}

func TestExecute_MinLength(t *testing.T) {
	conf := testConfig(t)
	conf.K = []int{7}
	conf.MinLength = 10
	conf.Metrics = ""

	stats, err := Execute(context.Background(), conf, quiet)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, 6, stats[0].Contigs)
	assert.Equal(t, 5, stats[0].Written)
	assert.Equal(t, 101, stats[0].Total)
}

// runs with separate indexes give the same contigs whether or not
// they run at the same time
func TestExecute_ParallelMatchesSerial(t *testing.T) {
	contigs := func(parallel int) map[int]string {
		conf := testConfig(t)
		conf.K = []int{3, 5, 7, 9, 11}
		conf.Parallel = parallel

		stats, err := Execute(context.Background(), conf, quiet)
		require.NoError(t, err)

		out := map[int]string{}
		for _, s := range stats {
			data, err := os.ReadFile(s.Output)
			require.NoError(t, err)
			out[s.K] = string(data)
		}
		return out
	}

	assert.Equal(t, contigs(1), contigs(5))
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing reads", func(t *testing.T) {
		conf := testConfig(t)
		conf.In = filepath.Join("testdata", "missing.fa")

		_, err := Execute(context.Background(), conf, quiet)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("ambiguous reads", func(t *testing.T) {
		conf := testConfig(t)
		conf.In = filepath.Join(t.TempDir(), "n.fa")
		require.NoError(t, os.WriteFile(conf.In, []byte(">n\nACGTNACGT\n"), 0644))

		_, err := Execute(context.Background(), conf, quiet)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "record n"), err.Error())
	})

	t.Run("canceled", func(t *testing.T) {
		conf := testConfig(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Execute(ctx, conf, quiet)
		assert.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(conf.StatsPath())
		assert.True(t, os.IsNotExist(statErr), "no stats for a canceled execution")
	})
}
