// Package exec runs assemblies end to end: it loads the reads, assembles
// them once per k-mer length and writes out the contigs and stats
package exec

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jjtimmons/contigs/config"
	"github.com/jjtimmons/contigs/internal/assemble"
	"github.com/jjtimmons/contigs/internal/metrics"
	"github.com/jjtimmons/contigs/internal/output"
	"github.com/jjtimmons/contigs/internal/reads"
	"golang.org/x/sync/errgroup"
)

// Execute is the root of the assemble command.
//
// Every k gets its own run with a fresh index, so runs share nothing but the
// reads, which are only read. Up to conf.Parallel runs go at once. The first
// failed run cancels the ones that haven't started; started runs finish.
// Stats are returned in ascending order of k
func Execute(ctx context.Context, conf *config.Config, log *slog.Logger) ([]output.Stats, error) {
	format, err := reads.ParseFormat(conf.Format)
	if err != nil {
		return nil, err
	}
	policy, err := reads.ParsePolicy(conf.Ambiguous)
	if err != nil {
		return nil, err
	}

	rs, err := reads.Load(conf.In, format, policy)
	if err != nil {
		return nil, err
	}
	log.Info("loaded reads", "path", conf.In, "reads", len(rs))

	if err := os.MkdirAll(conf.Out, 0755); err != nil {
		return nil, fmt.Errorf("failed to make output directory %s: %w", conf.Out, err)
	}

	m := metrics.New()
	ks := conf.Ks()
	stats := make([]output.Stats, len(ks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conf.Parallel)
	for i, k := range ks {
		i, k := i, k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := run(conf, k, rs, m, log)
			if err != nil {
				return fmt.Errorf("k=%d: %w", k, err)
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := output.WriteStats(conf.StatsPath(), stats); err != nil {
		return nil, err
	}
	if conf.Metrics != "" {
		if err := m.WriteTextfile(conf.Metrics); err != nil {
			return nil, fmt.Errorf("failed to write metrics to %s: %w", conf.Metrics, err)
		}
	}
	return stats, nil
}

// run assembles the reads with a single k and writes the contigs to their FASTA
func run(conf *config.Config, k int, rs []assemble.Read, m *metrics.Metrics, log *slog.Logger) (output.Stats, error) {
	start := time.Now()
	id := uuid.New().String()
	log = log.With("run", id, "k", k)

	a := assemble.New(k, assemble.WithLogger(log), assemble.WithRecorder(m.Recorder(k)))
	for _, r := range rs {
		if err := a.Ingest(r.Seq, r.Tag); err != nil {
			return output.Stats{}, err
		}
	}
	kmers := a.Index().Len()
	log.Info("indexed reads", "kmers", kmers)

	path := conf.ContigPath(k)
	fh, err := os.Create(path)
	if err != nil {
		return output.Stats{}, fmt.Errorf("failed to create contig file: %w", err)
	}
	defer fh.Close()

	bw := bufio.NewWriter(fh)
	sink := output.NewFASTA(bw, k, conf.Width, conf.MinLength)
	n, err := a.Run(sink)
	if err != nil {
		return output.Stats{}, err
	}
	if err := bw.Flush(); err != nil {
		return output.Stats{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fh.Close(); err != nil {
		return output.Stats{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	total, longest, n50, mean := output.Summarize(sink.Lengths())
	s := output.Stats{
		Run:       id,
		K:         k,
		Time:      t.Format("2006/01/02 15:04:05"),
		Execution: t.Sub(start).Seconds(),
		Reads:     len(rs),
		Kmers:     kmers,
		Contigs:   n,
		Written:   sink.Written(),
		Output:    path,
		Total:     total,
		Longest:   longest,
		Mean:      mean,
		N50:       n50,
	}
	log.Info("assembled", "contigs", n, "written", s.Written, "n50", n50, "seconds", s.Execution)
	return s, nil
}
