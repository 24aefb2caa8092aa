// Package metrics counts the work done by assembly runs with prometheus
// collectors and writes them out for the node exporter's textfile collector
package metrics

import (
	"strconv"

	"github.com/jjtimmons/contigs/internal/assemble"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "contigs"

// Metrics holds the collectors shared by every run of a process. Runs
// are told apart by their k label
type Metrics struct {
	registry *prometheus.Registry

	ingested *prometheus.CounterVec
	stops    *prometheus.CounterVec
	emitted  *prometheus.CounterVec
	lengths  *prometheus.HistogramVec
}

// New returns Metrics registered on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ingested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kmers_ingested_total",
			Help:      "K-mers inserted into the index, both strands, including repeats.",
		}, []string{"k"}),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extension_stops_total",
			Help:      "Contig extensions ended, by reason.",
		}, []string{"k", "reason"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emitted_total",
			Help:      "Contigs assembled.",
		}, []string{"k"}),
		lengths: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "length_bases",
			Help:      "Length of assembled contigs.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 12), // 16 to 32k bases
		}, []string{"k"}),
	}
	m.registry.MustRegister(m.ingested, m.stops, m.emitted, m.lengths)
	return m
}

// Registry returns the registry the collectors are on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Recorder returns an assemble.Recorder for the run with k-mer length k
func (m *Metrics) Recorder(k int) assemble.Recorder {
	label := strconv.Itoa(k)
	return &recorder{
		ingested: m.ingested.WithLabelValues(label),
		deadEnds: m.stops.WithLabelValues(label, assemble.DeadEnd.String()),
		branches: m.stops.WithLabelValues(label, assemble.Branch.String()),
		emitted:  m.emitted.WithLabelValues(label),
		lengths:  m.lengths.WithLabelValues(label),
	}
}

// WriteTextfile writes every metric to path in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// recorder has the collectors of a single k pre-bound
type recorder struct {
	ingested prometheus.Counter
	deadEnds prometheus.Counter
	branches prometheus.Counter
	emitted  prometheus.Counter
	lengths  prometheus.Observer
}

func (r *recorder) Ingested(kmers int) {
	r.ingested.Add(float64(kmers))
}

func (r *recorder) Stopped(s assemble.Stop) {
	if s == assemble.Branch {
		r.branches.Inc()
		return
	}
	r.deadEnds.Inc()
}

func (r *recorder) Emitted(c assemble.Contig) {
	r.emitted.Inc()
	r.lengths.Observe(float64(c.Len()))
}
