package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stats summarizes a single assembly run
type Stats struct {
	// Run is the unique id of the run
	Run string `json:"run" yaml:"run"`

	// K is the k-mer length
	K int `json:"k" yaml:"k"`

	// Time the run finished, ex: "2018/01/01 20:41:00"
	Time string `json:"time" yaml:"time"`

	// Execution is the number of seconds the run took
	Execution float64 `json:"execution" yaml:"execution"`

	// Reads is the number of reads ingested
	Reads int `json:"reads" yaml:"reads"`

	// Kmers is the number of distinct k-mers, both strands, after ingest
	Kmers int `json:"kmers" yaml:"kmers"`

	// Contigs is the number of contigs assembled
	Contigs int `json:"contigs" yaml:"contigs"`

	// Written is the number of contigs at least the minimum length
	Written int `json:"written" yaml:"written"`

	// Output is the path of the contig FASTA
	Output string `json:"output" yaml:"output"`

	// Total is the sum of the written contigs' lengths
	Total int `json:"total" yaml:"total"`

	// Longest is the length of the longest written contig
	Longest int `json:"longest" yaml:"longest"`

	// Mean is the average written contig length
	Mean float64 `json:"mean" yaml:"mean"`

	// N50 is the length of the shortest contig in the smallest set of
	// longest contigs that covers half of Total
	N50 int `json:"n50" yaml:"n50"`
}

// Summarize returns the total, longest, N50 and mean of contig lengths
func Summarize(lengths []int) (total, longest, n50 int, mean float64) {
	if len(lengths) == 0 {
		return 0, 0, 0, 0
	}

	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, l := range sorted {
		total += l
	}
	longest = sorted[0]
	mean = float64(total) / float64(len(sorted))

	covered := 0
	for _, l := range sorted {
		covered += l
		if 2*covered >= total {
			n50 = l
			break
		}
	}
	return total, longest, n50, mean
}

// WriteStats writes the stats of every run to path, as JSON if it ends
// in .json and YAML otherwise
func WriteStats(path string, stats []Stats) error {
	var (
		out []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		out, err = json.MarshalIndent(stats, "", "  ")
	} else {
		out, err = yaml.Marshal(stats)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize run stats: %w", err)
	}

	if err = os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write run stats to %s: %w", path, err)
	}
	return nil
}
