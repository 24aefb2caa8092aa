package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jjtimmons/contigs/internal/exec"
	"github.com/jjtimmons/contigs/internal/output"
	"github.com/spf13/cobra"
)

var (
	inHelp = `input FASTA or FASTQ with the reads, gzipped or not.
'-' reads from stdin.`

	ambiguousHelp = `what to do with reads that have symbols other than A, C, G and T.
'error' stops, 'split' cuts the reads at those symbols.`
)

// assembleCmd is for assembling contigs from reads at one or more k-mer lengths
var assembleCmd = &cobra.Command{
	Use:                        "assemble",
	Short:                      "Assemble contigs from sequencing reads",
	RunE:                       runAssemble,
	SuggestionsMinimumDistance: 2,
	Long: `Assemble contigs from sequencing reads, once per k-mer length.

Every k-mer of every read, and its reverse complement, goes into an index.
Contigs are grown from an arbitrary k-mer for as long as there's exactly
one way to extend them, in both directions, until every k-mer is used.

Each k-mer length is assembled independently and written to
contigs_k<k>.fa in the output directory, with stats for every run in
the stats file.`,
	Example: `  contigs assemble --in reads.fq.gz -k 21,31 --out assembly
  contigs assemble --settings settings.yaml`,
	Aliases: []string{"asm"},
}

// set flags
func init() {
	assembleCmd.Flags().StringP("in", "i", "", inHelp)
	assembleCmd.Flags().StringP("out", "o", ".", "output directory")
	assembleCmd.Flags().IntSliceP("k", "k", []int{21}, "comma separated list of odd k-mer lengths")
	assembleCmd.Flags().StringP("format", "f", "auto", "read format: auto, fasta or fastq")
	assembleCmd.Flags().StringP("ambiguous", "a", "error", ambiguousHelp)
	assembleCmd.Flags().IntP("width", "w", 60, "line width of the contig FASTA")
	assembleCmd.Flags().IntP("min-length", "m", 0, "minimum length of contigs written")
	assembleCmd.Flags().IntP("parallel", "p", 1, "number of k-mer lengths assembled at once")
	assembleCmd.Flags().String("stats", "stats.yaml", "stats file name in the output directory (.json for JSON)")
	assembleCmd.Flags().String("metrics", "", "path to write prometheus metrics to")

	RootCmd.AddCommand(assembleCmd)
}

// runAssemble parses the settings, runs every assembly and prints a summary of each
func runAssemble(cmd *cobra.Command, args []string) error {
	conf, err := settings(cmd)
	if err != nil {
		return err
	}

	stats, err := exec.Execute(cmd.Context(), conf, newLogger(cmd.ErrOrStderr(), conf.Verbose))
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), stats)
}

// writeSummary prints a table of the runs' stats
func writeSummary(w io.Writer, stats []output.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "k\tkmers\tcontigs\twritten\ttotal\tlongest\tN50\toutput\t\n")
	for _, s := range stats {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t\n", s.K, s.Kmers, s.Contigs, s.Written, s.Total, s.Longest, s.N50, s.Output)
	}
	return tw.Flush()
}
