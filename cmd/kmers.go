package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jjtimmons/contigs/internal/assemble"
	"github.com/jjtimmons/contigs/internal/reads"
	"github.com/spf13/cobra"
)

// kmersCmd is for inspecting the k-mer index built from a set of reads
var kmersCmd = &cobra.Command{
	Use:                        "kmers",
	Short:                      "Count, or list, the distinct k-mers of reads",
	RunE:                       runKmers,
	SuggestionsMinimumDistance: 2,
	Long: `Build the k-mer index the assembler would start from and report its size.

With --list, every k-mer in the index is printed with the reads it came
from. Origins are the read's 0-based position in the input followed by 's'
for k-mers from the read itself and 'r' for those from its reverse
complement.`,
	Example: `  contigs kmers --in reads.fa -k 5 --list`,
}

func init() {
	kmersCmd.Flags().StringP("in", "i", "", inHelp)
	kmersCmd.Flags().IntSliceP("k", "k", []int{21}, "comma separated list of odd k-mer lengths")
	kmersCmd.Flags().StringP("format", "f", "auto", "read format: auto, fasta or fastq")
	kmersCmd.Flags().StringP("ambiguous", "a", "error", ambiguousHelp)
	kmersCmd.Flags().BoolP("list", "l", false, "print every k-mer and its origins")

	RootCmd.AddCommand(kmersCmd)
}

// runKmers indexes the reads at every k and prints the index sizes
func runKmers(cmd *cobra.Command, args []string) error {
	conf, err := settings(cmd)
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	format, _ := reads.ParseFormat(conf.Format)
	policy, _ := reads.ParsePolicy(conf.Ambiguous)
	rs, err := reads.Load(conf.In, format, policy)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, k := range conf.Ks() {
		a := assemble.New(k)
		for _, r := range rs {
			if err := a.Ingest(r.Seq, r.Tag); err != nil {
				return err
			}
		}

		fmt.Fprintf(w, "k=%d\treads=%d\tkmers=%d\n", k, len(rs), a.Index().Len())
		if list {
			a.Index().Each(func(kmer string, origins []string) bool {
				fmt.Fprintf(w, "%s\t%s\n", kmer, strings.Join(origins, ","))
				return true
			})
		}
	}
	return w.Flush()
}
