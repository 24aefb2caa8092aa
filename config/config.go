// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jjtimmons/contigs/internal/reads"
	"github.com/spf13/viper"
)

// Defaults for every key a settings file or flag can set
var defaults = map[string]interface{}{
	"out":        ".",
	"k":          []int{21},
	"format":     "auto",
	"ambiguous":  "error",
	"width":      60,
	"min-length": 0,
	"parallel":   1,
	"stats":      "stats.yaml",
	"metrics":    "",
	"verbose":    false,
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// In is the path to the reads, "-" for stdin
	In string `mapstructure:"in"`

	// Out is the directory contigs and stats are written to
	Out string `mapstructure:"out"`

	// K are the k-mer lengths to assemble with, one run each
	K []int `mapstructure:"k"`

	// Format of the reads: auto, fasta or fastq
	Format string `mapstructure:"format"`

	// Ambiguous is what to do with non-ACGT symbols: error or split
	Ambiguous string `mapstructure:"ambiguous"`

	// Width is the line width of the contig FASTA
	Width int `mapstructure:"width"`

	// MinLength is the length below which contigs aren't written
	MinLength int `mapstructure:"min-length"`

	// Parallel is the number of runs assembled at once
	Parallel int `mapstructure:"parallel"`

	// Stats is the name of the stats file within Out
	Stats string `mapstructure:"stats"`

	// Metrics is the path of a prometheus textfile, empty to skip it
	Metrics string `mapstructure:"metrics"`

	// Verbose turns on debug logging
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default settings with viper
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// New returns a new Config struct populated by Viper settings
// (from the settings file, if one is set, and command line arguments)
func New(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings from %s: %w", settings, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode settings into struct: %w", err)
	}
	return &c, c.Validate()
}

// Validate checks the settings are usable before any reads are loaded
func (c *Config) Validate() error {
	var errs []error

	if c.In == "" {
		errs = append(errs, errors.New("no input reads set"))
	}

	if len(c.K) == 0 {
		errs = append(errs, errors.New("no k-mer length set"))
	}
	seen := map[int]bool{}
	for _, k := range c.K {
		if k <= 0 || k%2 == 0 {
			errs = append(errs, fmt.Errorf("k-mer length %d isn't a positive odd number", k))
		}
		if seen[k] {
			errs = append(errs, fmt.Errorf("k-mer length %d is set more than once", k))
		}
		seen[k] = true
	}

	if _, err := reads.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := reads.ParsePolicy(c.Ambiguous); err != nil {
		errs = append(errs, err)
	}

	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("line width %d is less than 1", c.Width))
	}
	if c.MinLength < 0 {
		errs = append(errs, fmt.Errorf("minimum contig length %d is negative", c.MinLength))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel runs %d is less than 1", c.Parallel))
	}

	return errors.Join(errs...)
}

// Ks returns the k-mer lengths in ascending order
func (c *Config) Ks() []int {
	ks := append([]int(nil), c.K...)
	sort.Ints(ks)
	return ks
}

// ContigPath returns the path of the contig FASTA for the run with k-mer length k
func (c *Config) ContigPath(k int) string {
	return filepath.Join(c.Out, fmt.Sprintf("contigs_k%d.fa", k))
}

// StatsPath returns the path of the stats file
func (c *Config) StatsPath() string {
	return filepath.Join(c.Out, c.Stats)
}
