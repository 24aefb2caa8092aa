package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func valid() Config {
	return Config{
		In:        "reads.fa",
		Out:       ".",
		K:         []int{21},
		Format:    "auto",
		Ambiguous: "error",
		Width:     60,
		Parallel:  1,
		Stats:     "stats.yaml",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			"defaults",
			func(c *Config) {},
			false,
		},
		{
			"several odd k",
			func(c *Config) { c.K = []int{1, 21, 55} },
			false,
		},
		{
			"no input",
			func(c *Config) { c.In = "" },
			true,
		},
		{
			"even k",
			func(c *Config) { c.K = []int{21, 22} },
			true,
		},
		{
			"zero k",
			func(c *Config) { c.K = []int{0} },
			true,
		},
		{
			"no k",
			func(c *Config) { c.K = nil },
			true,
		},
		{
			"duplicate k",
			func(c *Config) { c.K = []int{21, 21} },
			true,
		},
		{
			"unknown format",
			func(c *Config) { c.Format = "bam" },
			true,
		},
		{
			"unknown ambiguity policy",
			func(c *Config) { c.Ambiguous = "mask" },
			true,
		},
		{
			"zero width",
			func(c *Config) { c.Width = 0 },
			true,
		},
		{
			"negative min length",
			func(c *Config) { c.MinLength = -1 },
			true,
		},
		{
			"no parallelism",
			func(c *Config) { c.Parallel = 0 },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("in", "reads.fa")

	c, err := New(v)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := valid()
	if !reflect.DeepEqual(*c, want) {
		t.Errorf("New() = %+v, want %+v", *c, want)
	}
}

func TestNew_SettingsFile(t *testing.T) {
	v := viper.New()
	v.Set("settings", filepath.Join("testdata", "settings.yaml"))
	v.Set("width", 80) // flags win over the settings file

	c, err := New(v)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := Config{
		In:        "reads.fq.gz",
		Out:       "assembly",
		K:         []int{21, 31, 27},
		Format:    "fastq",
		Ambiguous: "split",
		Width:     80,
		MinLength: 100,
		Parallel:  2,
		Stats:     "stats.json",
	}
	if !reflect.DeepEqual(*c, want) {
		t.Errorf("New() = %+v, want %+v", *c, want)
	}

	if got := c.Ks(); !reflect.DeepEqual(got, []int{21, 27, 31}) {
		t.Errorf("Config.Ks() = %v", got)
	}
	if got := c.ContigPath(27); got != filepath.Join("assembly", "contigs_k27.fa") {
		t.Errorf("Config.ContigPath() = %s", got)
	}
	if got := c.StatsPath(); got != filepath.Join("assembly", "stats.json") {
		t.Errorf("Config.StatsPath() = %s", got)
	}
}

func TestNew_MissingSettingsFile(t *testing.T) {
	v := viper.New()
	v.Set("in", "reads.fa")
	v.Set("settings", filepath.Join("testdata", "missing.yaml"))

	if _, err := New(v); err == nil {
		t.Error("New() expected an error for a missing settings file")
	}
}
