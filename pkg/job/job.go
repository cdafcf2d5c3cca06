// Package job loads and runs cleaning jobs described by a YAML manifest:
// which file to read, how it is delimited, and which normalizer applies to
// which column.
package job

import (
	"fmt"
	"os"

	"github.com/pgoetz/csvclean/pkg/normalize"
	"gopkg.in/yaml.v3"
)

// KindAddress derives an ISO 3166-2 column from an address column; the
// other kinds are the normalize package's.
const KindAddress = "address"

// Rule binds one column to a normalizer kind.
type Rule struct {
	Column string `yaml:"column" json:"column"`
	Kind   string `yaml:"kind" json:"kind"`
}

// Job is the manifest for one cleaning run.
type Job struct {
	Input         string                 `yaml:"input"`
	Output        string                 `yaml:"output"`
	Delimiter     string                 `yaml:"delimiter"`      // "," ";" or "tab"
	Encoding      string                 `yaml:"encoding"`       // IANA charset, default UTF-8
	DefaultRegion string                 `yaml:"default_region"` // phone region, default DE
	NumberFormat  normalize.NumberFormat `yaml:"number_format"`
	Rules         []Rule                 `yaml:"columns"`
}

// Load reads a manifest, fills defaults, and validates it.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", path, err)
	}
	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}
	j.applyDefaults()
	if err := j.Validate(); err != nil {
		return nil, fmt.Errorf("job %s: %w", path, err)
	}
	return &j, nil
}

func (j *Job) applyDefaults() {
	if j.Delimiter == "" {
		j.Delimiter = ","
	}
	if j.DefaultRegion == "" {
		j.DefaultRegion = "DE"
	}
	if j.NumberFormat.DecimalSep == "" {
		j.NumberFormat.DecimalSep = "."
	}
}

// Validate checks the manifest beyond what YAML decoding enforces.
func (j *Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("missing input")
	}
	if j.Output == "" {
		return fmt.Errorf("missing output")
	}
	if _, err := j.DelimiterRune(); err != nil {
		return err
	}
	if len(j.DefaultRegion) != 2 {
		return fmt.Errorf("default_region must be a 2-letter region code, got %q", j.DefaultRegion)
	}
	if err := j.NumberFormat.Validate(); err != nil {
		return fmt.Errorf("number_format: %w", err)
	}
	for _, r := range j.Rules {
		if r.Column == "" {
			return fmt.Errorf("rule with empty column")
		}
		switch r.Kind {
		case normalize.KindDate, normalize.KindNumber, normalize.KindPhone, KindAddress:
		default:
			return fmt.Errorf("column %q: unknown kind %q", r.Column, r.Kind)
		}
	}
	return nil
}

// DelimiterRune maps the manifest delimiter to its rune form. "tab" and
// literal "\t" both mean tab.
func (j *Job) DelimiterRune() (rune, error) {
	switch j.Delimiter {
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("delimiter must be \",\", \";\" or \"tab\", got %q", j.Delimiter)
	}
}
