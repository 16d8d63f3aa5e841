package models

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Report is the printable summary of a simulation batch.
type Report struct {
	Mode     HostMode `yaml:"mode"`
	Strategy Strategy `yaml:"strategy"`
	Games    int      `yaml:"games"`
	Seed     uint64   `yaml:"seed,omitempty"`
	Tally    Tally    `yaml:",inline"`
	WinRate  float64  `yaml:"win_rate"`
}

func NewReport(mode HostMode, strategy Strategy, seed uint64, t Tally) Report {
	return Report{
		Mode:     mode,
		Strategy: strategy,
		Games:    t.Total(),
		Seed:     seed,
		Tally:    t,
		WinRate:  t.WinRate(),
	}
}

// WriteYAML encodes the report as a single YAML document.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
