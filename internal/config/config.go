// Package config holds the options of a generation run and the batch manifest.
package config

import (
	"strings"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
)

// Harness selects the Python test framework a generated file targets.
type Harness string

// Supported harnesses.
const (
	HarnessUnittest Harness = "unittest"
	HarnessPytest   Harness = "pytest"
)

// Harnesses lists every supported harness.
func Harnesses() []Harness {
	return []Harness{HarnessUnittest, HarnessPytest}
}

// ParseHarness resolves a harness name case-insensitively.
// Unknown names yield an UnsupportedHarness error.
func ParseHarness(name string) (Harness, error) {
	h := Harness(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Harnesses() {
		if h == known {
			return h, nil
		}
	}
	supported := make([]string, 0, len(Harnesses()))
	for _, known := range Harnesses() {
		supported = append(supported, string(known))
	}
	return "", hypoerrors.UnsupportedHarness(name, supported)
}

// GenerationConfig is the set of options for one generation run.
type GenerationConfig struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	JSONFilePath   string         `json:"json_file_path" yaml:"json_file_path"`
	OutputDir      string         `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Verbose        bool           `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Debug          bool           `json:"debug,omitempty" yaml:"debug,omitempty"`
	Harness        string         `json:"harness,omitempty" yaml:"harness,omitempty"`
	HasFixtures    bool           `json:"has_fixtures,omitempty" yaml:"has_fixtures,omitempty"`
	Parametrized   bool           `json:"parametrized,omitempty" yaml:"parametrized,omitempty"`
	DocstringStyle string         `json:"docstring_style,omitempty" yaml:"docstring_style,omitempty"`
	TestParams     map[string]any `json:"test_params,omitempty" yaml:"test_params,omitempty"`
	TemplateDir    string         `json:"template_dir,omitempty" yaml:"template_dir,omitempty"`
}

// Clone returns a copy of cfg that shares no maps with it.
func (c *GenerationConfig) Clone() *GenerationConfig {
	out := *c
	if c.TestParams != nil {
		out.TestParams = make(map[string]any, len(c.TestParams))
		for k, v := range c.TestParams {
			out.TestParams[k] = v
		}
	}
	return &out
}

// HarnessName returns the parsed harness, or the raw value when it is unsupported.
func (c *GenerationConfig) HarnessName() Harness {
	h, err := ParseHarness(c.Harness)
	if err != nil {
		return Harness(c.Harness)
	}
	return h
}
