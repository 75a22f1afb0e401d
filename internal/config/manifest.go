package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// Manifest describes a batch of generation runs.
type Manifest struct {
	Defaults GenerationConfig   `json:"defaults" yaml:"defaults"`
	Runs     []GenerationConfig `json:"runs" yaml:"runs"`
}

// LoadManifest reads a JSON or YAML manifest, validates it against the
// manifest schema and returns it with defaults merged into every run.
// Relative json_file_path, output_dir and template_dir values are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if data, err = yamlToJSON(data); err != nil {
			return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
	}

	m, warnings, err := ParseManifest(data)
	if err != nil {
		return nil, warnings, err
	}
	m.resolvePaths(filepath.Dir(path))
	return m, warnings, nil
}

// ParseManifest validates and decodes JSON manifest data.
func ParseManifest(data []byte) (*Manifest, []string, error) {
	if err := schema.ValidateManifest(data); err != nil {
		return nil, nil, manifestSchemaError(err)
	}

	var m Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	var keys struct {
		Runs []map[string]json.RawMessage `json:"runs"`
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	warnings := detectUnknownFields(data)

	for i := range m.Runs {
		m.Runs[i] = merge(m.Defaults, m.Runs[i], keys.Runs[i])
	}
	return &m, warnings, nil
}

// merge returns run with every unset field taken from defaults. A boolean
// flag keeps the run's value only when the run sets its key, so an explicit
// false overrides a true default.
func merge(defaults, run GenerationConfig, set map[string]json.RawMessage) GenerationConfig {
	run.Description = firstNonEmpty(run.Description, defaults.Description)
	run.JSONFilePath = firstNonEmpty(run.JSONFilePath, defaults.JSONFilePath)
	run.OutputDir = firstNonEmpty(run.OutputDir, defaults.OutputDir)
	run.Harness = firstNonEmpty(run.Harness, defaults.Harness)
	run.DocstringStyle = firstNonEmpty(run.DocstringStyle, defaults.DocstringStyle)
	run.TemplateDir = firstNonEmpty(run.TemplateDir, defaults.TemplateDir)
	inherit := func(key string, value *bool, fallback bool) {
		if _, ok := set[key]; !ok {
			*value = fallback
		}
	}
	inherit("verbose", &run.Verbose, defaults.Verbose)
	inherit("debug", &run.Debug, defaults.Debug)
	inherit("has_fixtures", &run.HasFixtures, defaults.HasFixtures)
	inherit("parametrized", &run.Parametrized, defaults.Parametrized)

	if len(defaults.TestParams) > 0 {
		params := make(map[string]any, len(defaults.TestParams)+len(run.TestParams))
		for k, v := range defaults.TestParams {
			params[k] = v
		}
		for k, v := range run.TestParams {
			params[k] = v
		}
		run.TestParams = params
	}
	return run
}

func (m *Manifest) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range m.Runs {
		run := &m.Runs[i]
		run.JSONFilePath = resolve(run.JSONFilePath)
		run.OutputDir = resolve(run.OutputDir)
		run.TemplateDir = resolve(run.TemplateDir)
	}
}

func manifestSchemaError(err error) error {
	v := schema.FirstViolation(err)
	field := v.Field
	if field == "" {
		field = "manifest"
	}
	return &ValidationError{Field: field, Message: v.Message}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	normalized, err := schema.Normalize(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}
