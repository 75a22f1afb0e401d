package config

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DocstringStyles are the styles the built-in templates know about.
var DocstringStyles = []string{"google", "numpy", "sphinx"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// An unsupported harness is reported as the error returned by ParseHarness.
func Validate(cfg *GenerationConfig) (warnings []string, err error) {
	if cfg.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if cfg.JSONFilePath == "" {
		return nil, &ValidationError{Field: "json_file_path", Message: "is required"}
	}
	if _, err := ParseHarness(cfg.Harness); err != nil {
		return nil, err
	}

	if cfg.DocstringStyle != "" && !slices.Contains(DocstringStyles, cfg.DocstringStyle) {
		warnings = append(warnings, fmt.Sprintf("docstring_style %q is not one of %v; templates receive it unchanged", cfg.DocstringStyle, DocstringStyles))
	}
	return warnings, nil
}

// ParseTestParams decodes the --test-params JSON object.
// An empty string yields nil params.
func ParseTestParams(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(s)))
	if err != nil {
		return nil, &ValidationError{Field: "test_params", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	params, ok := v.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "test_params", Message: "must be a JSON object"}
	}
	return params, nil
}
