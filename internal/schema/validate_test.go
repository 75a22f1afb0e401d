package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestValidateEntity_Valid(t *testing.T) {
	tests := []struct {
		def   Definition
		value string
	}{
		{DefVariable, `{"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u", "value": 3}`},
		{DefVariable, `{"name": "x", "description": "d", "statistical_type": "nominal", "unit": "u", "values": [1, {"value": 2}]}`},
		{DefMaterial, `{"name": "m", "description": "d", "type": "fixture"}`},
		{DefMethod, `{"steps": ["a"], "data_collection": "dc", "analysis_technique": "at"}`},
		{DefImports, `{"name": "os"}`},
		{DefImports, `{"name": "os", "import_funcs": ["path"]}`},
		{DefTestTitle, `{}`},
		{DefExpectedValue, `{"value": "ValueError"}`},
		{DefParameterExpectedValue, `{"input": null, "expected": 2}`},
		{DefValidationProcedure, `{"name": "n", "description": "d", "condition": "value > 10"}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.def), func(t *testing.T) {
			if err := ValidateEntity(tt.def, decode(t, tt.value)); err != nil {
				t.Errorf("ValidateEntity(%s) = %v, want nil", tt.def, err)
			}
		})
	}
}

func TestValidateEntity_Invalid(t *testing.T) {
	tests := []struct {
		desc      string
		def       Definition
		value     string
		wantField string
	}{
		{"missing unit", DefVariable, `{"name": "x", "description": "d", "statistical_type": "discrete"}`, "unit"},
		{"upper-case statistical type", DefVariable, `{"name": "x", "description": "d", "statistical_type": "DISCRETE", "unit": "u"}`, "statistical_type"},
		{"empty steps", DefMethod, `{"steps": [], "data_collection": "dc", "analysis_technique": "at"}`, "steps"},
		{"non-string step", DefMethod, `{"steps": [1], "data_collection": "dc", "analysis_technique": "at"}`, "steps.0"},
		{"missing material type", DefMaterial, `{"name": "m", "description": "d"}`, "type"},
		{"missing expected", DefParameterExpectedValue, `{"input": 1}`, "expected"},
		{"import name not string", DefImports, `{"name": 5}`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := ValidateEntity(tt.def, decode(t, tt.value))
			if err == nil {
				t.Fatalf("ValidateEntity(%s) = nil, want error", tt.def)
			}
			v := FirstViolation(err)
			if v.Field != tt.wantField {
				t.Errorf("FirstViolation().Field = %q, want %q (all: %v)", v.Field, tt.wantField, Violations(err))
			}
			if v.Message == "" {
				t.Error("FirstViolation().Message is empty")
			}
		})
	}
}

func TestValidateEntity_UnknownDefinition(t *testing.T) {
	if err := ValidateEntity("nope", map[string]any{}); err == nil {
		t.Error("ValidateEntity(nope) = nil, want error")
	}
}

func TestValidateDocument(t *testing.T) {
	valid := `{"test_file_parameters": {
		"test_title": "Title",
		"independent_variable": {"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u"},
		"dependent_variable": {"name": "y", "description": "d", "statistical_type": "continuous", "unit": "u"},
		"test_procedure": {"steps": ["a"], "data_collection": "dc", "analysis_technique": "at"}
	}}`
	if err := ValidateDocument(decode(t, valid)); err != nil {
		t.Errorf("ValidateDocument(valid) = %v", err)
	}

	err := ValidateDocument(decode(t, `{"test_file_parameters": {}}`))
	if err == nil {
		t.Fatal("ValidateDocument(empty parameters) = nil, want error")
	}
	fields := make(map[string]bool)
	for _, v := range Violations(err) {
		fields[v.Field] = true
	}
	for _, want := range []string{
		"test_file_parameters.independent_variable",
		"test_file_parameters.dependent_variable",
		"test_file_parameters.test_procedure",
	} {
		if !fields[want] {
			t.Errorf("Violations() missing %q, got %v", want, Violations(err))
		}
	}
}

func TestValidateManifest(t *testing.T) {
	if err := ValidateManifest([]byte(`{"runs": [{"name": "a", "json_file_path": "a.json"}]}`)); err != nil {
		t.Errorf("ValidateManifest(valid) = %v", err)
	}
	if err := ValidateManifest([]byte(`{"runs": []}`)); err == nil {
		t.Error("ValidateManifest(no runs) = nil, want error")
	}
	if err := ValidateManifest([]byte(`{"runs": [{"debug": "yes"}]}`)); err == nil {
		t.Error("ValidateManifest(debug string) = nil, want error")
	}
	if err := ValidateManifest([]byte(`{`)); err == nil {
		t.Error("ValidateManifest(malformed) = nil, want error")
	}
}

func TestViolations_NonSchemaError(t *testing.T) {
	vs := Violations(errors.New("boom"))
	if len(vs) != 1 || vs[0].Message != "boom" || vs[0].Field != "" {
		t.Errorf("Violations(plain error) = %v", vs)
	}
	if Violations(nil) != nil {
		t.Error("Violations(nil) should be nil")
	}
}

func TestNormalize(t *testing.T) {
	v, err := Normalize(map[string]any{"n": 3, "list": []any{1.5, "a"}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Normalize() = %T, want map[string]any", v)
	}
	if n, ok := m["n"].(json.Number); !ok || n.String() != "3" {
		t.Errorf("n = %#v, want json.Number(3)", m["n"])
	}
}

func TestRaw(t *testing.T) {
	for _, name := range []string{"", "experiment", "manifest"} {
		data, err := Raw(name)
		if err != nil {
			t.Errorf("Raw(%q) error = %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "$schema") {
			t.Errorf("Raw(%q) does not look like a schema", name)
		}
	}
	if _, err := Raw("toolchains"); err == nil {
		t.Error("Raw(toolchains) = nil error, want error")
	}
}
