package experiment

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/model"
)

func mustDecode(t *testing.T, s string) map[string]any {
	t.Helper()
	raw, err := Decode([]byte(s), ".json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return raw
}

const minimalParams = `
	"independent_variable": {"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u"},
	"dependent_variable": {"name": "y", "description": "d", "statistical_type": "continuous", "unit": "u"},
	"test_procedure": {"steps": ["a"], "data_collection": "dc", "analysis_technique": "at"}`

func minimal(extra string) string {
	if extra != "" {
		extra = "," + extra
	}
	return `{"test_file_parameters": {` + minimalParams + extra + `}}`
}

func TestParse_ValidFixture(t *testing.T) {
	raw, err := Load(filepath.Join("testdata", "valid.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	doc, warnings, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.TestTitle != "CpuScalingUnderLoad" {
		t.Errorf("TestTitle = %q, want %q", doc.TestTitle, "CpuScalingUnderLoad")
	}
	if doc.Background.Hypothesis != "Throughput grows linearly with the number of CPU cores" {
		t.Errorf("Hypothesis = %q", doc.Background.Hypothesis)
	}
	if doc.IndependentVariable.StatisticalType != model.Discrete {
		t.Errorf("independent statistical type = %q, want discrete", doc.IndependentVariable.StatisticalType)
	}
	if !doc.IndependentVariable.IsParametrized() {
		t.Error("independent variable should be parametrized")
	}

	// Second control variable is malformed; the others survive in order.
	if len(doc.ControlVariables) != 2 {
		t.Fatalf("len(ControlVariables) = %d, want 2", len(doc.ControlVariables))
	}
	if doc.ControlVariables[0].Name != "Memory" || doc.ControlVariables[1].Name != "Region" {
		t.Errorf("ControlVariables = %v", doc.ControlVariables)
	}
	if doc.ControlVariables[1].StatisticalType != model.Nominal {
		t.Errorf("Region statistical type = %q, want nominal", doc.ControlVariables[1].StatisticalType)
	}

	if len(doc.Materials) != 1 || doc.Materials[0].Version != "4.2" {
		t.Errorf("Materials = %+v", doc.Materials)
	}
	if len(doc.TestProcedure.Steps) != 3 {
		t.Errorf("Steps = %v", doc.TestProcedure.Steps)
	}
	if len(doc.Imports) != 2 {
		t.Errorf("len(Imports) = %d, want 2", len(doc.Imports))
	}

	expected := doc.DependentVariable.ExpectedValue
	if n, ok := expected.Value.(json.Number); !ok || n.String() != "100.0" {
		t.Errorf("expected value = %#v, want json.Number(100.0)", expected.Value)
	}

	if len(warnings) != 2 {
		t.Fatalf("len(warnings) = %d, want 2: %v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Section != "control_variables" || w.Index != 1 || w.Name != "Broken" {
		t.Errorf("warnings[0] = %+v", w)
	}
	if !strings.Contains(w.String(), "control_variables[1] (Broken)") {
		t.Errorf("warnings[0].String() = %q", w.String())
	}
	if warnings[1].Section != "imports" || warnings[1].Index != 2 {
		t.Errorf("warnings[1] = %+v", warnings[1])
	}
}

func TestParse_DoesNotMutateInput(t *testing.T) {
	raw := mustDecode(t, minimal(`"control_variables": [{"name": "c", "description": "d", "statistical_type": "ORDINAL", "unit": "u"}]`))
	params := raw[RootKey].(map[string]any)
	params["independent_variable"].(map[string]any)["statistical_type"] = "DISCRETE"

	if _, _, err := Parse(raw); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := params["independent_variable"].(map[string]any)["statistical_type"]; got != "DISCRETE" {
		t.Errorf("independent statistical_type mutated to %v", got)
	}
	cv := params["control_variables"].([]any)[0].(map[string]any)
	if cv["statistical_type"] != "ORDINAL" {
		t.Errorf("control statistical_type mutated to %v", cv["statistical_type"])
	}
}

func TestParse_Title(t *testing.T) {
	tests := []struct {
		desc      string
		extra     string
		want      string
		wantWarns int
	}{
		{"absent", "", "", 0},
		{"string verbatim", `"test_title": "my raw title"`, "my raw title", 0},
		{"object normalised", `"test_title": {"test_title": "this is a test title"}`, "ThisIsATestTitle", 0},
		{"object default", `"test_title": {}`, "ThisIsAGenericTitle", 0},
		{"number", `"test_title": 7`, FallbackTitle, 1},
		{"invalid object", `"test_title": {"test_title": 7}`, FallbackTitle, 1},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			doc, warnings, err := Parse(mustDecode(t, minimal(tt.extra)))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.TestTitle != tt.want {
				t.Errorf("TestTitle = %q, want %q", doc.TestTitle, tt.want)
			}
			if len(warnings) != tt.wantWarns {
				t.Errorf("len(warnings) = %d, want %d: %v", len(warnings), tt.wantWarns, warnings)
			}
		})
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		desc    string
		doc     string
		section string
	}{
		{"no root", `{}`, ""},
		{"root not object", `{"test_file_parameters": []}`, ""},
		{"empty parameters", `{"test_file_parameters": {}}`, "independent_variable"},
		{
			"bad dependent variable",
			`{"test_file_parameters": {
				"independent_variable": {"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u"},
				"dependent_variable": {"name": "y", "description": "d", "statistical_type": "ratio", "unit": "u"},
				"test_procedure": {"steps": ["a"], "data_collection": "dc", "analysis_technique": "at"}}}`,
			"dependent_variable",
		},
		{
			"empty steps",
			`{"test_file_parameters": {
				"independent_variable": {"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u"},
				"dependent_variable": {"name": "y", "description": "d", "statistical_type": "continuous", "unit": "u"},
				"test_procedure": {"steps": [], "data_collection": "dc", "analysis_technique": "at"}}}`,
			"test_procedure",
		},
		{
			"legacy test_method only",
			`{"test_file_parameters": {
				"independent_variable": {"name": "x", "description": "d", "statistical_type": "discrete", "unit": "u"},
				"dependent_variable": {"name": "y", "description": "d", "statistical_type": "continuous", "unit": "u"},
				"test_method": {"steps": ["a"], "data_collection": "dc", "analysis_technique": "at"}}}`,
			"test_method",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, _, err := Parse(mustDecode(t, tt.doc))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			var he *hypoerrors.Error
			if !errors.As(err, &he) || he.Kind != hypoerrors.KindDocumentShape {
				t.Fatalf("Parse() error = %v, want DocumentShape", err)
			}
			if he.Section != tt.section {
				t.Errorf("Section = %q, want %q", he.Section, tt.section)
			}
			if tt.section == "" && !errors.Is(err, ErrEmptyDocument) {
				t.Errorf("errors.Is(err, ErrEmptyDocument) = false for %v", err)
			}
		})
	}
}

func TestParse_BothProcedureKeys(t *testing.T) {
	doc, warnings, err := Parse(mustDecode(t, minimal(`"test_method": {"steps": ["old"]}`)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.TestProcedure.Steps[0] != "a" {
		t.Errorf("Steps = %v, want test_procedure steps", doc.TestProcedure.Steps)
	}
	if len(warnings) != 1 || warnings[0].Section != "test_method" {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestParse_OptionalSections(t *testing.T) {
	tests := []struct {
		desc          string
		extra         string
		wantMaterials int
		wantControls  int
		wantWarns     int
	}{
		{"legacy material object", `"material": {"name": "m", "description": "d", "type": "t"}`, 1, 0, 0},
		{"legacy material list", `"material": [{"name": "m", "description": "d", "type": "t"}, {"name": "bad"}]`, 1, 0, 1},
		{
			"test_materials wins",
			`"test_materials": [{"name": "a", "description": "d", "type": "t"}], "material": {"name": "b", "description": "d", "type": "t"}`,
			1, 0, 0,
		},
		{"empty test_materials falls back", `"test_materials": [], "material": {"name": "b", "description": "d", "type": "t"}`, 1, 0, 0},
		{"test_materials object falls back", `"test_materials": {"name": "a", "description": "d", "type": "t"}, "material": {"name": "b", "description": "d", "type": "t"}`, 1, 0, 1},
		{"test_materials string", `"test_materials": "x"`, 0, 0, 1},
		{"null test_materials", `"test_materials": null`, 0, 0, 0},
		{"controls not a list", `"control_variables": {"name": "c"}`, 0, 0, 1},
		{"null controls", `"control_variables": null`, 0, 0, 0},
		{"background not object", `"background": "text"`, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			doc, warnings, err := Parse(mustDecode(t, minimal(tt.extra)))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(doc.Materials) != tt.wantMaterials {
				t.Errorf("len(Materials) = %d, want %d", len(doc.Materials), tt.wantMaterials)
			}
			if len(doc.ControlVariables) != tt.wantControls {
				t.Errorf("len(ControlVariables) = %d, want %d", len(doc.ControlVariables), tt.wantControls)
			}
			if len(warnings) != tt.wantWarns {
				t.Errorf("len(warnings) = %d, want %d: %v", len(warnings), tt.wantWarns, warnings)
			}
		})
	}
}

func TestParse_SkippedItemIsEntityValidation(t *testing.T) {
	_, warnings, err := Parse(mustDecode(t, minimal(`"control_variables": [{"name": "c", "description": "d", "statistical_type": "nominal"}]`)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1: %v", len(warnings), warnings)
	}
	w := warnings[0]
	if !hypoerrors.Is(w.Err, hypoerrors.KindEntityValidation) {
		t.Errorf("warning error kind = %v, want entity validation", w.Err)
	}
	var ve *model.ValidationError
	if !errors.As(w.Err, &ve) {
		t.Errorf("errors.As(%v, *model.ValidationError) = false", w.Err)
	}
	if hypoerrors.GetExitCode(w.Err) != hypoerrors.ExitRuntimeError {
		t.Errorf("GetExitCode() = %d, want %d", hypoerrors.GetExitCode(w.Err), hypoerrors.ExitRuntimeError)
	}
}

func TestParse_MaterialPrecedence(t *testing.T) {
	doc, _, err := Parse(mustDecode(t, minimal(
		`"test_materials": [{"name": "a", "description": "d", "type": "t"}], "material": {"name": "b", "description": "d", "type": "t"}`)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Materials[0].Name != "a" {
		t.Errorf("Materials[0].Name = %q, want a", doc.Materials[0].Name)
	}
}

func TestSummarize(t *testing.T) {
	raw, err := Load(filepath.Join("testdata", "valid.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	doc, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s := Summarize(doc)
	want := Summary{
		Title:            "CpuScalingUnderLoad",
		Independent:      "Number of CPU Cores",
		Dependent:        "Throughput",
		ControlVariables: 2,
		Materials:        1,
		Steps:            3,
		Imports:          2,
		Parametrized:     true,
	}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}
