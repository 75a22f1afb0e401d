// Package model defines the validated building blocks of an experiment document.
//
// Every entity is built by a constructor that validates the decoded JSON value
// against its definition in the embedded experiment schema, then applies
// entity-specific checks. Derived values (Python names, inferred types,
// import statements, step comments) are methods computed on demand.
package model

import (
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/naming"
	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// ParameterValue is one entry in a parametrized variable's value list.
type ParameterValue struct {
	Value       any    `json:"value"`
	Description string `json:"description,omitempty"`
}

// Variable is a measured or controlled characteristic of the experiment.
//
// Independent and control variables normally carry Value or Values; a
// dependent variable normally carries ExpectedValue.
type Variable struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	StatisticalType StatisticalType  `json:"statistical_type"`
	Unit            string           `json:"unit"`
	Value           any              `json:"value,omitempty"`
	Values          []ParameterValue `json:"values,omitempty"`
	ExpectedValue   *ExpectedValue   `json:"expected_value,omitempty"`
}

// NewVariable validates raw and builds a Variable.
// statistical_type must already be lower-case.
func NewVariable(raw any) (Variable, error) {
	obj, err := checkObject("Variable", schema.DefVariable, raw)
	if err != nil {
		return Variable{}, err
	}

	st, err := ParseStatisticalType(stringField(obj, "statistical_type"))
	if err != nil {
		return Variable{}, &ValidationError{Model: "Variable", Field: "statistical_type", Message: err.Error(), Cause: err}
	}

	v := Variable{
		Name:            stringField(obj, "name"),
		Description:     stringField(obj, "description"),
		StatisticalType: st,
		Unit:            stringField(obj, "unit"),
		Value:           obj["value"],
		Values:          parameterValues(listField(obj, "values")),
	}

	if evRaw, ok := obj["expected_value"]; ok && evRaw != nil {
		ev, err := NewExpectedValue(evRaw)
		if err != nil {
			return Variable{}, nestedError("Variable", "expected_value", err)
		}
		v.ExpectedValue = &ev
	}

	return v, nil
}

// parameterValues accepts both {"value": ..., "description": ...} objects and bare values.
func parameterValues(items []any) []ParameterValue {
	if len(items) == 0 {
		return nil
	}
	out := make([]ParameterValue, 0, len(items))
	for _, item := range items {
		out = append(out, parameterValue(item))
	}
	return out
}

func parameterValue(item any) ParameterValue {
	obj, ok := item.(map[string]any)
	if !ok {
		return ParameterValue{Value: item}
	}
	value, hasValue := obj["value"]
	if !hasValue {
		return ParameterValue{Value: item}
	}
	switch desc := obj["description"].(type) {
	case nil:
		return ParameterValue{Value: value}
	case string:
		return ParameterValue{Value: value, Description: desc}
	default:
		// A non-string description is not a ParameterValue; keep the object as-is.
		return ParameterValue{Value: item}
	}
}

// NameInPython returns the snake_case name used for the variable in generated code.
func (v Variable) NameInPython() string {
	return naming.ToSnakeCase(v.Name)
}

// TypeInPython returns the inferred Python type for the variable.
func (v Variable) TypeInPython() (InferredType, error) {
	return InferType(v.StatisticalType)
}

// PythonType is TypeInPython for templates; it returns an empty string for an unknown type.
func (v Variable) PythonType() string {
	t, err := v.TypeInPython()
	if err != nil {
		return ""
	}
	return t.String()
}

// IsParametrized reports whether the variable carries a list of values.
func (v Variable) IsParametrized() bool {
	return len(v.Values) > 0
}

// RawValues returns the bare values of a parametrized variable.
func (v Variable) RawValues() []any {
	out := make([]any, len(v.Values))
	for i, pv := range v.Values {
		out[i] = pv.Value
	}
	return out
}

func (v Variable) String() string {
	return fmt.Sprintf("%s (%s, %s)", v.Name, v.StatisticalType, v.Unit)
}
