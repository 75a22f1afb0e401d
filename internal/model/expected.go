package model

import (
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// ParameterExpectedValue is the expected output for one parametrized input.
type ParameterExpectedValue struct {
	Input       any    `json:"input"`
	Expected    any    `json:"expected"`
	Description string `json:"description,omitempty"`
}

// NewParameterExpectedValue validates raw and builds a ParameterExpectedValue.
func NewParameterExpectedValue(raw any) (ParameterExpectedValue, error) {
	obj, err := checkObject("ParameterExpectedValue", schema.DefParameterExpectedValue, raw)
	if err != nil {
		return ParameterExpectedValue{}, err
	}
	return ParameterExpectedValue{
		Input:       obj["input"],
		Expected:    obj["expected"],
		Description: stringField(obj, "description"),
	}, nil
}

// ValidationProcedure describes how an actual result is checked against the
// expected one. It is descriptive only: Condition is carried through for
// downstream use and never evaluated here.
type ValidationProcedure struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Steps       []string       `json:"steps"`
	Kwargs      map[string]any `json:"kwargs,omitempty"`
	Condition   string         `json:"condition,omitempty"`
}

// NewValidationProcedure validates raw and builds a ValidationProcedure.
func NewValidationProcedure(raw any) (ValidationProcedure, error) {
	obj, err := checkObject("ValidationProcedure", schema.DefValidationProcedure, raw)
	if err != nil {
		return ValidationProcedure{}, err
	}
	steps := stringsField(obj, "steps")
	if steps == nil {
		steps = []string{}
	}
	return ValidationProcedure{
		Name:        stringField(obj, "name"),
		Description: stringField(obj, "description"),
		Steps:       steps,
		Kwargs:      objectField(obj, "kwargs"),
		Condition:   stringField(obj, "condition"),
	}, nil
}

// LegacyValidationKey is the pre-rename spelling of validation_procedures.
const LegacyValidationKey = "validation_methods"

// ExpectedValue is what a dependent variable should measure.
// Value serves scalar tests, Values serves parametrized tests. Both may be
// absent; both being present is accepted.
type ExpectedValue struct {
	Value                any                      `json:"value,omitempty"`
	Values               []ParameterExpectedValue `json:"values,omitempty"`
	ValidationProcedures []ValidationProcedure    `json:"validation_procedures,omitempty"`
}

// NewExpectedValue validates raw and builds an ExpectedValue. A single
// malformed nested item fails the whole value.
func NewExpectedValue(raw any) (ExpectedValue, error) {
	obj, err := checkObject("ExpectedValue", schema.DefExpectedValue, raw)
	if err != nil {
		return ExpectedValue{}, err
	}
	if _, ok := obj[LegacyValidationKey]; ok {
		return ExpectedValue{}, &ValidationError{
			Model:   "ExpectedValue",
			Field:   LegacyValidationKey,
			Message: "is no longer supported; rename it to validation_procedures",
		}
	}

	ev := ExpectedValue{Value: obj["value"]}

	for i, item := range listField(obj, "values") {
		pev, err := NewParameterExpectedValue(item)
		if err != nil {
			return ExpectedValue{}, nestedError("ExpectedValue", fmt.Sprintf("values.%d", i), err)
		}
		ev.Values = append(ev.Values, pev)
	}

	for i, item := range listField(obj, "validation_procedures") {
		vp, err := NewValidationProcedure(item)
		if err != nil {
			return ExpectedValue{}, nestedError("ExpectedValue", fmt.Sprintf("validation_procedures.%d", i), err)
		}
		ev.ValidationProcedures = append(ev.ValidationProcedures, vp)
	}

	return ev, nil
}

// HasValue reports whether a scalar expectation was supplied.
func (ev *ExpectedValue) HasValue() bool {
	return ev != nil && ev.Value != nil
}

// IsParametrized reports whether per-input expectations were supplied.
func (ev *ExpectedValue) IsParametrized() bool {
	return ev != nil && len(ev.Values) > 0
}
