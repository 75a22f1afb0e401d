package model

import (
	"fmt"
	"strings"
)

// StatisticalType classifies how a variable is measured.
type StatisticalType string

// Statistical types.
const (
	// Nominal describes a name, label or category without natural order.
	Nominal StatisticalType = "nominal"
	// Ordinal values are categories with an order relation between them.
	Ordinal StatisticalType = "ordinal"
	// Continuous variables take any real value within an interval.
	Continuous StatisticalType = "continuous"
	// Discrete variables take a finite number of values within an interval.
	Discrete StatisticalType = "discrete"
)

// StatisticalTypes lists every valid statistical type.
func StatisticalTypes() []StatisticalType {
	return []StatisticalType{Nominal, Ordinal, Continuous, Discrete}
}

// InferredType is the runtime type a generated test uses for a variable.
type InferredType string

// Inferred types, spelled the way they appear in generated Python code.
const (
	TypeText    InferredType = "str"
	TypeInteger InferredType = "int"
	TypeFloat   InferredType = "float"
)

func (t InferredType) String() string {
	return string(t)
}

// UnknownStatisticalTypeError is returned for values outside the closed set.
type UnknownStatisticalTypeError struct {
	Value string
}

func (e *UnknownStatisticalTypeError) Error() string {
	valid := make([]string, 0, 4)
	for _, st := range StatisticalTypes() {
		valid = append(valid, string(st))
	}
	return fmt.Sprintf("unknown statistical type: %q (valid: %s)", e.Value, strings.Join(valid, ", "))
}

// InferType maps a statistical type to its inferred runtime type.
// Input is matched exactly; case folding happens before a StatisticalType is built.
func InferType(st StatisticalType) (InferredType, error) {
	switch st {
	case Nominal, Ordinal:
		return TypeText, nil
	case Discrete:
		return TypeInteger, nil
	case Continuous:
		return TypeFloat, nil
	default:
		return "", &UnknownStatisticalTypeError{Value: string(st)}
	}
}

// ParseStatisticalType converts s to a StatisticalType without case folding.
func ParseStatisticalType(s string) (StatisticalType, error) {
	st := StatisticalType(s)
	if _, err := InferType(st); err != nil {
		return "", err
	}
	return st, nil
}
