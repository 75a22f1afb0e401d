package model

import (
	"errors"
	"strings"
	"testing"
)

func TestInferType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		st   StatisticalType
		want InferredType
	}{
		{Nominal, TypeText},
		{Ordinal, TypeText},
		{Discrete, TypeInteger},
		{Continuous, TypeFloat},
	}
	for _, tt := range tests {
		t.Run(string(tt.st), func(t *testing.T) {
			t.Parallel()
			got, err := InferType(tt.st)
			if err != nil {
				t.Fatalf("InferType(%q) error = %v", tt.st, err)
			}
			if got != tt.want {
				t.Errorf("InferType(%q) = %q, want %q", tt.st, got, tt.want)
			}
		})
	}
}

func TestInferType_Unknown(t *testing.T) {
	t.Parallel()
	for _, input := range []StatisticalType{"NOMINAL", "ratio", ""} {
		_, err := InferType(input)
		var unknown *UnknownStatisticalTypeError
		if !errors.As(err, &unknown) {
			t.Errorf("InferType(%q) error = %v, want UnknownStatisticalTypeError", input, err)
			continue
		}
		if unknown.Value != string(input) {
			t.Errorf("UnknownStatisticalTypeError.Value = %q, want %q", unknown.Value, input)
		}
		if want := "(valid: nominal, ordinal, continuous, discrete)"; !strings.HasSuffix(err.Error(), want) {
			t.Errorf("error = %q, want suffix %q", err, want)
		}
	}
}

func TestStatisticalTypes_AllInfer(t *testing.T) {
	t.Parallel()
	types := StatisticalTypes()
	if len(types) != 4 {
		t.Fatalf("StatisticalTypes() has %d entries, want 4", len(types))
	}
	for _, st := range types {
		if _, err := ParseStatisticalType(string(st)); err != nil {
			t.Errorf("ParseStatisticalType(%q) error = %v", st, err)
		}
	}
	if _, err := ParseStatisticalType("Discrete"); err == nil {
		t.Error("ParseStatisticalType(Discrete) = nil error, want error (no case folding)")
	}
}
