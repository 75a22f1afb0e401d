package validator

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestModule(t *testing.T) {
	t.Parallel()
	m := Module{Procedure: "Within Tolerance", Path: "validators.numeric"}
	if m.Name() != "Within Tolerance" {
		t.Errorf("Name() = %q", m.Name())
	}
	want := "from validators.numeric import validator_within_tolerance"
	if got := m.ImportString(); got != want {
		t.Errorf("ImportString() = %q, want %q", got, want)
	}
}

func TestFuncName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"range_check", "validator_range_check"},
		{"Range Check", "validator_range_check"},
		{"3 sigma", "validator_var_3_sigma"},
		{"", "validator_variable"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := FuncName(tt.input); got != tt.want {
				t.Errorf("FuncName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	r, err := NewRegistry(
		Module{Procedure: "b", Path: "v"},
		Module{Procedure: "a", Path: "v"},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
	if v, ok := r.Lookup("a"); !ok || v.Name() != "a" {
		t.Errorf("Lookup(a) = %v, %v", v, ok)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) found a validator")
	}
	if err := r.Register(Module{Procedure: "a", Path: "other"}); err == nil {
		t.Error("Register(duplicate) = nil, want error")
	}
}

func TestNewRegistry_Duplicate(t *testing.T) {
	t.Parallel()
	_, err := NewRegistry(Module{Procedure: "x"}, Module{Procedure: "x"})
	if err == nil {
		t.Error("NewRegistry(duplicates) = nil error, want error")
	}
}

func TestRegistry_NilLookup(t *testing.T) {
	t.Parallel()
	var r *Registry
	if _, ok := r.Lookup("x"); ok {
		t.Error("nil Registry Lookup() found a validator")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()
	r, _ := NewRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("p%02d", i)
			if err := r.Register(Module{Procedure: name, Path: "v"}); err != nil {
				t.Errorf("Register(%s) error = %v", name, err)
			}
			r.Lookup(name)
		}()
	}
	wg.Wait()
	if n := len(r.Names()); n != 20 {
		t.Errorf("len(Names()) = %d, want 20", n)
	}
}
