// Package validator tracks the implementations behind validation procedures.
//
// A procedure is satisfied either by a registered validator (a function in a
// shared Python module) or by an implemented stub file. Missing stubs are
// generated with a NotImplementedError body; generation stops until they are
// implemented.
package validator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/AndreyAkinshin/hypogen/internal/naming"
)

// Validator is an existing implementation of a validation procedure.
type Validator interface {
	// Name is the procedure name the validator implements.
	Name() string
	// ImportString is the Python statement bringing the validator into scope.
	ImportString() string
}

// Module is a validator defined in a Python module.
type Module struct {
	Procedure string // procedure name
	Path      string // dotted module path, e.g. "validators.numeric"
}

func (m Module) Name() string {
	return m.Procedure
}

func (m Module) ImportString() string {
	return fmt.Sprintf("from %s import %s", m.Path, FuncName(m.Procedure))
}

// FuncName returns the Python function name for a procedure.
func FuncName(procedure string) string {
	return "validator_" + naming.SanitizeIdentifier(procedure)
}

// Registry is a set of validators keyed by procedure name.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry creates a Registry holding validators.
func NewRegistry(validators ...Validator) (*Registry, error) {
	r := &Registry{validators: make(map[string]Validator)}
	for _, v := range validators {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds v. Registering a second validator for a name is an error.
func (r *Registry) Register(v Validator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.validators[v.Name()]; exists {
		return fmt.Errorf("validator %q already registered", v.Name())
	}
	r.validators[v.Name()] = v
	return nil
}

// Lookup returns the validator for a procedure name.
func (r *Registry) Lookup(name string) (Validator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Names returns the registered procedure names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
