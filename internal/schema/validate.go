// Package schema provides JSON schema validation for experiment documents and batch manifests.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	schemafs "github.com/AndreyAkinshin/hypogen/schema"
)

// Definition names an entity definition under $defs in experiment.schema.json.
type Definition string

// Entity definitions.
const (
	DefTestTitle              Definition = "testTitle"
	DefBackground             Definition = "background"
	DefVariable               Definition = "variable"
	DefParameterExpectedValue Definition = "parameterExpectedValue"
	DefExpectedValue          Definition = "expectedValue"
	DefValidationProcedure    Definition = "validationProcedure"
	DefMaterial               Definition = "material"
	DefMethod                 Definition = "method"
	DefImports                Definition = "imports"
)

var definitions = []Definition{
	DefTestTitle,
	DefBackground,
	DefVariable,
	DefParameterExpectedValue,
	DefExpectedValue,
	DefValidationProcedure,
	DefMaterial,
	DefMethod,
	DefImports,
}

const (
	experimentSchemaName = "experiment.schema.json"
	manifestSchemaName   = "manifest.schema.json"
)

var (
	documentSchema *jsonschema.Schema
	manifestSchema *jsonschema.Schema
	entitySchemas  map[Definition]*jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{experimentSchemaName, manifestSchemaName} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		documentSchema, err = compiler.Compile(experimentSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile experiment schema: %w", err)
			return
		}

		manifestSchema, err = compiler.Compile(manifestSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}

		compiled := make(map[Definition]*jsonschema.Schema, len(definitions))
		for _, def := range definitions {
			sch, err := compiler.Compile(experimentSchemaName + "#/$defs/" + string(def))
			if err != nil {
				compileErr = fmt.Errorf("compile $defs/%s: %w", def, err)
				return
			}
			compiled[def] = sch
		}
		entitySchemas = compiled
	})

	return compileErr
}

// ValidateEntity validates a decoded JSON value against one entity definition.
func ValidateEntity(def Definition, v any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	sch, ok := entitySchemas[def]
	if !ok {
		return fmt.Errorf("unknown schema definition %q", def)
	}
	return sch.Validate(v)
}

// ValidateDocument validates a whole decoded experiment document.
// The parser is more lenient than this check: it skips malformed optional items
// instead of rejecting the document.
func ValidateDocument(v any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := documentSchema.Validate(v); err != nil {
		return fmt.Errorf("experiment validation failed: %w", err)
	}
	return nil
}

// ValidateManifest validates JSON data against the batch manifest schema.
func ValidateManifest(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := manifestSchema.Validate(v); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	return nil
}

// Raw returns the embedded schema text by short name ("experiment" or "manifest").
func Raw(name string) ([]byte, error) {
	switch name {
	case "", "experiment":
		return schemafs.FS.ReadFile(experimentSchemaName)
	case "manifest":
		return schemafs.FS.ReadFile(manifestSchemaName)
	default:
		return nil, fmt.Errorf("unknown schema %q (valid: experiment, manifest)", name)
	}
}

// Violation is a single leaf failure extracted from a schema validation error.
type Violation struct {
	Field   string // dotted instance path, empty for the value itself
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// Violations flattens a schema validation error into its leaf failures,
// sorted by field. Errors that did not come from schema validation yield
// a single violation carrying the error text.
func Violations(err error) []Violation {
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Violation{{Message: err.Error()}}
	}

	printer := message.NewPrinter(language.English)
	var out []Violation
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		field := strings.Join(e.InstanceLocation, ".")
		if req, ok := e.ErrorKind.(*kind.Required); ok {
			for _, missing := range req.Missing {
				out = append(out, Violation{Field: joinField(field, missing), Message: "is required"})
			}
			return
		}
		out = append(out, Violation{Field: field, Message: e.ErrorKind.LocalizedString(printer)})
	}
	walk(ve)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// FirstViolation returns the first violation of err, or a zero Violation.
func FirstViolation(err error) Violation {
	vs := Violations(err)
	if len(vs) == 0 {
		return Violation{}
	}
	return vs[0]
}

// Normalize converts a decoded value into the JSON value model the validator
// expects (maps with string keys, []any, json.Number, string, bool, nil) by
// encoding it and decoding it again with number precision preserved.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
