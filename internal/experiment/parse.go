package experiment

import (
	"errors"
	"fmt"
	"strings"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/model"
)

// ErrEmptyDocument is wrapped by the error returned for a document without
// a test_file_parameters object.
var ErrEmptyDocument = errors.New("experiment document has no " + RootKey + " object")

// Legacy spellings of renamed sections.
const (
	legacyProcedureKey = "test_method"
	legacyMaterialKey  = "material"
)

// Parse builds a Document from a decoded experiment document. Values inside
// raw must follow the JSON value model (see experiment.Load). raw is not modified.
//
// The error, when non-nil, is a *hypoerrors.Error of kind DocumentShape naming
// the offending section.
func Parse(raw map[string]any) (*Document, []Warning, error) {
	params, ok := raw[RootKey].(map[string]any)
	if !ok {
		return nil, nil, hypoerrors.DocumentShape("", ErrEmptyDocument)
	}

	p := &parser{params: params}
	doc := &Document{}

	doc.TestTitle = p.title()
	doc.Background = p.background()

	var err error
	if doc.IndependentVariable, err = p.requiredVariable("independent_variable"); err != nil {
		return nil, nil, err
	}
	if doc.DependentVariable, err = p.requiredVariable("dependent_variable"); err != nil {
		return nil, nil, err
	}
	if doc.TestProcedure, err = p.procedure(); err != nil {
		return nil, nil, err
	}

	doc.ControlVariables = parseList(p, "control_variables", func(item any) (model.Variable, error) {
		return model.NewVariable(lowerStatisticalType(item))
	})
	doc.Materials = p.materials()
	doc.Imports = parseList(p, "imports", model.NewImport)

	return doc, p.warnings, nil
}

type parser struct {
	params   map[string]any
	warnings []Warning
}

func (p *parser) warn(section string, index int, item any, err error) {
	p.warnings = append(p.warnings, Warning{Section: section, Index: index, Name: itemName(item), Err: err})
}

func (p *parser) title() string {
	raw, ok := p.params["test_title"]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		title, err := model.NewTestTitle(v)
		if err != nil {
			p.warn("test_title", -1, nil, entityError(err))
			return FallbackTitle
		}
		return title.Title
	default:
		p.warn("test_title", -1, nil, fmt.Errorf("expected a string or an object, got %s", describe(raw)))
		return FallbackTitle
	}
}

func (p *parser) background() model.Background {
	raw, ok := p.params["background"]
	if !ok || raw == nil {
		return model.Background{}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		p.warn("background", -1, nil, fmt.Errorf("expected an object, got %s", describe(raw)))
		return model.Background{}
	}
	return model.NewBackground(obj)
}

func (p *parser) requiredVariable(section string) (model.Variable, error) {
	raw, ok := p.params[section]
	if !ok || raw == nil {
		return model.Variable{}, hypoerrors.DocumentShape(section, fmt.Errorf("%s is required", section))
	}
	v, err := model.NewVariable(lowerStatisticalType(raw))
	if err != nil {
		return model.Variable{}, shapeError(section, err)
	}
	return v, nil
}

func (p *parser) procedure() (model.Method, error) {
	raw, ok := p.params["test_procedure"]
	_, hasLegacy := p.params[legacyProcedureKey]

	switch {
	case !ok && hasLegacy:
		return model.Method{}, hypoerrors.DocumentShape(legacyProcedureKey,
			fmt.Errorf("%s is no longer supported; rename it to test_procedure", legacyProcedureKey))
	case !ok || raw == nil:
		return model.Method{}, hypoerrors.DocumentShape("test_procedure", errors.New("test_procedure is required"))
	case hasLegacy:
		p.warn(legacyProcedureKey, -1, nil, errors.New("ignored in favour of test_procedure"))
	}

	m, err := model.NewMethod(raw)
	if err != nil {
		return model.Method{}, shapeError("test_procedure", err)
	}
	return m, nil
}

func (p *parser) materials() []model.Material {
	switch raw := p.params["test_materials"].(type) {
	case nil:
	case []any:
		if len(raw) > 0 {
			return parseItems(p, "test_materials", raw, model.NewMaterial)
		}
	default:
		p.warn("test_materials", -1, nil, fmt.Errorf("expected a list, got %s", describe(raw)))
	}
	switch legacy := p.params[legacyMaterialKey].(type) {
	case map[string]any:
		return parseItems(p, legacyMaterialKey, []any{legacy}, model.NewMaterial)
	case []any:
		return parseItems(p, legacyMaterialKey, legacy, model.NewMaterial)
	}
	return nil
}

// parseList parses the optional list stored under section, skipping bad items.
func parseList[T any](p *parser, section string, build func(any) (T, error)) []T {
	raw, ok := p.params[section]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		p.warn(section, -1, nil, fmt.Errorf("expected a list, got %s", describe(raw)))
		return nil
	}
	return parseItems(p, section, items, build)
}

func parseItems[T any](p *parser, section string, items []any, build func(any) (T, error)) []T {
	var out []T
	for i, item := range items {
		v, err := build(item)
		if err != nil {
			p.warn(section, i, item, entityError(err))
			continue
		}
		out = append(out, v)
	}
	return out
}

// lowerStatisticalType returns raw with a lower-cased statistical_type,
// copying the object instead of modifying it.
func lowerStatisticalType(raw any) any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	st, ok := obj["statistical_type"].(string)
	if !ok || st == strings.ToLower(st) {
		return raw
	}
	copied := make(map[string]any, len(obj))
	for k, v := range obj {
		copied[k] = v
	}
	copied["statistical_type"] = strings.ToLower(st)
	return copied
}

func shapeError(section string, err error) error {
	e := hypoerrors.DocumentShape(section, err)
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		e.Model = ve.Model
		e.Message = ve.Message
		if ve.Field != "" {
			e.Message = ve.Field + ": " + ve.Message
		}
	}
	return e
}

// entityError marks a skipped entity. The message is the entity's own.
func entityError(err error) error {
	modelName := ""
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		modelName = ve.Model
	}
	return hypoerrors.EntityValidation(modelName, err.Error(), err)
}

func itemName(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := obj["name"].(string)
	return name
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	default:
		return "a number"
	}
}
