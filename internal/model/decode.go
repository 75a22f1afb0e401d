package model

import (
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// checkObject validates raw against def and returns it as an object.
func checkObject(model string, def schema.Definition, raw any) (map[string]any, error) {
	if err := schema.ValidateEntity(def, raw); err != nil {
		return nil, schemaError(model, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Model: model, Message: fmt.Sprintf("expected an object, got %T", raw)}
	}
	return obj, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringsField(obj map[string]any, key string) []string {
	items, _ := obj[key].([]any)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func objectField(obj map[string]any, key string) map[string]any {
	m, _ := obj[key].(map[string]any)
	return m
}

func listField(obj map[string]any, key string) []any {
	items, _ := obj[key].([]any)
	return items
}
