package model

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// ValidationError reports an entity that failed structural validation.
type ValidationError struct {
	Model   string // entity name, e.g. "Variable"
	Field   string // dotted path inside the entity, empty for the entity itself
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Model, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.Model, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// schemaError converts a schema validation failure into a ValidationError.
func schemaError(model string, err error) *ValidationError {
	violations := schema.Violations(err)
	if len(violations) == 0 {
		return &ValidationError{Model: model, Message: err.Error(), Cause: err}
	}
	first := violations[0]
	msg := first.Message
	if extra := len(violations) - 1; extra > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, extra)
	}
	return &ValidationError{Model: model, Field: first.Field, Message: msg, Cause: err}
}

// nestedError re-roots a nested entity failure under field of the enclosing model.
func nestedError(model, field string, err error) *ValidationError {
	var inner *ValidationError
	if errors.As(err, &inner) {
		path := field
		if inner.Field != "" {
			path = field + "." + inner.Field
		}
		return &ValidationError{Model: model, Field: path, Message: inner.Message, Cause: err}
	}
	return &ValidationError{Model: model, Field: field, Message: err.Error(), Cause: err}
}
