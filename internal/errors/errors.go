// Package errors provides structured error types and exit codes for hypogen.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitSuccess       = 0 // Success
	ExitRuntimeError  = 1 // Runtime error (I/O failure, render failure, etc.)
	ExitInputError    = 2 // Invalid document, configuration, harness or pending validators
	ExitTemplateError = 3 // No usable template could be resolved
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindDocumentShape
	KindEntityValidation
	KindUnsupportedHarness
	KindTemplateResolution
	KindIO
	KindValidation
)

var kindNames = map[ErrorKind]string{
	KindRuntime:            "runtime",
	KindConfig:             "config",
	KindDocumentShape:      "document shape",
	KindEntityValidation:   "entity validation",
	KindUnsupportedHarness: "unsupported harness",
	KindTemplateResolution: "template resolution",
	KindIO:                 "io",
	KindValidation:         "validation",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the base error type for hypogen.
type Error struct {
	Kind    ErrorKind
	Message string
	Section string // Document section (e.g. "independent_variable") if applicable
	Model   string // Entity model name if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Section != "" && e.Model != "":
		return fmt.Sprintf("[%s] %s: %s", e.Section, e.Model, e.Message)
	case e.Section != "":
		return fmt.Sprintf("[%s] %s", e.Section, e.Message)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindDocumentShape, KindUnsupportedHarness, KindValidation:
		return ExitInputError
	case KindTemplateResolution:
		return ExitTemplateError
	default:
		return ExitRuntimeError
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindRuntime, Message: message, Cause: err}
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...any) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// DocumentShape creates an error for a document whose structure cannot be used.
// section names the offending key of test_file_parameters, if any.
func DocumentShape(section string, cause error) *Error {
	msg := "invalid experiment document"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindDocumentShape, Section: section, Message: msg, Cause: cause}
}

// EntityValidation creates an error for a single entity that failed validation.
func EntityValidation(model, message string, cause error) *Error {
	return &Error{Kind: KindEntityValidation, Model: model, Message: message, Cause: cause}
}

// UnsupportedHarness creates an error for an unknown test harness name.
func UnsupportedHarness(name string, supported []string) *Error {
	return &Error{
		Kind:    KindUnsupportedHarness,
		Message: fmt.Sprintf("unsupported harness %q (supported: %v)", name, supported),
	}
}

// TemplateResolution creates an error for a harness without a usable template.
func TemplateResolution(harness string, cause error) *Error {
	return &Error{
		Kind:    KindTemplateResolution,
		Message: fmt.Sprintf("no template found for harness %q", harness),
		Cause:   cause,
	}
}

// IO wraps a filesystem failure on path.
func IO(path string, err error) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf("%s: %v", path, err), Cause: err}
}

// Validation creates an error for validators that are not yet implemented.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
