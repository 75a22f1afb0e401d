// Package hypogen provides public constants for external tools
// integrating with hypogen.
package hypogen

// Exit codes returned by the hypogen CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (unreadable document, write error, etc.).
	ExitFailure = 1

	// ExitInputError indicates invalid input: bad flags or config, a malformed
	// document, an unsupported harness or pending validators.
	ExitInputError = 2

	// ExitTemplateError indicates that no usable template was found for the harness.
	ExitTemplateError = 3
)
