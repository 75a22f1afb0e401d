package generator

import "github.com/google/uuid"

// NewRunID returns a time-ordered identifier for a generation run.
// It falls back to a random UUID when a v7 one cannot be produced.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
