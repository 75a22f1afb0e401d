package model

import (
	"strings"

	"github.com/AndreyAkinshin/hypogen/internal/naming"
	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// DefaultTestTitle is used when a title object omits test_title.
const DefaultTestTitle = "This is a generic title"

// TestTitle is the object form of a document title.
type TestTitle struct {
	Title string `json:"test_title"`
}

// NewTestTitle validates raw and builds a normalised TestTitle.
//
// Normalisation capitalises every whitespace-separated token and joins them
// without separators. Each token is lower-cased first, so existing PascalCase
// is not preserved: "AlreadyPascalCase" becomes "Alreadypascalcase".
func NewTestTitle(raw any) (TestTitle, error) {
	obj, err := checkObject("TestTitle", schema.DefTestTitle, raw)
	if err != nil {
		return TestTitle{}, err
	}
	title := DefaultTestTitle
	if s, ok := obj["test_title"].(string); ok {
		title = s
	}
	return TestTitle{Title: normalizeTitle(title)}, nil
}

func normalizeTitle(title string) string {
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		b.WriteString(naming.Capitalize(word))
	}
	return b.String()
}
