package generator

import (
	"bytes"
	"fmt"
	"regexp"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
)

// builtinPlaceholders maps $NAME$ placeholders to the template actions they
// stand for. They are expanded in the template source before parsing, so
// text coming from the document is never rewritten.
var builtinPlaceholders = map[string]string{
	"TIMESTAMP": "{{.Timestamp}}",
	"RUN_ID":    "{{.RunID}}",
	"TEST_NAME": "test_{{.TestFuncName}}",
	"HARNESS":   "{{.Harness}}",
}

var placeholderPattern = regexp.MustCompile(`\$([A-Z][A-Z0-9_]*)\$`)

// Render executes t over a copy of ctx. Unknown placeholders found in the
// template source are left in place and reported as warnings.
func Render(t *Template, ctx *Context) (string, []string, error) {
	data := *ctx
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, &data); err != nil {
		return "", nil, hypoerrors.Wrap(err, fmt.Sprintf("render %s template (%s): %v", t.Harness, t.Source, err))
	}

	var warnings []string
	for _, name := range t.unknown {
		warnings = append(warnings, fmt.Sprintf("unknown placeholder $%s$ in %s template", name, t.Source))
	}
	return buf.String(), warnings, nil
}

// expandPlaceholders replaces every known placeholder in src with its action
// and returns the names of unknown ones in order of first appearance.
func expandPlaceholders(src string) (string, []string) {
	var unknowns []string
	seen := make(map[string]bool)
	expanded := placeholderPattern.ReplaceAllStringFunc(src, func(match string) string {
		name := match[1 : len(match)-1]
		if action, ok := builtinPlaceholders[name]; ok {
			return action
		}
		if !seen[name] {
			unknowns = append(unknowns, name)
			seen[name] = true
		}
		return match
	})
	return expanded, unknowns
}
