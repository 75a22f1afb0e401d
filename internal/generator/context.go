// Package generator turns a parsed experiment into a rendered Python test file.
package generator

import (
	"strings"
	"time"
	"unicode"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/experiment"
	"github.com/AndreyAkinshin/hypogen/internal/model"
	"github.com/AndreyAkinshin/hypogen/internal/naming"
)

// TimestampLayout is the format of Context.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Context is everything a template can reference.
type Context struct {
	TestTitle     string
	TestClassName string
	TestFuncName  string
	Description   string

	Background          model.Background
	IndependentVariable model.Variable
	DependentVariable   model.Variable
	ControlVariables    []model.Variable
	Materials           []model.Material
	TestProcedure       model.Method
	Imports             []model.Import

	IndependentVarName string
	DependentVarName   string
	ExpectedValue      any
	IsExceptionTest    bool
	ExceptionName      string

	Timestamp      string
	RunID          string
	Harness        config.Harness
	Parametrized   bool
	Debug          bool
	HasFixtures    bool
	DocstringStyle string
	TestParams     map[string]any
}

// ContextOptions carries the per-call inputs of BuildContext.
type ContextOptions struct {
	Now   time.Time
	RunID string
	Log   Logger
}

// BuildContext derives the template context for doc under cfg.
//
// When the independent variable carries a value list and cfg does not ask for
// a parametrized test, the context is promoted to parametrized anyway. cfg
// itself is left untouched.
func BuildContext(doc *experiment.Document, cfg *config.GenerationConfig, opts ContextOptions) *Context {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var expected any
	if ev := doc.DependentVariable.ExpectedValue; ev != nil {
		expected = ev.Value
	}
	isException := false
	if s, ok := expected.(string); ok && strings.Contains(s, "Error") {
		isException = true
	}

	ctx := &Context{
		TestTitle:     doc.TestTitle,
		TestClassName: naming.ToPascalCase(cfg.Name),
		TestFuncName:  naming.ToSnakeCase(cfg.Name),
		Description:   cfg.Description,

		Background:          doc.Background,
		IndependentVariable: doc.IndependentVariable,
		DependentVariable:   doc.DependentVariable,
		ControlVariables:    doc.ControlVariables,
		Materials:           doc.Materials,
		TestProcedure:       doc.TestProcedure,
		Imports:             doc.Imports,

		IndependentVarName: naming.SanitizeIdentifier(doc.IndependentVariable.Name),
		DependentVarName:   naming.SanitizeIdentifier(naming.ToSnakeCase(doc.DependentVariable.Name)),
		ExpectedValue:      expected,
		IsExceptionTest:    isException,

		Timestamp:      now.Format(TimestampLayout),
		RunID:          opts.RunID,
		Harness:        cfg.HarnessName(),
		Parametrized:   cfg.Parametrized,
		Debug:          cfg.Debug,
		HasFixtures:    cfg.HasFixtures,
		DocstringStyle: cfg.DocstringStyle,
		TestParams:     cfg.TestParams,
	}
	if isException {
		ctx.ExceptionName = exceptionName(expected.(string))
	}

	if doc.IndependentVariable.IsParametrized() && !cfg.Parametrized {
		ctx.Parametrized = true
		if cfg.Debug {
			log.Debug("independent variable %q has %d values; generating a parametrized test",
				doc.IndependentVariable.Name, len(doc.IndependentVariable.Values))
		}
	}
	return ctx
}

// exceptionName extracts the leading dotted identifier of s, so that
// "ValueError: bad input" yields "ValueError".
func exceptionName(s string) string {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.')
	})
	if end >= 0 {
		s = s[:end]
	}
	if s == "" {
		return "Exception"
	}
	return s
}

// Case is one input/expected pair of a parametrized test.
type Case struct {
	Input       any
	Expected    any
	Description string
}

// Cases returns the parametrized cases of the test. Per-input expectations
// of the dependent variable win; otherwise every independent value is paired
// with the scalar expected value. Without any value list the scalar value
// and expectation form a single case, so a parametrized test always runs.
func (c *Context) Cases() []Case {
	if cases := c.listCases(); len(cases) > 0 {
		return cases
	}
	return []Case{{Input: c.IndependentVariable.Value, Expected: c.ExpectedValue}}
}

func (c *Context) listCases() []Case {
	if ev := c.DependentVariable.ExpectedValue; ev.IsParametrized() {
		cases := make([]Case, len(ev.Values))
		for i, v := range ev.Values {
			cases[i] = Case{Input: v.Input, Expected: v.Expected, Description: v.Description}
		}
		return cases
	}
	cases := make([]Case, len(c.IndependentVariable.Values))
	for i, v := range c.IndependentVariable.Values {
		cases[i] = Case{Input: v.Value, Expected: c.ExpectedValue, Description: v.Description}
	}
	return cases
}

// ValidationProcedures returns the procedures attached to the dependent variable.
func (c *Context) ValidationProcedures() []model.ValidationProcedure {
	if ev := c.DependentVariable.ExpectedValue; ev != nil {
		return ev.ValidationProcedures
	}
	return nil
}
