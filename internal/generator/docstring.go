package generator

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/hypogen/internal/model"
)

// VariableDocs renders the variable, validation and procedure part of the
// test docstring in the configured docstring style, without indentation.
func (c *Context) VariableDocs() string {
	var b strings.Builder
	switch c.DocstringStyle {
	case "numpy":
		b.WriteString("Parameters\n----------\n")
	case "sphinx":
		b.WriteString("Variables:\n")
	default:
		b.WriteString("Args:\n")
	}

	writeVar := func(v model.Variable) {
		fmt.Fprintf(&b, "        %s (%s, %s): %s\n", v.Name, v.PythonType(), v.Unit, v.Description)
	}
	b.WriteString("    Independent Variable:\n")
	writeVar(c.IndependentVariable)
	b.WriteString("    Dependent Variable:\n")
	writeVar(c.DependentVariable)
	b.WriteString("    Control Variables:\n")
	if len(c.ControlVariables) == 0 {
		b.WriteString("        None\n")
	}
	for _, v := range c.ControlVariables {
		writeVar(v)
	}

	if procs := c.ValidationProcedures(); len(procs) > 0 {
		b.WriteString("\nValidation:\n")
		for _, p := range procs {
			fmt.Fprintf(&b, "    %s: %s", p.Name, p.Description)
			if p.Condition != "" {
				fmt.Fprintf(&b, " [condition: %s]", p.Condition)
			}
			b.WriteString("\n")
			for _, step := range p.Steps {
				fmt.Fprintf(&b, "        - %s\n", step)
			}
		}
	}

	if len(c.Materials) > 0 {
		b.WriteString("\nMaterials:\n")
		for _, m := range c.Materials {
			fmt.Fprintf(&b, "    %s (%s): %s\n", m.Name, m.Type, m.Description)
		}
	}

	fmt.Fprintf(&b, "\nData collection: %s\n", c.TestProcedure.DataCollection)
	fmt.Fprintf(&b, "Analysis technique: %s", c.TestProcedure.AnalysisTechnique)
	return b.String()
}
