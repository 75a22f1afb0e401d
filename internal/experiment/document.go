// Package experiment parses experiment documents into validated entities.
//
// Required sections (independent_variable, dependent_variable, test_procedure)
// are fatal when malformed. Optional list sections are parsed per item: a
// malformed item is skipped and reported as a Warning while the rest survive.
package experiment

import (
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/model"
)

// RootKey is the key every experiment document nests its content under.
const RootKey = "test_file_parameters"

// FallbackTitle replaces a test_title that is neither a string nor a valid title object.
const FallbackTitle = "DefaultTestTitle"

// Document is a parsed experiment. It is not modified after Parse returns.
type Document struct {
	TestTitle           string
	Background          model.Background
	IndependentVariable model.Variable
	DependentVariable   model.Variable
	ControlVariables    []model.Variable
	Materials           []model.Material
	TestProcedure       model.Method
	Imports             []model.Import
}

// Warning describes an optional item that was skipped or replaced during parsing.
type Warning struct {
	Section string // key under test_file_parameters
	Index   int    // position in the section list, -1 for the section itself
	Name    string // item name when one could be read
	Err     error
}

func (w Warning) String() string {
	loc := w.Section
	if w.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", w.Section, w.Index)
	}
	if w.Name != "" {
		loc = fmt.Sprintf("%s (%s)", loc, w.Name)
	}
	return fmt.Sprintf("%s: %v", loc, w.Err)
}

// Summary counts the parts of a document.
type Summary struct {
	Title            string `json:"title"`
	Independent      string `json:"independent_variable"`
	Dependent        string `json:"dependent_variable"`
	ControlVariables int    `json:"control_variables"`
	Materials        int    `json:"materials"`
	Steps            int    `json:"steps"`
	Imports          int    `json:"imports"`
	Parametrized     bool   `json:"parametrized"`
}

// Summarize returns the Summary of doc.
func Summarize(doc *Document) Summary {
	return Summary{
		Title:            doc.TestTitle,
		Independent:      doc.IndependentVariable.Name,
		Dependent:        doc.DependentVariable.Name,
		ControlVariables: len(doc.ControlVariables),
		Materials:        len(doc.Materials),
		Steps:            len(doc.TestProcedure.Steps),
		Imports:          len(doc.Imports),
		Parametrized:     doc.IndependentVariable.IsParametrized(),
	}
}
