package model

import (
	"strings"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// Method is the test procedure: ordered steps plus how data is collected and analysed.
type Method struct {
	Steps             []string `json:"steps"`
	DataCollection    string   `json:"data_collection"`
	AnalysisTechnique string   `json:"analysis_technique"`
}

// NewMethod validates raw and builds a Method. At least one step is required.
func NewMethod(raw any) (Method, error) {
	obj, err := checkObject("Method", schema.DefMethod, raw)
	if err != nil {
		return Method{}, err
	}
	return Method{
		Steps:             stringsField(obj, "steps"),
		DataCollection:    stringField(obj, "data_collection"),
		AnalysisTechnique: stringField(obj, "analysis_technique"),
	}, nil
}

// Comments renders every step as a "# step" line, with a blank line between steps.
func (m Method) Comments() string {
	lines := make([]string, len(m.Steps))
	for i, step := range m.Steps {
		lines[i] = "# " + step
	}
	return strings.Join(lines, "\n\n")
}
