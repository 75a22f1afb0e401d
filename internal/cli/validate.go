package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/experiment"
	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// validateReport is the --json output of the validate command.
type validateReport struct {
	File       string              `json:"file"`
	Valid      bool                `json:"valid"`
	Summary    *experiment.Summary `json:"summary,omitempty"`
	Warnings   []string            `json:"warnings"`
	Violations []string            `json:"violations,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func cmdValidate(args []string) int {
	if wantsHelp(args) {
		printValidateUsage()
		return 0
	}

	var file string
	var strict, asJSON bool
	for _, arg := range args {
		switch {
		case arg == "--strict":
			strict = true
		case arg == "--json":
			asJSON = true
		case len(arg) > 0 && arg[0] == '-':
			return usageError("unknown flag %q", arg)
		case file == "":
			file = arg
		default:
			return usageError("validate takes a single file, got extra argument %q", arg)
		}
	}
	if file == "" {
		return usageError("usage: hypogen validate <file> [--strict] [--json]")
	}

	report, err := validateFile(file, strict)
	if asJSON {
		data, jerr := json.MarshalIndent(report, "", "  ")
		if jerr != nil {
			return fail(jerr)
		}
		out.Println("%s", data)
		if err != nil {
			return exitCode(err)
		}
		return 0
	}

	if err != nil {
		for _, w := range report.Warnings {
			out.Warning("%s", w)
		}
		for _, v := range report.Violations {
			out.Errorln("  %s", v)
		}
		return fail(err)
	}

	s := report.Summary
	out.SummaryHeader(file)
	out.SummaryItem("Title", s.Title)
	out.SummaryItem("Independent variable", s.Independent)
	out.SummaryItem("Dependent variable", s.Dependent)
	out.SummaryItem("Control variables", strconv.Itoa(s.ControlVariables))
	out.SummaryItem("Materials", strconv.Itoa(s.Materials))
	out.SummaryItem("Steps", strconv.Itoa(s.Steps))
	out.SummaryItem("Imports", strconv.Itoa(s.Imports))
	out.SummaryItem("Parametrized", strconv.FormatBool(s.Parametrized))
	out.SummaryPassed("Result", "valid")
	if len(report.Warnings) > 0 {
		out.Section(fmt.Sprintf("Skipped items (%d)", len(report.Warnings)))
		out.List(report.Warnings)
	}
	return 0
}

// validateFile loads and parses file. In strict mode the document must also
// satisfy the full schema and parse without warnings.
func validateFile(file string, strict bool) (*validateReport, error) {
	report := &validateReport{File: file, Warnings: []string{}}

	raw, err := experiment.Load(file)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	if strict {
		if err := schema.ValidateDocument(raw); err != nil {
			for _, v := range schema.Violations(err) {
				report.Violations = append(report.Violations, v.String())
			}
			err = hypoerrors.Validationf("%s does not match the experiment schema (%d violation(s))", file, len(report.Violations))
			report.Error = err.Error()
			return report, err
		}
	}

	doc, warnings, err := experiment.Parse(raw)
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, w.String())
	}
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	summary := experiment.Summarize(doc)
	report.Summary = &summary

	if strict && len(warnings) > 0 {
		err := hypoerrors.Validation(fmt.Sprintf("%s has %d skipped item(s)", file, len(warnings)))
		report.Error = err.Error()
		return report, err
	}

	report.Valid = true
	return report, nil
}

func printValidateUsage() {
	out.HelpTitle("hypogen validate - check an experiment document")
	out.HelpSection("Usage:")
	out.HelpUsage("hypogen validate <file> [--strict] [--json]")
	out.HelpSection("Flags:")
	out.HelpFlag("--strict", "Require the full schema and no skipped items", widthFlag)
	out.HelpFlag("--json", "Print the report as JSON", widthFlag)
	out.Println("")
}
