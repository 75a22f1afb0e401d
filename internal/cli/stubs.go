package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/experiment"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
	"github.com/AndreyAkinshin/hypogen/internal/validator"
)

func cmdStubs(args []string) int {
	if wantsHelp(args) {
		printStubsUsage()
		return 0
	}

	cfg := &config.GenerationConfig{}
	var modules []validator.Validator

	i := 0
	for i < len(args) {
		arg := args[i]
		ok, err := stringFlag(args, &i, &cfg.JSONFilePath, "--test_parameter_json", "--json")
		if err == nil && !ok {
			ok, err = stringFlag(args, &i, &cfg.OutputDir, "--output_dir", "--output-dir")
		}
		if err == nil && !ok {
			var spec string
			if ok, err = stringFlag(args, &i, &spec, "--registered"); ok && err == nil {
				var m validator.Module
				if m, err = parseModuleSpec(spec); err == nil {
					modules = append(modules, m)
				}
			}
		}
		if err != nil {
			return usageError("%v", err)
		}
		if !ok {
			return usageError("unknown argument %q", arg)
		}
	}
	if cfg.JSONFilePath == "" {
		return usageError("usage: hypogen stubs --test_parameter_json <file> [--output_dir <dir>]")
	}
	config.ApplyDefaults(cfg)

	registry, err := validator.NewRegistry(modules...)
	if err != nil {
		return usageError("%v", err)
	}

	raw, err := experiment.Load(cfg.JSONFilePath)
	if err != nil {
		return fail(err)
	}
	doc, warnings, err := experiment.Parse(raw)
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		out.Warning("%s", w)
	}

	ev := doc.DependentVariable.ExpectedValue
	if ev == nil || len(ev.ValidationProcedures) == 0 {
		out.Info("No validation procedures in %s", cfg.JSONFilePath)
		return 0
	}

	stubber := &validator.Stubber{
		Dir:      filepath.Join(cfg.OutputDir, "validators"),
		Registry: registry,
		RunID:    generator.NewRunID(),
	}
	stubs, err := stubber.Ensure(ev.ValidationProcedures)

	rows := make([][]string, 0, len(stubs))
	for _, s := range stubs {
		detail := s.Path
		if s.Status == validator.StatusRegistered {
			v, _ := registry.Lookup(s.Procedure)
			detail = v.ImportString()
		} else if s.Created {
			detail += " (new)"
		}
		rows = append(rows, []string{s.Procedure, s.Status.String(), detail})
	}
	if len(rows) > 0 {
		out.Table([]string{"PROCEDURE", "STATUS", "DETAIL"}, rows)
	}
	if err != nil {
		return fail(err)
	}
	out.Success("All %d validator(s) implemented", len(stubs))
	return 0
}

// parseModuleSpec parses "procedure=dotted.module".
func parseModuleSpec(spec string) (validator.Module, error) {
	name, module, ok := strings.Cut(spec, "=")
	if !ok || name == "" || module == "" {
		return validator.Module{}, fmt.Errorf("--registered expects procedure=module, got %q", spec)
	}
	return validator.Module{Procedure: name, Path: module}, nil
}

func printStubsUsage() {
	out.HelpTitle("hypogen stubs - emit validator stubs")
	out.HelpSection("Usage:")
	out.HelpUsage("hypogen stubs --json <file> [--output_dir <dir>] [--registered <proc>=<module>]...")
	out.HelpSection("Flags:")
	out.HelpFlag("--test_parameter_json <file>", "Experiment document (alias --json)", widthFlag)
	out.HelpFlag("--output_dir <dir>", "Stubs go to <dir>/validators (default ./tests)", widthFlag)
	out.HelpFlag("--registered <proc>=<module>", "Procedure implemented by a Python module", widthFlag)
	out.Println("")
}
