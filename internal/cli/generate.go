package cli

import (
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
)

// generateOptions holds parsed generate flags.
type generateOptions struct {
	cfg   config.GenerationConfig
	quiet bool
}

// parseGenerateFlags parses the flags shared by generate and stubs.
func parseGenerateFlags(args []string) (*generateOptions, error) {
	opts := &generateOptions{}
	cfg := &opts.cfg
	var testParams string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--has-fixtures", "--has_fixtures":
			cfg.HasFixtures = true
			i++
			continue
		case "--parametrized":
			cfg.Parametrized = true
			i++
			continue
		case "--debug":
			cfg.Debug = true
			i++
			continue
		case "-v", "--verbose":
			cfg.Verbose = true
			i++
			continue
		case "-q", "--quiet":
			opts.quiet = true
			i++
			continue
		}

		matched := false
		for _, f := range []struct {
			dst   *string
			names []string
		}{
			{&cfg.Name, []string{"--name"}},
			{&cfg.JSONFilePath, []string{"--test_parameter_json", "--json"}},
			{&cfg.Description, []string{"--description"}},
			{&cfg.OutputDir, []string{"--output_dir", "--output-dir"}},
			{&cfg.Harness, []string{"--harness"}},
			{&cfg.DocstringStyle, []string{"--docstring-style", "--docstring_style"}},
			{&testParams, []string{"--test-params", "--test_params"}},
			{&cfg.TemplateDir, []string{"--template-dir", "--template_dir"}},
		} {
			ok, err := stringFlag(args, &i, f.dst, f.names...)
			if err != nil {
				return nil, err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown argument %q", arg)
		}
	}

	if opts.quiet && (cfg.Verbose || cfg.Debug) {
		return nil, fmt.Errorf("--quiet cannot be combined with --verbose or --debug")
	}

	params, err := config.ParseTestParams(testParams)
	if err != nil {
		return nil, err
	}
	cfg.TestParams = params
	return opts, nil
}

// applyVerbosity configures the shared writer for a generation config.
func applyVerbosity(cfg *config.GenerationConfig, quiet bool) {
	out.SetQuiet(quiet)
	out.SetVerbose(cfg.Verbose || cfg.Debug)
}

func cmdGenerate(args []string) int {
	if wantsHelp(args) {
		printGenerateUsage()
		return 0
	}

	opts, err := parseGenerateFlags(args)
	if err != nil {
		return usageError("%v", err)
	}
	cfg := &opts.cfg
	applyVerbosity(cfg, opts.quiet)

	config.ApplyDefaults(cfg)
	warnings, err := config.Validate(cfg)
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		out.Warning("%s", w)
	}

	gen := generator.New(cfg, generator.WithLogger(out))
	out.Debug("run id %s", gen.RunID())

	path, err := gen.Run()
	if err != nil {
		return fail(err)
	}
	out.Info("Generated %s", path)
	return 0
}

func printGenerateUsage() {
	out.HelpTitle("hypogen generate - generate a test file")
	out.HelpSection("Usage:")
	out.HelpUsage("hypogen generate --name <name> --json <file> [flags]")
	printGenerateFlags(out)
	out.Println("")
}
