// Package cli provides the hypogen command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/output"
)

// Version is set at build time.
var Version = "dev"

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths.
const (
	widthCommand = 18
	widthFlag    = 30
	widthEnv     = 24
)

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return hypoerrors.ExitSuccess
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "-h", "--help", "help":
		printUsage()
		return hypoerrors.ExitSuccess
	case "--version", "version":
		out.Println("hypogen %s", Version)
		return hypoerrors.ExitSuccess
	}

	config.LoadEnv()

	// A leading flag means the generate command with its arguments.
	if len(cmd) > 0 && cmd[0] == '-' {
		return cmdGenerate(args)
	}

	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	case "batch":
		return cmdBatch(cmdArgs)
	case "stubs":
		return cmdStubs(cmdArgs)
	case "schema":
		return cmdSchema(cmdArgs)
	default:
		out.ErrorPrefix("unknown command %q (run 'hypogen help' for usage)", cmd)
		return hypoerrors.ExitInputError
	}
}

// fail reports err and returns its exit code.
func fail(err error) int {
	out.ErrorPrefix("%v", err)
	return exitCode(err)
}

// exitCode maps err to a process exit code. Configuration validation
// errors count as bad input.
func exitCode(err error) int {
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		return hypoerrors.ExitInputError
	}
	return hypoerrors.GetExitCode(err)
}

// usageError reports a command line mistake.
func usageError(format string, args ...any) int {
	return fail(hypoerrors.Configf(format, args...))
}

// flagValue returns the value of a flag given as "--name value" or
// "--name=value". It advances *i past the consumed arguments.
func flagValue(args []string, i *int, name string) (string, bool, error) {
	arg := args[*i]
	if arg == name {
		if *i+1 >= len(args) {
			return "", true, fmt.Errorf("%s requires a value", name)
		}
		*i += 2
		return args[*i-1], true, nil
	}
	if len(arg) > len(name) && arg[:len(name)+1] == name+"=" {
		*i++
		return arg[len(name)+1:], true, nil
	}
	return "", false, nil
}

// stringFlag matches args[*i] against any of names and stores the value in dst.
func stringFlag(args []string, i *int, dst *string, names ...string) (bool, error) {
	for _, name := range names {
		v, ok, err := flagValue(args, i, name)
		if err != nil {
			return true, err
		}
		if ok {
			*dst = v
			return true, nil
		}
	}
	return false, nil
}

func printUsage() {
	w := out

	w.HelpTitle("hypogen - generate Python test skeletons from experiment documents")

	w.HelpSection("Usage:")
	w.HelpUsage("hypogen <command> [flags]")
	w.HelpUsage("hypogen --name <name> --json <file> [flags]   Same as 'hypogen generate'")

	w.HelpSection("Commands:")
	w.HelpCommand("generate", "Generate a test file from an experiment document", widthCommand)
	w.HelpCommand("validate <file>", "Check an experiment document and print a summary", widthCommand)
	w.HelpCommand("batch <manifest>", "Generate every run of a manifest in parallel", widthCommand)
	w.HelpCommand("stubs", "Emit stubs for unimplemented validators", widthCommand)
	w.HelpCommand("schema [name]", "Print the experiment or manifest JSON schema", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)

	printGenerateFlags(w)

	w.HelpSection("Environment:")
	w.HelpEnvVar(config.EnvOutputDir, "Default output directory", widthEnv)
	w.HelpEnvVar(config.EnvHarness, "Default harness", widthEnv)
	w.HelpEnvVar(config.EnvTemplateDir, "Directory searched for templates", widthEnv)
	w.HelpEnvVar(config.EnvDocstringStyle, "Default docstring style", widthEnv)

	w.HelpSection("Examples:")
	w.HelpExample("hypogen generate --name cpu --json exp.json", "Write tests/test_cpu.py")
	w.HelpExample("hypogen --name cpu --json exp.yaml --harness pytest", "Generate a pytest file")
	w.HelpExample("hypogen validate exp.json --strict", "Check a document against the schema")
	w.HelpExample("hypogen batch runs.yaml --jobs 4", "Generate a manifest with 4 workers")
	w.Println("")
}

func printGenerateFlags(w *output.Writer) {
	w.HelpSection("Generate Flags:")
	w.HelpFlag("--name <name>", "Test name, used for the file name (required)", widthFlag)
	w.HelpFlag("--test_parameter_json <file>", "Experiment document, JSON or YAML (required)", widthFlag)
	w.HelpFlag("--json <file>", "Alias for --test_parameter_json", widthFlag)
	w.HelpFlag("--description <text>", "Test description", widthFlag)
	w.HelpFlag("--output_dir <dir>", "Output directory (default ./tests)", widthFlag)
	w.HelpFlag("--harness <name>", "unittest or pytest (default unittest)", widthFlag)
	w.HelpFlag("--has-fixtures", "Emit setup and teardown fixtures", widthFlag)
	w.HelpFlag("--parametrized", "Emit a parametrized test", widthFlag)
	w.HelpFlag("--docstring-style <style>", "google, numpy or sphinx", widthFlag)
	w.HelpFlag("--test-params <json>", "Extra parameters as a JSON object", widthFlag)
	w.HelpFlag("--template-dir <dir>", "Directory searched for templates first", widthFlag)
	w.HelpFlag("--debug", "Emit debug logging in generated code", widthFlag)
	w.HelpFlag("-v, --verbose", "Print diagnostics", widthFlag)
	w.HelpFlag("-q, --quiet", "Errors only", widthFlag)
}
