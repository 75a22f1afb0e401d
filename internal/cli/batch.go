package cli

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
)

// runResult is the outcome of one manifest run.
type runResult struct {
	name    string
	path    string
	err     error
	skipped bool
}

func cmdBatch(args []string) int {
	if wantsHelp(args) {
		printBatchUsage()
		return 0
	}

	var manifestPath string
	jobs := runtime.GOMAXPROCS(0)
	var failFast, quiet, verbose bool

	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "--fail-fast":
			failFast = true
			i++
			continue
		case "-q", "--quiet":
			quiet = true
			i++
			continue
		case "-v", "--verbose":
			verbose = true
			i++
			continue
		}

		var jobsStr string
		ok, err := stringFlag(args, &i, &jobsStr, "--jobs", "-j")
		if err != nil {
			return usageError("%v", err)
		}
		if ok {
			n, err := strconv.Atoi(jobsStr)
			if err != nil || n < 1 {
				return usageError("--jobs must be a positive integer, got %q", jobsStr)
			}
			jobs = n
			continue
		}

		if len(arg) > 0 && arg[0] == '-' {
			return usageError("unknown flag %q", arg)
		}
		if manifestPath != "" {
			return usageError("batch takes a single manifest, got extra argument %q", arg)
		}
		manifestPath = arg
		i++
	}
	if manifestPath == "" {
		return usageError("usage: hypogen batch <manifest> [--jobs N] [--fail-fast]")
	}
	if quiet && verbose {
		return usageError("--quiet and --verbose are mutually exclusive")
	}
	out.SetQuiet(quiet)
	out.SetVerbose(verbose)

	manifest, warnings, err := config.LoadManifest(manifestPath)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return fail(err)
	}

	results := runBatch(context.Background(), manifest.Runs, jobs, failFast)
	return printBatchSummary(results)
}

// runBatch generates every run with at most jobs runs in flight. Each run
// owns its config, document and context; only template resolvers are shared.
// With failFast, runs not yet started after the first failure are skipped.
func runBatch(ctx context.Context, runs []config.GenerationConfig, jobs int, failFast bool) []runResult {
	results := make([]runResult, len(runs))
	resolvers := make(map[string]*generator.Resolver)

	cfgs := make([]*config.GenerationConfig, len(runs))
	for i := range runs {
		cfg := runs[i].Clone()
		config.ApplyDefaults(cfg)
		cfgs[i] = cfg
		if _, ok := resolvers[cfg.TemplateDir]; !ok {
			resolvers[cfg.TemplateDir] = generator.NewResolver(out, cfg.TemplateDir)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, cfg := range cfgs {
		name := cfg.Name
		if name == "" {
			name = fmt.Sprintf("runs[%d]", i)
		}
		results[i].name = name

		g.Go(func() error {
			if failFast && gctx.Err() != nil {
				results[i].skipped = true
				return nil
			}
			out.RunStart(name)
			path, err := generateRun(cfg, resolvers[cfg.TemplateDir])
			if err != nil {
				out.RunFailed(name, err)
				results[i].err = err
				if failFast {
					return err
				}
				return nil
			}
			out.RunSuccess(name, path)
			results[i].path = path
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func generateRun(cfg *config.GenerationConfig, resolver *generator.Resolver) (string, error) {
	warnings, err := config.Validate(cfg)
	if err != nil {
		return "", err
	}
	for _, w := range warnings {
		out.Warning("[%s] %s", cfg.Name, w)
	}
	gen := generator.New(cfg, generator.WithLogger(out), generator.WithResolver(resolver))
	return gen.Run()
}

// printBatchSummary prints the per-run table and returns the worst exit code.
func printBatchSummary(results []runResult) int {
	rows := make([][]string, 0, len(results))
	var passed, failed, skipped int
	worst := 0
	for _, r := range results {
		switch {
		case r.skipped:
			skipped++
			rows = append(rows, []string{r.name, "skipped", ""})
		case r.err != nil:
			failed++
			rows = append(rows, []string{r.name, "failed", r.err.Error()})
			if code := exitCode(r.err); code > worst {
				worst = code
			}
		default:
			passed++
			rows = append(rows, []string{r.name, "ok", r.path})
		}
	}

	out.SummaryHeader("Batch Summary")
	out.Table([]string{"RUN", "STATUS", "DETAIL"}, rows)
	out.Println("")
	out.SummaryPassed("Generated", strconv.Itoa(passed))
	if failed > 0 {
		out.SummaryFailed("Failed", strconv.Itoa(failed))
	}
	if skipped > 0 {
		out.SummaryItem("Skipped", strconv.Itoa(skipped))
	}
	return worst
}

func printBatchUsage() {
	out.HelpTitle("hypogen batch - generate every run of a manifest")
	out.HelpSection("Usage:")
	out.HelpUsage("hypogen batch <manifest> [--jobs N] [--fail-fast]")
	out.HelpSection("Flags:")
	out.HelpFlag("-j, --jobs <n>", "Runs generated in parallel (default GOMAXPROCS)", widthFlag)
	out.HelpFlag("--fail-fast", "Skip remaining runs after the first failure", widthFlag)
	out.HelpFlag("-v, --verbose", "Print diagnostics", widthFlag)
	out.HelpFlag("-q, --quiet", "Errors and summary only", widthFlag)
	out.Println("")
}
