package generator

import (
	"strings"
	"time"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/experiment"
)

// Generator renders test files for one GenerationConfig.
type Generator struct {
	cfg      *config.GenerationConfig
	log      Logger
	now      func() time.Time
	runID    string
	resolver *Resolver
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the diagnostics sink.
func WithLogger(log Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithClock sets the time source used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(g *Generator) { g.runID = id }
}

// WithResolver sets the template resolver, e.g. to share its cache across runs.
func WithResolver(r *Resolver) Option {
	return func(g *Generator) { g.resolver = r }
}

// New creates a Generator for cfg. cfg is copied; later changes to it are not seen.
func New(cfg *config.GenerationConfig, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg.Clone(),
		log: nopLogger{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.runID == "" {
		g.runID = NewRunID()
	}
	if g.resolver == nil {
		g.resolver = NewResolver(g.log, g.cfg.TemplateDir)
	}
	return g
}

// RunID returns the identifier stamped into generated files.
func (g *Generator) RunID() string {
	return g.runID
}

// Result is the outcome of a successful generation.
type Result struct {
	Content        string
	Warnings       []string
	Document       *experiment.Document
	Context        *Context
	TemplateSource string
}

// Generate renders the test file for an already decoded experiment document.
// Nothing is written to disk.
func (g *Generator) Generate(raw map[string]any) (*Result, error) {
	harness, err := config.ParseHarness(g.cfg.Harness)
	if err != nil {
		return nil, err
	}
	if g.cfg.Debug {
		g.log.Debug("harness=%s parametrized=%v fixtures=%v output_dir=%s json_file=%s",
			harness, g.cfg.Parametrized, g.cfg.HasFixtures, g.cfg.OutputDir, g.cfg.JSONFilePath)
	}

	doc, parseWarnings, err := experiment.Parse(raw)
	if err != nil {
		return nil, err
	}

	tmpl, err := g.resolver.Resolve(harness)
	if err != nil {
		return nil, err
	}
	if g.cfg.Debug {
		g.log.Debug("using %s template from %s", harness, tmpl.Source)
	}

	ctx := BuildContext(doc, g.cfg, ContextOptions{Now: g.now(), RunID: g.runID, Log: g.log})
	content, renderWarnings, err := Render(tmpl, ctx)
	if err != nil {
		return nil, err
	}
	if g.cfg.Debug {
		g.log.Debug("generated %d lines", strings.Count(content, "\n")+1)
	}

	warnings := make([]string, 0, len(parseWarnings)+len(renderWarnings))
	for _, w := range parseWarnings {
		warnings = append(warnings, w.String())
	}
	warnings = append(warnings, renderWarnings...)

	return &Result{
		Content:        content,
		Warnings:       warnings,
		Document:       doc,
		Context:        ctx,
		TemplateSource: tmpl.Source,
	}, nil
}

// Run loads the configured document, generates the test file and writes it.
// Warnings are sent to the logger. It returns the written path.
func (g *Generator) Run() (string, error) {
	if _, err := config.ParseHarness(g.cfg.Harness); err != nil {
		return "", err
	}
	raw, err := experiment.Load(g.cfg.JSONFilePath)
	if err != nil {
		return "", err
	}
	res, err := g.Generate(raw)
	if err != nil {
		return "", err
	}
	for _, w := range res.Warnings {
		g.log.Warning("%s", w)
	}
	return WriteTestFile(g.cfg.OutputDir, g.cfg.Name, res.Content)
}
