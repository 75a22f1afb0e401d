package generator

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

const (
	commonTemplate = "templates/common.tmpl"
	// BuiltinSource is the Template.Source of embedded templates.
	BuiltinSource = "builtin"
)

// TemplateFileName returns the file name looked up in template directories for h.
func TemplateFileName(h config.Harness) string {
	return string(h) + "_test.py.tmpl"
}

// Template is a parsed test file template.
type Template struct {
	Harness config.Harness
	Source  string // file path, or BuiltinSource
	tmpl    *template.Template
	unknown []string // unknown $NAME$ placeholders left in the source
}

// parsedTemplate is a cache entry.
type parsedTemplate struct {
	tmpl    *template.Template
	unknown []string
}

// Resolver finds the template for a harness. Configured directories are
// searched in order; the embedded template is the last resort.
// It is safe for concurrent use.
type Resolver struct {
	dirs  []string
	log   Logger
	cache *lru.Cache[string, *parsedTemplate]
}

// NewResolver creates a Resolver searching dirs. Empty entries are ignored.
func NewResolver(log Logger, dirs ...string) *Resolver {
	if log == nil {
		log = nopLogger{}
	}
	cache, err := lru.New[string, *parsedTemplate](64)
	if err != nil {
		panic(err)
	}
	var clean []string
	for _, d := range dirs {
		if d != "" {
			clean = append(clean, d)
		}
	}
	return &Resolver{dirs: clean, log: log, cache: cache}
}

// Dirs returns the directories searched before the built-in templates.
func (r *Resolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// Resolve returns the template for h.
func (r *Resolver) Resolve(h config.Harness) (*Template, error) {
	name := TemplateFileName(h)
	for _, dir := range r.dirs {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.log.Warning("template %s: %v; falling back", path, err)
			}
			continue
		}
		key := fmt.Sprintf("%s@%d:%d", path, info.ModTime().UnixNano(), info.Size())
		t, err := r.cached(key, func() (*parsedTemplate, error) {
			return parseExternal(path)
		})
		if err != nil {
			r.log.Warning("template %s cannot be parsed: %v; falling back", path, err)
			continue
		}
		return &Template{Harness: h, Source: path, tmpl: t.tmpl, unknown: t.unknown}, nil
	}

	t, err := r.cached("builtin:"+name, func() (*parsedTemplate, error) {
		return parseBuiltin(name)
	})
	if err != nil {
		return nil, hypoerrors.TemplateResolution(string(h), err)
	}
	return &Template{Harness: h, Source: BuiltinSource, tmpl: t.tmpl, unknown: t.unknown}, nil
}

func (r *Resolver) cached(key string, parse func() (*parsedTemplate, error)) (*parsedTemplate, error) {
	if t, ok := r.cache.Get(key); ok {
		return t, nil
	}
	t, err := parse()
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, t)
	return t, nil
}

func baseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(funcMap).Option("missingkey=error").ParseFS(builtinFS, commonTemplate)
}

func parseBuiltin(name string) (*parsedTemplate, error) {
	data, err := builtinFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, err
	}
	return parseSource(name, string(data))
}

func parseExternal(path string) (*parsedTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSource(filepath.Base(path), string(data))
}

// parseSource expands placeholders in src and parses it on top of the
// common definitions.
func parseSource(name, src string) (*parsedTemplate, error) {
	base, err := baseTemplate(name)
	if err != nil {
		return nil, err
	}
	expanded, unknown := expandPlaceholders(src)
	t, err := base.Parse(expanded)
	if err != nil {
		return nil, err
	}
	return &parsedTemplate{tmpl: t, unknown: unknown}, nil
}
