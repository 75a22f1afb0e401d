package validator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
	"github.com/AndreyAkinshin/hypogen/internal/model"
)

//go:embed templates/validator.py.tmpl
var templateFS embed.FS

// PendingMarker marks a stub that still needs an implementation.
const PendingMarker = "NotImplementedError"

var stubTemplate = template.Must(template.New("validator.py.tmpl").
	Funcs(generator.FuncMap()).
	ParseFS(templateFS, "templates/validator.py.tmpl"))

// Status is the state of a validation procedure's implementation.
type Status int

const (
	// StatusRegistered means a registered validator implements the procedure.
	StatusRegistered Status = iota
	// StatusImplemented means the stub file exists and has been implemented.
	StatusImplemented
	// StatusPending means the stub file still raises NotImplementedError.
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusRegistered:
		return "registered"
	case StatusImplemented:
		return "implemented"
	default:
		return "pending"
	}
}

// Stub reports how one procedure is satisfied.
type Stub struct {
	Procedure string
	Path      string // stub file path, empty for registered validators
	Status    Status
	Created   bool // the stub file was written by this call
}

// Stubber emits validator stubs into Dir.
type Stubber struct {
	Dir      string
	Registry *Registry
	Now      func() time.Time
	RunID    string
}

// Ensure makes sure every procedure has an implementation or a stub file.
// Existing stub files are never overwritten. When any stub is pending the
// returned error is a Validation error listing them.
func (s *Stubber) Ensure(procs []model.ValidationProcedure) ([]Stub, error) {
	stubs := make([]Stub, 0, len(procs))
	var pending []string
	seen := make(map[string]bool)

	for _, proc := range procs {
		if seen[proc.Name] {
			continue
		}
		seen[proc.Name] = true

		if _, ok := s.Registry.Lookup(proc.Name); ok {
			stubs = append(stubs, Stub{Procedure: proc.Name, Status: StatusRegistered})
			continue
		}

		stub, err := s.ensureFile(proc)
		if err != nil {
			return stubs, err
		}
		stubs = append(stubs, stub)
		if stub.Status == StatusPending {
			pending = append(pending, stub.Path)
		}
	}

	if len(pending) > 0 {
		return stubs, hypoerrors.Validationf("%d validator(s) not implemented; implement them before generating: %s",
			len(pending), strings.Join(pending, ", "))
	}
	return stubs, nil
}

func (s *Stubber) ensureFile(proc model.ValidationProcedure) (Stub, error) {
	path := filepath.Join(s.Dir, FuncName(proc.Name)+".py")
	stub := Stub{Procedure: proc.Name, Path: path, Status: StatusPending}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !bytes.Contains(data, []byte(PendingMarker)) {
			stub.Status = StatusImplemented
		}
		return stub, nil
	case !errors.Is(err, fs.ErrNotExist):
		return stub, hypoerrors.IO(path, err)
	}

	content, err := s.render(proc)
	if err != nil {
		return stub, hypoerrors.Wrap(err, fmt.Sprintf("render validator stub for %s: %v", proc.Name, err))
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return stub, hypoerrors.IO(s.Dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return stub, hypoerrors.IO(path, err)
	}
	stub.Created = true
	return stub, nil
}

type kwarg struct {
	Name    string
	Default any
}

type stubData struct {
	model.ValidationProcedure
	FuncName  string
	Kwargs    []kwarg
	Timestamp string
	RunID     string
}

func (s *Stubber) render(proc model.ValidationProcedure) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	runID := s.RunID
	if runID == "" {
		runID = generator.NewRunID()
	}

	names := make([]string, 0, len(proc.Kwargs))
	for k := range proc.Kwargs {
		names = append(names, k)
	}
	sort.Strings(names)
	kwargs := make([]kwarg, len(names))
	for i, k := range names {
		kwargs[i] = kwarg{Name: k, Default: proc.Kwargs[k]}
	}

	var buf bytes.Buffer
	err := stubTemplate.Execute(&buf, stubData{
		ValidationProcedure: proc,
		FuncName:            FuncName(proc.Name),
		Kwargs:              kwargs,
		Timestamp:           now().Format(generator.TimestampLayout),
		RunID:               runID,
	})
	return buf.String(), err
}
