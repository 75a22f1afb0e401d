package model

import (
	"strings"

	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// Import is a module the generated test imports.
type Import struct {
	Name        string   `json:"name"`
	ImportFuncs []string `json:"import_funcs,omitempty"`
}

// NewImport validates raw and builds an Import.
func NewImport(raw any) (Import, error) {
	obj, err := checkObject("Imports", schema.DefImports, raw)
	if err != nil {
		return Import{}, err
	}
	return Import{
		Name:        stringField(obj, "name"),
		ImportFuncs: stringsField(obj, "import_funcs"),
	}, nil
}

// ImportString returns the Python import statement.
func (i Import) ImportString() string {
	if len(i.ImportFuncs) > 0 {
		return "from " + i.Name + " import " + strings.Join(i.ImportFuncs, ", ")
	}
	return "import " + i.Name
}
