package experiment

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

// Load reads an experiment document from a .json, .yaml or .yml file and
// returns it in the JSON value model: objects are map[string]any, numbers are
// json.Number so they keep their original spelling.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, hypoerrors.IO(path, err)
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses document bytes. ext selects the format (".yaml" and ".yml"
// mean YAML, anything else JSON).
func Decode(data []byte, ext string) (map[string]any, error) {
	var (
		v   any
		err error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		v, err = decodeYAML(data)
	default:
		v, err = jsonschema.UnmarshalJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, hypoerrors.DocumentShape("", fmt.Errorf("parse document: %w", err))
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, hypoerrors.DocumentShape("", fmt.Errorf("document root must be an object, got %s", describe(v)))
	}
	return obj, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return schema.Normalize(v)
}
