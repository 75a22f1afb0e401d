package generator

import (
	"os"
	"path/filepath"

	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/naming"
)

// TestFileName returns the file name of the generated test for a run name.
func TestFileName(name string) string {
	return "test_" + naming.SanitizeIdentifier(naming.ToSnakeCase(name)) + ".py"
}

// WriteTestFile writes content to dir/TestFileName(name), creating dir as
// needed, and returns the written path.
func WriteTestFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", hypoerrors.IO(dir, err)
	}
	path := filepath.Join(dir, TestFileName(name))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", hypoerrors.IO(path, err)
	}
	return path, nil
}
