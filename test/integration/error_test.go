package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	hypoerrors "github.com/AndreyAkinshin/hypogen/internal/errors"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
)

func runFixture(t *testing.T, cfg *config.GenerationConfig) error {
	t.Helper()
	config.ApplyDefaults(cfg)
	_, err := generator.New(cfg).Run()
	return err
}

func TestLegacyMethodKeyRejected(t *testing.T) {
	t.Parallel()
	out := t.TempDir()
	err := runFixture(t, &config.GenerationConfig{
		Name:         "legacy",
		JSONFilePath: filepath.Join(fixturesDir(), "legacy.json"),
		OutputDir:    out,
	})
	if !hypoerrors.Is(err, hypoerrors.KindDocumentShape) {
		t.Fatalf("Run() error = %v, want document shape error", err)
	}
	if hypoerrors.GetExitCode(err) != hypoerrors.ExitInputError {
		t.Errorf("exit code = %d, want %d", hypoerrors.GetExitCode(err), hypoerrors.ExitInputError)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("failed run wrote %d file(s)", len(entries))
	}
}

func TestMissingDocument(t *testing.T) {
	t.Parallel()
	err := runFixture(t, &config.GenerationConfig{
		Name:         "missing",
		JSONFilePath: filepath.Join(fixturesDir(), "does-not-exist.json"),
		OutputDir:    t.TempDir(),
	})
	if !hypoerrors.Is(err, hypoerrors.KindIO) {
		t.Errorf("Run() error = %v, want IO error", err)
	}
}

func TestUnsupportedHarness(t *testing.T) {
	t.Parallel()
	err := runFixture(t, &config.GenerationConfig{
		Name:         "nose",
		JSONFilePath: filepath.Join(fixturesDir(), "exception.json"),
		OutputDir:    t.TempDir(),
		Harness:      "nose",
	})
	if !hypoerrors.Is(err, hypoerrors.KindUnsupportedHarness) {
		t.Errorf("Run() error = %v, want unsupported harness error", err)
	}
}

func TestBrokenTemplateDirFallsBackToBuiltin(t *testing.T) {
	t.Parallel()
	tpl := t.TempDir()
	if err := os.WriteFile(filepath.Join(tpl, "unittest_test.py.tmpl"), []byte("{{ .Broken "), 0o644); err != nil {
		t.Fatal(err)
	}
	content := generate(t, "exception.json", func(cfg *config.GenerationConfig) {
		cfg.TemplateDir = tpl
	})
	assertContains(t, content, "class TestIntegration(unittest.TestCase):")
}
