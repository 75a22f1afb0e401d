package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/experiment"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// recordingLogger captures diagnostics for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	debugs   []string
	warnings []string
}

func (l *recordingLogger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warning(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func loadFixture(t *testing.T) map[string]any {
	t.Helper()
	raw, err := experiment.Load(filepath.Join("testdata", "experiment.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return raw
}

// fixtureWith returns the fixture with test_file_parameters[key] replaced.
func fixtureWith(t *testing.T, key string, value any) map[string]any {
	t.Helper()
	raw := loadFixture(t)
	raw[experiment.RootKey].(map[string]any)[key] = value
	return raw
}

func parseDoc(t *testing.T, raw map[string]any) *experiment.Document {
	t.Helper()
	doc, _, err := experiment.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	raw, err := experiment.Decode([]byte(`{"v": `+s+`}`), ".json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return raw["v"]
}

func testConfig(harness string) *config.GenerationConfig {
	return &config.GenerationConfig{
		Name:           "cpu scaling",
		Description:    "CPU scaling experiment",
		JSONFilePath:   filepath.Join("testdata", "experiment.json"),
		Harness:        harness,
		DocstringStyle: "google",
	}
}

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
