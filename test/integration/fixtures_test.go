// Package integration contains end-to-end tests for hypogen.
package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AndreyAkinshin/hypogen/internal/config"
	"github.com/AndreyAkinshin/hypogen/internal/generator"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// generate runs the full pipeline for a fixture and returns the written file.
func generate(t *testing.T, fixture string, mutate func(cfg *config.GenerationConfig)) string {
	t.Helper()
	cfg := &config.GenerationConfig{
		Name:         "integration",
		JSONFilePath: filepath.Join(fixturesDir(), fixture),
		OutputDir:    t.TempDir(),
	}
	if mutate != nil {
		mutate(cfg)
	}
	config.ApplyDefaults(cfg)
	if _, err := config.Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	gen := generator.New(cfg, generator.WithClock(func() time.Time { return fixedNow }), generator.WithRunID("integration-run"))
	path, err := gen.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(content, want) {
			t.Errorf("generated file missing %q\n---\n%s", want, content)
		}
	}
}
