package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultOutputDir      = "./tests"
	DefaultHarness        = string(HarnessUnittest)
	DefaultDocstringStyle = "google"
)

// Environment variables consulted for unset fields.
const (
	EnvOutputDir      = "HYPOGEN_OUTPUT_DIR"
	EnvHarness        = "HYPOGEN_HARNESS"
	EnvTemplateDir    = "HYPOGEN_TEMPLATE_DIR"
	EnvDocstringStyle = "HYPOGEN_DOCSTRING_STYLE"
)

// LoadEnv loads a .env file from the working directory, if there is one.
// Variables already set in the process environment win.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyDefaults fills unset fields from the environment, then from the
// built-in defaults.
func ApplyDefaults(cfg *GenerationConfig) {
	cfg.OutputDir = firstNonEmpty(cfg.OutputDir, os.Getenv(EnvOutputDir), DefaultOutputDir)
	cfg.Harness = firstNonEmpty(cfg.Harness, os.Getenv(EnvHarness), DefaultHarness)
	cfg.TemplateDir = firstNonEmpty(cfg.TemplateDir, os.Getenv(EnvTemplateDir))
	cfg.DocstringStyle = firstNonEmpty(cfg.DocstringStyle, os.Getenv(EnvDocstringStyle), DefaultDocstringStyle)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
