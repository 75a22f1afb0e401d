package generator

// Logger receives diagnostics from the generation pipeline.
// *output.Writer satisfies it.
type Logger interface {
	Debug(format string, args ...any)
	Warning(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)   {}
func (nopLogger) Warning(string, ...any) {}
