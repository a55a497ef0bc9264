package tsig

import "log"

// Logger is the minimal logging interface the protocol's callers may
// supply, mirroring the teacher codebase's own practice of accepting a
// small logging interface rather than depending on a concrete logger.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// StdLogger adapts the standard library's *log.Logger to the Logger
// interface.
type StdLogger struct {
	*log.Logger
}

func (l *StdLogger) Infof(format string, args ...any) {
	l.Printf("INFO "+format, args...)
}

func (l *StdLogger) Warnf(format string, args ...any) {
	l.Printf("WARN "+format, args...)
}

// NopLogger discards every log message. It is the default used by callers
// that don't care to observe protocol-level diagnostics.
type NopLogger struct{}

func (NopLogger) Infof(string, ...any) {}
func (NopLogger) Warnf(string, ...any) {}
