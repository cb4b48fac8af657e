package knit

import (
	"log"
	"os"
)

// Logger receives debug-level tracing from an evaluation run: one line per
// completed evaluator pass, with the pass number and whether the root
// command is Ready yet. A nil Logger (the default) means silence.
type Logger interface {
	Debugf(format string, args ...any)
}

// stdLogger adapts the standard library's *log.Logger to Logger.
type stdLogger struct {
	l *log.Logger
}

// NewLogger builds a Logger writing to stderr with a "[knit] " prefix.
func NewLogger() Logger {
	return &stdLogger{l: log.New(os.Stderr, "[knit] ", log.LstdFlags)}
}

func (s *stdLogger) Debugf(format string, args ...any) {
	s.l.Printf(format, args...)
}

func debugf(logger Logger, format string, args ...any) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}
