// Package logging provides the thin logger abstraction used throughout this
// service, adapted from the teacher's Logger interface and LoggerImpl
// (cmd/server/interfaces.go, cmd/server/implementations.go) so tests can
// substitute a no-op logger without pulling in the stdlib `log` package's
// global state.
package logging

import "log"

// Logger is implemented by anything that can take a printf-style message.
type Logger interface {
	Printf(format string, v ...any)
}

// Std backs Logger with the stdlib log package, exactly as the teacher does.
type Std struct {
	prefix string
}

// NewStd creates a Logger that prefixes every line, e.g. "[engine] ".
func NewStd(prefix string) *Std {
	return &Std{prefix: prefix}
}

func (s *Std) Printf(format string, v ...any) {
	log.Printf(s.prefix+format, v...)
}

// Noop discards everything; used by tests (mirrors the teacher's testLogger
// in cmd/server/content_loader_test.go).
type Noop struct{}

func (Noop) Printf(string, ...any) {}
