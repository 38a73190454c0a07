// Package trace carries a leveled logger through a context.Context so that
// every enumeration call decides its own verbosity.
package trace

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// LogLevel represents tracing verbosity level
type LogLevel int

const (
	// LogLevelNormal for regular user-facing messages
	LogLevelNormal LogLevel = iota
	// LogLevelVerbose for per-block debug info
	LogLevelVerbose
	// LogLevelTrace for maximum verbosity
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNormal:
		return "normal"
	case LogLevelVerbose:
		return "verbose"
	case LogLevelTrace:
		return "trace"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// UnmarshalText parses a level name, its number, or a boolean where true
// selects LogLevelVerbose.
func (l *LogLevel) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "0", "false", "normal":
		*l = LogLevelNormal
	case "1", "true", "verbose":
		*l = LogLevelVerbose
	case "2", "trace":
		*l = LogLevelTrace
	default:
		return fmt.Errorf("unknown log level %q", text)
	}
	return nil
}

type traceKeyType string

const traceKey traceKeyType = "tracer"

// Tracer provides a context-aware tracing interface
type Tracer struct {
	prefix string
	level  LogLevel
	logger *log.Logger
}

// NewTracer creates a tracer writing through the standard logger.
func NewTracer(prefix string, level LogLevel) *Tracer {
	return &Tracer{
		prefix: prefix,
		level:  level,
		logger: log.Default(),
	}
}

// NewTracerWithLogger creates a tracer writing through l.
func NewTracerWithLogger(prefix string, level LogLevel, l *log.Logger) *Tracer {
	t := NewTracer(prefix, level)
	if l != nil {
		t.logger = l
	}
	return t
}

// WithContext adds the tracer to the given context
func WithContext(ctx context.Context, tracer *Tracer) context.Context {
	return context.WithValue(ctx, traceKey, tracer)
}

// FromContext extracts the tracer from the context. A context without one
// yields a quiet tracer at LogLevelNormal.
func FromContext(ctx context.Context) *Tracer {
	if tracer, ok := ctx.Value(traceKey).(*Tracer); ok && tracer != nil {
		return tracer
	}
	return NewTracer("", LogLevelNormal)
}

// Level returns the configured verbosity.
func (t *Tracer) Level() LogLevel {
	return t.level
}

// Enabled reports whether messages at level l are written. Callers use it to
// skip building expensive arguments.
func (t *Tracer) Enabled(l LogLevel) bool {
	return t.level >= l
}

// Infof logs a formatted message at normal level
func (t *Tracer) Infof(format string, args ...interface{}) {
	t.output("", format, args...)
}

// Debugf logs a formatted message only at verbose level or above
func (t *Tracer) Debugf(format string, args ...interface{}) {
	if t.level < LogLevelVerbose {
		return
	}
	t.output("", format, args...)
}

// Tracef logs a message at the TRACE level (most verbose)
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if t.level < LogLevelTrace {
		return
	}
	t.output("TRACE", format, args...)
}

// Error logs an error message
func (t *Tracer) Error(err error) {
	t.output("ERROR", "%v", err)
}

// WithPrefix creates a new tracer with the given prefix and the same level
// and destination.
func (t *Tracer) WithPrefix(prefix string) *Tracer {
	return &Tracer{
		prefix: prefix,
		level:  t.level,
		logger: t.logger,
	}
}

func (t *Tracer) output(tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case t.prefix != "" && tag != "":
		t.logger.Printf("%s %s: %s", t.prefix, tag, msg)
	case t.prefix != "":
		t.logger.Printf("%s: %s", t.prefix, msg)
	case tag != "":
		t.logger.Printf("%s: %s", tag, msg)
	default:
		t.logger.Print(msg)
	}
}
