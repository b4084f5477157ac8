// Package logging is a small leveled logger over the standard log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level orders log severities.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names case-insensitively. Empty means INFO.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("logging: unknown level %q", s)
}

// Logger writes messages at or above its level. A nil *Logger discards
// everything, so components can hold one unconditionally.
type Logger struct {
	out    *log.Logger
	level  Level
	prefix string
}

// New creates a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), level: level}
}

// Default logs INFO and above to stdout.
func Default() *Logger {
	return New(os.Stdout, INFO)
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, ERROR+1)
}

// With returns a logger that prepends tag to every message.
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.prefix = l.prefix + "[" + tag + "] "
	return &c
}

func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(TRACE, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("[%s] %s%s", level, l.prefix, fmt.Sprintf(format, args...))
}
