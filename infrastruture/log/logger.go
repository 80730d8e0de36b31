// Package logger provides the prefixed, colour coded component loggers used across the application.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/beka-birhanu/maze-runner/config"
)

var ErrNilWriter = errors.New("logger output writer is nil")

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
type Logger struct {
	out   *log.Logger
	tag   string
	debug atomic.Bool
}

// New creates a logger whose prefix is printed in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	return &Logger{
		out: log.New(w, "", log.LstdFlags),
		tag: fmt.Sprintf("%s[%s]%s", color, prefix, config.ColorReset),
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l, _ := New("", "", io.Discard)
	return l
}

// SetDebug toggles debug output.
func (l *Logger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print(config.LogInfoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.print(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print(config.LogErrorColor, "ERROR", msg)
}

// Debug logs a message only when debug output is enabled.
func (l *Logger) Debug(msg string) {
	if l.debug.Load() {
		l.print(config.LogDebugColor, "DEBUG", msg)
	}
}

func (l *Logger) print(color, level, msg string) {
	l.out.Printf("%s %s[%s]%s %s", l.tag, color, level, config.LogColorReset, msg)
}
