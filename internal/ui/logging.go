package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	tagDebug = color.New(color.FgHiBlack).Sprint("[DEBUG]")
	tagInfo  = color.New(color.FgCyan).Sprint("[INFO]")
	tagError = color.New(color.FgRed, color.Bold).Sprint("[ERROR]")
)

// Logger writes to stderr so command output on stdout stays parseable.
type Logger struct {
	Debug bool
	out   io.Writer
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, out: os.Stderr}
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	return &Logger{Debug: debug, out: w}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		_, _ = fmt.Fprintf(l.out, tagDebug+" "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, tagInfo+" "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, tagError+" "+format, args...)
}
