// Package ui provides the color console logger used by the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nakurei/crossforge/internal/domain/interfaces"
)

// ConsoleLogger implements interfaces.Logger with colorized, level-prefixed
// output. Color is enabled only when the writer is a TTY and NO_COLOR is
// unset. It is safe for concurrent use.
type ConsoleLogger struct {
	writer   io.Writer
	mu       sync.Mutex
	quiet    bool
	useColor bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. If quiet is set,
// Debug and Info messages are suppressed.
func NewConsoleLogger(w io.Writer, quiet bool) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   w,
		quiet:    quiet,
		useColor: writerIsTerminal(w) && !color.NoColor,
	}
}

// writerIsTerminal reports whether w is a terminal file descriptor.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	debugColor = color.New(color.FgHiBlack)
	infoColor  = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// Debug logs debug-level messages
func (c *ConsoleLogger) Debug(msg string, fields ...interfaces.Field) {
	if c.quiet {
		return
	}
	c.log(debugColor, "DEBUG", msg, fields)
}

// Info logs informational messages
func (c *ConsoleLogger) Info(msg string, fields ...interfaces.Field) {
	if c.quiet {
		return
	}
	c.log(infoColor, "INFO", msg, fields)
}

// Warn logs warning messages
func (c *ConsoleLogger) Warn(msg string, fields ...interfaces.Field) {
	c.log(warnColor, "WARN", msg, fields)
}

// Error logs error messages
func (c *ConsoleLogger) Error(msg string, fields ...interfaces.Field) {
	c.log(errorColor, "ERROR", msg, fields)
}

func (c *ConsoleLogger) log(lvlColor *color.Color, level, msg string, fields []interfaces.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := level
	if c.useColor {
		prefix = lvlColor.Sprint(level)
	}

	fmt.Fprintf(c.writer, "%s: %s", prefix, msg)
	for _, f := range fields {
		fmt.Fprintf(c.writer, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(c.writer)
}
