package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// String returns the tag printed in front of messages of this level
func (l DiagnosticLevel) String() string {
	switch l {
	case DiagnosticError:
		return "ERROR"
	case DiagnosticWarn:
		return "WARN"
	case DiagnosticInfo:
		return "INFO"
	case DiagnosticVerbose:
		return "VERBOSE"
	case DiagnosticDebug:
		return "DEBUG"
	default:
		return "SILENT"
	}
}

var levelColors = map[DiagnosticLevel]*color.Color{
	DiagnosticError:   color.New(color.FgRed, color.Bold),
	DiagnosticWarn:    color.New(color.FgYellow),
	DiagnosticInfo:    color.New(color.FgBlue),
	DiagnosticVerbose: color.New(color.FgHiBlack),
	DiagnosticDebug:   color.New(color.FgMagenta),
}

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticDebug,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// SetOutput redirects regular and error output. Colors are disabled since
// the writers are usually not terminals.
func (d *DiagnosticSystem) SetOutput(output, errorOut io.Writer) {
	d.output = output
	d.errorOut = errorOut
	d.useColors = false
}

// Enabled reports whether messages of level are printed
func (d *DiagnosticSystem) Enabled(level DiagnosticLevel) bool {
	return d.level >= level
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, DiagnosticError, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, DiagnosticWarn, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, DiagnosticInfo, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, DiagnosticVerbose, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, DiagnosticDebug, format, args...)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		d.colorize(color.New(color.FgCyan)).Fprintf(d.output, "%s\n", title)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), message)
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics in the given key order
func (d *DiagnosticSystem) Summary(title string, keys []string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	fmt.Fprintf(d.output, "\n%s\n", title)
	for _, key := range keys {
		if value, ok := stats[key]; ok {
			fmt.Fprintf(d.output, "   %s: %v\n", key, value)
		}
	}
}

// GenerationComplete outputs the completion message
func (d *DiagnosticSystem) GenerationComplete(generated int) {
	if d.level >= DiagnosticInfo {
		d.colorize(color.New(color.FgGreen)).Fprintf(d.output, "importgen: generated %d import factor%s\n", generated, plural(generated, "y", "ies"))
	}
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level DiagnosticLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	tag := "[" + level.String() + "]"
	if c, ok := levelColors[level]; ok {
		tag = d.colorize(c).Sprint(tag)
	}
	output.WriteString(tag)
	output.WriteString(" ")

	output.WriteString(message)
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// colorize returns c, or a copy with colors disabled when they are off
func (d *DiagnosticSystem) colorize(c *color.Color) *color.Color {
	if d.useColors {
		copied := *c
		copied.EnableColor()
		return &copied
	}
	copied := *c
	copied.DisableColor()
	return &copied
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
