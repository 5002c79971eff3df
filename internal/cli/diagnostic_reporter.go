package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/importgen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a diagnostic reporter writing to out
func NewDiagnosticReporter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	header := color.New(color.FgRed, color.Bold)
	header.Fprintf(r.out, "\nERROR: Import Factory Generation Failed\n")
	fmt.Fprintf(r.out, "=======================================\n\n")

	if genErr, ok := errors.Find(err); ok {
		r.reportGeneratorError(err, genErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.out, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(err error, genErr errors.GeneratorError) {
	r.printErrorHeader(genErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := genErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}

	if context := genErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := genErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(genErr.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.ResolutionErrorCode:
		errorTypeStr = "Artifact Resolution Error"
	case errors.ArchiveErrorCode:
		errorTypeStr = "Archive Read Error"
	case errors.EmissionErrorCode:
		errorTypeStr = "Factory Emission Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.SyntaxErrorCode:
		errorTypeStr = "Syntax Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "target_package":
		return "Target Package"
	case "pom":
		return "Project Descriptor"
	default:
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "Filter Patterns:\n")
		fmt.Fprintf(r.out, "  - Patterns are Go regular expressions\n")
		fmt.Fprintf(r.out, "  - Dependency filters must match the whole group:artifact id\n")
		fmt.Fprintf(r.out, "  - Package filters match anywhere in the dotted name unless anchored with ^ and $\n\n")

	case errors.ResolutionErrorCode:
		fmt.Fprintf(r.out, "Artifact Resolution:\n")
		fmt.Fprintf(r.out, "  - The local repository is searched first, then -remote-repository URLs, then the S3 bucket\n")
		fmt.Fprintf(r.out, "  - Exclude dependencies without classes with -exclude-dependencies\n\n")
	}

	if !r.verbose {
		fmt.Fprintf(r.out, "Run with -verbose for the full error chain\n")
	}
}

// printErrorChain prints every error in the chain, depth first
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")

	var walk func(err error, depth int)
	walk = func(err error, depth int) {
		if err == nil {
			return
		}

		message := err.Error()
		if genErr, ok := err.(*errors.BaseError); ok {
			message = genErr.Message
		}
		fmt.Fprintf(r.out, "%s- %s\n", strings.Repeat("  ", depth+1), message)

		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner, depth+1)
			}
		case interface{ Unwrap() error }:
			walk(e.Unwrap(), depth+1)
		}
	}
	walk(err, 0)

	fmt.Fprintf(r.out, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
