// Package diag implements diagnostic reporting for the lexer and parser:
// stable error codes, severities, and a Rust/Clang-style source snippet
// renderer, grounded on the teacher's ParseError/createCodeSnippet
// (runtime/parser/errors.go).
package diag

import (
	"fmt"
	"strings"

	"github.com/kestrel-lang/kestrelc/internal/token"
)

// Severity classifies how a Diagnostic affects the overall parse result.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return "error"
	}
}

// Stable diagnostic codes. Codes are part of the public contract: tooling
// may key off them, so existing codes are never renumbered.
const (
	CodeUnexpectedToken  = "E001"
	CodeMissingToken     = "E002"
	CodeMalformedLiteral = "E003"
	CodeInvalidIndent    = "E004"
	CodeMixedBlockStyles = "E005"
	CodeRecoveredNode    = "R001"
	CodeInternal         = "I001"
)

// Diagnostic is a single lexer or parser finding. It implements error so
// callers that only want a message can treat diagnostics like ordinary Go
// errors.
type Diagnostic struct {
	Severity   Severity
	Code       string
	Message    string
	Span       token.Span
	Suggestion string // "" when there is no actionable fix to suggest
	Cause      error  // wrapped lower-level error, if any
}

func (d Diagnostic) Error() string { return d.Message }

func (d Diagnostic) Unwrap() error { return d.Cause }

// Report collects the diagnostics produced while processing one source
// file and renders them in source-snippet form.
type Report struct {
	File        string
	Source      string
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic is Error or Fatal severity.
func (r Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics have the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Format renders every diagnostic as `severity: [code] message`, a
// `-->  file:line:col` locator, a source line with a caret, and an optional
// `help:`/`caused by:` trailer — the teacher's createCodeSnippet layout
// generalized to the diag package's richer fields.
func (r Report) Format() string {
	var sb strings.Builder
	for i, d := range r.Diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(formatOne(r.File, r.Source, d))
	}
	return sb.String()
}

func formatOne(file, source string, d Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: [%s] %s\n", d.Severity, d.Code, d.Message)
	fmt.Fprintf(&sb, "  --> %s:%d:%d\n", file, d.Span.StartLine, d.Span.StartColumn)

	if line, ok := sourceLine(source, d.Span.StartLine); ok {
		sb.WriteString("   |\n")
		fmt.Fprintf(&sb, "%3d | %s\n", d.Span.StartLine, line)
		sb.WriteString("   | ")
		if d.Span.StartColumn > 0 && d.Span.StartColumn <= len(line)+1 {
			sb.WriteString(strings.Repeat(" ", d.Span.StartColumn-1))
		}
		width := caretWidth(d.Span)
		sb.WriteString(strings.Repeat("^", width))
		sb.WriteByte('\n')
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&sb, "   = help: %s\n", d.Suggestion)
	}
	if d.Cause != nil {
		fmt.Fprintf(&sb, "   = caused by: %s\n", d.Cause)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sourceLine(source string, line int) (string, bool) {
	if line <= 0 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func caretWidth(sp token.Span) int {
	if sp.EndOffset > sp.StartOffset {
		n := sp.EndOffset - sp.StartOffset
		if n > 1 {
			return n
		}
	}
	return 1
}
