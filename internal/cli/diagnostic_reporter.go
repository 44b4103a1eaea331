package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/Sunkar2710/sigkit/internal/errors"
)

// DiagnosticReporter prints detailed, multi-line reports for line failures.
// The runner uses it in verbose mode instead of one-line error messages.
type DiagnosticReporter struct {
	w         io.Writer
	useColors bool
}

// NewDiagnosticReporter creates a reporter writing to w
func NewDiagnosticReporter(w io.Writer, useColors bool) *DiagnosticReporter {
	return &DiagnosticReporter{w: w, useColors: useColors}
}

// ReportError writes a report for coded. source is the offending input line and
// is echoed with a caret under the failing column when the column is known.
func (r *DiagnosticReporter) ReportError(coded errors.CodedError, source string) {
	r.printErrorHeader(coded)
	fmt.Fprintf(r.w, "Message: %s\n", message(coded))

	loc := coded.Location()
	if !loc.IsEmpty() {
		fmt.Fprintf(r.w, "Location: %s\n", loc.String())
	}
	fmt.Fprintln(r.w)

	if source != "" {
		r.printSource(source, loc.Column)
	}
	r.printContext(coded.Context())
	r.printSuggestions(coded.Suggestions())
	r.printCauseChain(coded.Unwrap())
}

// printErrorHeader prints the error kind, underlined
func (r *DiagnosticReporter) printErrorHeader(err errors.CodedError) {
	title := "Type: " + err.ErrorCode().String()
	fmt.Fprintf(r.w, "\n%s\n%s\n", r.paint(title, color.FgRed, color.Bold), strings.Repeat("-", len(title)))
}

// printSource echoes the input with a caret under column, a 1-based byte offset.
// Padding counts runes so multibyte text before the column keeps the caret aligned.
func (r *DiagnosticReporter) printSource(source string, column int) {
	fmt.Fprintf(r.w, "   %s\n", source)
	if column > 0 && column <= len(source)+1 {
		var pad strings.Builder
		for _, ch := range source[:column-1] {
			if ch == '\t' {
				pad.WriteByte('\t')
			} else {
				pad.WriteByte(' ')
			}
		}
		fmt.Fprintf(r.w, "   %s%s\n", pad.String(), r.paint("^", color.FgGreen, color.Bold))
	}
	fmt.Fprintln(r.w)
}

// printContext prints context keys in sorted order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.w, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.w, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintln(r.w)
}

// printSuggestions prints numbered suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	fmt.Fprintf(r.w, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.w, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintln(r.w)
}

// printCauseChain lists wrapped causes, outermost first
func (r *DiagnosticReporter) printCauseChain(cause error) {
	if cause == nil {
		return
	}

	fmt.Fprintf(r.w, "Error Chain:\n")
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.w, "   %d. %s\n", level, cause.Error())
		unwrapper, ok := cause.(interface{ Unwrap() error })
		if !ok {
			break
		}
		cause = unwrapper.Unwrap()
	}
	fmt.Fprintln(r.w)
}

func (r *DiagnosticReporter) paint(s string, attrs ...color.Attribute) string {
	if !r.useColors {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// message returns the error text without the location prefix
func message(err errors.CodedError) string {
	text := err.Error()
	if loc := err.Location(); !loc.IsEmpty() {
		text = strings.TrimPrefix(text, loc.String()+": ")
	}
	return text
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
