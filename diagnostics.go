// diagnostics.go: the diagnostic collector (spec.md §4.2)
//
// The data model (code/message/primary label/secondary labels/note/help)
// is grounded on original_source/src/lang/parser.cpp's `DiagCollector` and
// `Diag::Diagnostic`. The rendering style (numbered gutter, caret line, one
// line of context) is grounded on the teacher's errors.go
// (`prettyErrorStringLabeled`), extended here to print every label
// (primary and secondary) instead of just one point, since Luna's
// diagnostics carry more than the teacher's flat Line/Col/Msg.
package luna

import (
	"fmt"
	"io"
	"strings"
)

// Span marks a half-open range in the original source by 1-based line/col
// and 0-based byte offsets (spec.md glossary: "Span: a pair of source
// locations marking the begin/end of a token or phrase").
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
	StartOff, EndOff     int
}

// Label attaches explanatory text to a Span.
type Label struct {
	Span Span
	Text string
}

// Diagnostic is one structured, user-facing error (spec.md §4.2).
type Diagnostic struct {
	Code      string
	Message   string
	Primary   Label
	Secondary []Label
	Note      string
	Help      string
}

// Collector accumulates diagnostics against a fixed source text; rendering
// is deferred to Dump.
type Collector struct {
	Source string
	Diags  []Diagnostic
}

// NewCollector returns a Collector bound to source.
func NewCollector(source string) *Collector {
	return &Collector{Source: source}
}

// HasErrors reports whether any diagnostic was recorded.
func (c *Collector) HasErrors() bool { return len(c.Diags) > 0 }

// HasCode reports whether a diagnostic with the given code was recorded
// (the predicate the parser's own test suite and original_source's
// test-diagnostics.cpp both build around).
func (c *Collector) HasCode(code string) bool {
	for _, d := range c.Diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Emit records d.
func (c *Collector) Emit(d Diagnostic) {
	c.Diags = append(c.Diags, d)
}

// Fatal emits d and returns the exception Completion that a parse failure
// propagates (spec.md §4.2: "the result is a failure carrying an exception
// Completion whose message is 'parse error'").
func (c *Collector) Fatal(d Diagnostic) Completion {
	c.Emit(d)
	return ExceptionStr("parse error")
}

// Dump renders every recorded diagnostic against Source, in the style of
// the teacher's caret-snippet renderer, extended to show every label.
func (c *Collector) Dump(w io.Writer) {
	lines := strings.Split(c.Source, "\n")
	lineText := func(n int) string {
		if n < 1 || n > len(lines) {
			return ""
		}
		return lines[n-1]
	}
	renderLabel := func(lbl Label) {
		fmt.Fprintf(w, "%4d | %s\n", lbl.Span.StartLine, lineText(lbl.Span.StartLine))
		pad := lbl.Span.StartCol - 1
		if pad < 0 {
			pad = 0
		}
		width := lbl.Span.EndCol - lbl.Span.StartCol
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(w, "     | %s%s %s\n", strings.Repeat(" ", pad), strings.Repeat("^", width), lbl.Text)
	}
	for _, d := range c.Diags {
		fmt.Fprintf(w, "error[%s]: %s\n", d.Code, d.Message)
		fmt.Fprintf(w, "  --> %d:%d\n", d.Primary.Span.StartLine, d.Primary.Span.StartCol)
		renderLabel(d.Primary)
		for _, s := range d.Secondary {
			renderLabel(s)
		}
		if d.Note != "" {
			fmt.Fprintf(w, "  = note: %s\n", d.Note)
		}
		if d.Help != "" {
			fmt.Fprintf(w, "  = help: %s\n", d.Help)
		}
		fmt.Fprintln(w)
	}
}

// String renders every diagnostic via Dump into a single string, handy for
// tests and for embedding into a wrapped Go error.
func (c *Collector) String() string {
	var b strings.Builder
	c.Dump(&b)
	return b.String()
}
