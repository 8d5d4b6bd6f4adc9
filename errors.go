// errors.go: wraps an escaping exception Completion as a Go error
//
// Parse/lex failures already render through diagnostics.go's Collector; this
// file only handles the OTHER half of SPEC_FULL.md §1.1 — an `exception`
// Completion that unwinds all the way out of RunSource with no enclosing
// try/catch. Grounded on the teacher's errors.go (WrapErrorWithSource /
// prettyErrorStringLabeled), reworked for Luna's Completion model instead of
// the teacher's *LexError/*ParseError/*RuntimeError trio, which have no
// counterpart here: Luna's lex/parse failures are Diagnostics, not Go error
// types, and a runtime exception carries a Value, not a line/column.
package luna

import "fmt"

// RuntimeError is a Go error wrapping an exception Completion's payload
// Value, for callers (cmd/luna) that want a plain `error` at the host
// boundary rather than a raw Completion.
type RuntimeError struct {
	Value Value
	text  string
}

func (e *RuntimeError) Error() string { return e.text }

// WrapException turns an exception Completion into a *RuntimeError. It
// panics if c is not an exception Completion — callers are expected to have
// already checked c.Kind == CException (spec.md §6: "an exception Completion
// escaping the top level becomes the program's reported error").
func WrapException(c Completion) error {
	if c.Kind != CException {
		panic("WrapException: completion is not an exception")
	}
	msg, sc := AsStringVal(c.Value)
	if !sc.IsOk() {
		msg = c.Value.GoString()
	}
	return &RuntimeError{Value: c.Value, text: fmt.Sprintf("uncaught exception: %s", msg)}
}
