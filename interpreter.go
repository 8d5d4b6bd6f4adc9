// interpreter.go: wires lexer → parser → evaluator behind one entry point
//
// Grounded on the teacher's NewInterpreter/runtime.go's NewRuntime wiring
// pattern (construct a root environment, register builtins into it, hand
// back a ready-to-use interpreter) — generalized from the teacher's
// Core/Global two-environment split (irrelevant here: Luna has no module
// system to separate a prelude from user code, an explicit Non-goal) down
// to Luna's single root Environment.
package luna

import (
	"bufio"
	"io"
)

// Interpreter holds the root environment that every top-level RunSource call
// evaluates against, so declarations from one call are visible to the next
// (spec.md §6's REPL use case: "successive inputs share one environment").
type Interpreter struct {
	Global *Environment
}

// NewInterpreter returns an Interpreter with spec.md §6's host builtins
// already declared in its root environment. stdout/stdin back `println`/
// `input`; pass os.Stdout and bufio.NewReader(os.Stdin) for a normal CLI run.
func NewInterpreter(stdout io.Writer, stdin *bufio.Reader) *Interpreter {
	global := NewEnvironment(nil)
	RegisterBuiltins(global, stdout, stdin)
	return &Interpreter{Global: global}
}

// RunSource lexes, parses, and evaluates source against ip.Global, returning
// the program's value. A `return`/`break`/`continue` Completion that escapes
// the top-level block is unwound to its carried Value rather than treated as
// an error (spec.md §6: "top-level completions besides exception are
// unwrapped and their value returned"). An escaping `exception` Completion is
// wrapped into a Go error via WrapException. Parse/lex failures are reported
// through diag (check diag.HasErrors()) rather than as a Go
// error, matching spec.md §4.2's diagnostic-first design.
func (ip *Interpreter) RunSource(source string) (Value, *Collector, error) {
	diag := NewCollector(source)
	prog, ok := Parse(source, diag)
	if !ok {
		return None, diag, nil
	}
	v, c := OpEval(prog, ip.Global)
	switch c.Kind {
	case CNone:
		return v, diag, nil
	case CReturn, CBreak, CContinue:
		return c.Value, diag, nil
	case CException:
		return None, diag, WrapException(c)
	default:
		return None, diag, nil
	}
}
