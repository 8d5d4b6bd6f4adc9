// value.go: the tagged Value union and the Completion control-flow channel
//
// Grounded on the teacher's interpreter.go (ValueTag enum, Value{Tag, Data,
// Annot} struct shape) and on original_source/src/luna-lang/base.cpp's
// `Value` union and `Completion`/`CompletionOr<T>`. Luna's Value carries
// exactly the seven kinds named in spec.md §3, not the teacher's richer
// MindScript value set.
package luna

import "fmt"

// Kind identifies which of Value's seven variants is populated.
type Kind int

const (
	KindNone Kind = iota
	KindBoolean
	KindInteger
	KindNumber
	KindSymbol
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is Luna's uniform, cheap-to-copy tagged union. Only one of the
// scalar fields is meaningful at a time, selected by Kind; object-kind
// values hold a shared handle to a heap Object.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	N    float64
	Sym  *Symbol
	Str  string
	Obj  Object
}

// None is the singleton none value.
var None = Value{Kind: KindNone}

// Bool wraps a Go bool as a Value.
func Bool(b bool) Value { return Value{Kind: KindBoolean, B: b} }

// Int wraps a Go int64 as a Value.
func Int(i int64) Value { return Value{Kind: KindInteger, I: i} }

// Num wraps a Go float64 as a Value.
func Num(n float64) Value { return Value{Kind: KindNumber, N: n} }

// Sym wraps an interned symbol as a Value.
func Sym(s *Symbol) Value { return Value{Kind: KindSymbol, Sym: s} }

// Str wraps a Go string as a Value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// ObjVal wraps a heap Object as a Value.
func ObjVal(o Object) Value { return Value{Kind: KindObject, Obj: o} }

func (v Value) IsNone() bool   { return v.Kind == KindNone }
func (v Value) IsObject() bool { return v.Kind == KindObject }

// GoString renders a Value for debugging (panics/test failures), not for
// the language-level asString conversion (see printer.go).
func (v Value) GoString() string {
	switch v.Kind {
	case KindNone:
		return "none"
	case KindBoolean:
		return fmt.Sprintf("%v", v.B)
	case KindInteger:
		return fmt.Sprintf("%d", v.I)
	case KindNumber:
		return fmt.Sprintf("%g", v.N)
	case KindSymbol:
		return "#" + v.Sym.Name()
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindObject:
		return fmt.Sprintf("<object %T>", v.Obj)
	default:
		return "<invalid>"
	}
}

// CompletionKind distinguishes the four non-local control-flow channels.
type CompletionKind int

const (
	CNone CompletionKind = iota
	CReturn
	CContinue
	CBreak
	CException
)

// Completion is the error channel threaded alongside every Value returned
// by eval. A zero Completion (Kind == CNone) means "no unwind in progress";
// every evaluator arm must check and propagate a non-CNone Completion
// before doing any further work. This is a data channel, not a Go panic —
// see SPEC_FULL.md §1.1 and spec.md §9 "Non-local control flow".
type Completion struct {
	Kind  CompletionKind
	Value Value
}

// Ok is the "no unwind" completion paired with a scalar result.
var Ok = Completion{Kind: CNone}

// Return/Continue/Break/Exception build the corresponding non-local
// completion carrying val.
func Return(val Value) Completion    { return Completion{Kind: CReturn, Value: val} }
func Continue(val Value) Completion  { return Completion{Kind: CContinue, Value: val} }
func Break(val Value) Completion     { return Completion{Kind: CBreak, Value: val} }
func Exception(val Value) Completion { return Completion{Kind: CException, Value: val} }

// ExceptionStr raises an exception Completion carrying a string message,
// the shape used by every internal evaluator error (spec.md §7: "every
// failing operation produces a Completion with a short message string").
func ExceptionStr(msg string) Completion { return Exception(Str(msg)) }

// IsOk reports whether c represents normal (non-unwinding) evaluation.
func (c Completion) IsOk() bool { return c.Kind == CNone }
