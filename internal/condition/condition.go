// Package condition parses and evaluates rule conditions against an evidence
// context. The grammar is a closed subset: numeric and identifier literals,
// comparisons, and/or/not, and parentheses. There are no function calls, no
// member access, no assignment and no loops, so an expression can never
// perform I/O, call host code, or reach data outside the supplied context.
package condition

import "fmt"

// ErrorKind classifies evaluation failures
type ErrorKind int

const (
	// ParseFailure means the expression is malformed (syntax or type error)
	ParseFailure ErrorKind = iota
	// UnknownVariable means an identifier is absent from the context
	UnknownVariable
)

func (k ErrorKind) String() string {
	switch k {
	case ParseFailure:
		return "parse failure"
	case UnknownVariable:
		return "unknown variable"
	default:
		return "error"
	}
}

// EvalError describes why an expression could not be evaluated.
// Callers must not conflate it with a false result.
type EvalError struct {
	Kind ErrorKind
	Name string // Offending identifier for UnknownVariable
	Pos  int    // Byte offset into the expression, for ParseFailure
	Msg  string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnknownVariable:
		return fmt.Sprintf("unknown variable %q", e.Name)
	default:
		return fmt.Sprintf("parse failure at offset %d: %s", e.Pos, e.Msg)
	}
}

// Evaluate parses expr and evaluates it against ctx.
// A non-nil error is always an *EvalError.
func Evaluate(expr string, ctx map[string]float64) (bool, error) {
	node, err := Parse(expr)
	if err != nil {
		return false, err
	}
	return evalBool(node, ctx)
}

// Validate parses expr and reports whether it is a well-formed boolean
// condition, without evaluating it. Used for config-load validation.
func Validate(expr string) error {
	_, err := Parse(expr)
	return err
}
