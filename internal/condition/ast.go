package condition

// Node is a node of the parsed condition tree
type Node interface {
	// isBool reports whether the node evaluates to a boolean (as opposed
	// to a number). Typing is fully static in this grammar.
	isBool() bool
}

// Literal is a numeric constant
type Literal struct {
	Value float64
}

// Identifier resolves a variable from the evidence context
type Identifier struct {
	Name string
}

// CompareOp is a comparison operator
type CompareOp int

const (
	OpLT CompareOp = iota
	OpLE
	OpGT
	OpGE
	OpEQ
	OpNE
)

func (op CompareOp) String() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	default:
		return "?"
	}
}

// Comparison compares two numeric operands
type Comparison struct {
	Op    CompareOp
	Left  Node
	Right Node
}

// BoolOp is a boolean combinator
type BoolOp int

const (
	OpAnd BoolOp = iota
	OpOr
	OpNot
)

// BooleanOp combines boolean operands; Operands has length 1 for OpNot
type BooleanOp struct {
	Op       BoolOp
	Operands []Node
}

func (Literal) isBool() bool    { return false }
func (Identifier) isBool() bool { return false }
func (Comparison) isBool() bool { return true }
func (BooleanOp) isBool() bool  { return true }
