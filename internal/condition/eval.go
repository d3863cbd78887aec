package condition

import "fmt"

// evalBool walks a boolean-typed node. Short-circuits and/or, so an unknown
// variable in a later operand is not reported when the result is already
// decided.
func evalBool(node Node, ctx map[string]float64) (bool, error) {
	switch n := node.(type) {
	case Comparison:
		left, err := evalNumber(n.Left, ctx)
		if err != nil {
			return false, err
		}
		right, err := evalNumber(n.Right, ctx)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case OpLT:
			return left < right, nil
		case OpLE:
			return left <= right, nil
		case OpGT:
			return left > right, nil
		case OpGE:
			return left >= right, nil
		case OpEQ:
			return left == right, nil
		case OpNE:
			return left != right, nil
		}
		return false, parseErr(0, fmt.Sprintf("unknown comparison operator %v", n.Op))
	case BooleanOp:
		switch n.Op {
		case OpNot:
			value, err := evalBool(n.Operands[0], ctx)
			if err != nil {
				return false, err
			}
			return !value, nil
		case OpAnd:
			for _, operand := range n.Operands {
				value, err := evalBool(operand, ctx)
				if err != nil {
					return false, err
				}
				if !value {
					return false, nil
				}
			}
			return true, nil
		case OpOr:
			for _, operand := range n.Operands {
				value, err := evalBool(operand, ctx)
				if err != nil {
					return false, err
				}
				if value {
					return true, nil
				}
			}
			return false, nil
		}
		return false, parseErr(0, fmt.Sprintf("unknown boolean operator %v", n.Op))
	default:
		return false, parseErr(0, "expression is not a boolean condition")
	}
}

// evalNumber resolves a numeric-typed node, strictly against ctx
func evalNumber(node Node, ctx map[string]float64) (float64, error) {
	switch n := node.(type) {
	case Literal:
		return n.Value, nil
	case Identifier:
		value, ok := ctx[n.Name]
		if !ok {
			return 0, &EvalError{Kind: UnknownVariable, Name: n.Name}
		}
		return value, nil
	default:
		return 0, parseErr(0, "expected a numeric operand")
	}
}
