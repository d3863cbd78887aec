package condition

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokAnd
	tokOr
	tokNot
	tokLT
	tokLE
	tokGT
	tokGE
	tokEQ
	tokNE
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Parse parses expr into a boolean condition tree.
// A non-nil error is always an *EvalError of kind ParseFailure.
func Parse(expr string) (Node, error) {
	tokens, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, parseErr(tok.pos, fmt.Sprintf("unexpected %q", tok.text))
	}
	if !node.isBool() {
		return nil, parseErr(0, "expression is not a boolean condition (missing comparison?)")
	}
	return node, nil
}

func parseErr(pos int, msg string) *EvalError {
	return &EvalError{Kind: ParseFailure, Pos: pos, Msg: msg}
}

func lex(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{tokLParen, "(", i})
			i++
		case c == ')':
			tokens = append(tokens, token{tokRParen, ")", i})
			i++
		case c == '<':
			if i+1 < len(expr) && expr[i+1] == '=' {
				tokens = append(tokens, token{tokLE, "<=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokLT, "<", i})
				i++
			}
		case c == '>':
			if i+1 < len(expr) && expr[i+1] == '=' {
				tokens = append(tokens, token{tokGE, ">=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokGT, ">", i})
				i++
			}
		case c == '=':
			if i+1 < len(expr) && expr[i+1] == '=' {
				tokens = append(tokens, token{tokEQ, "==", i})
				i += 2
			} else {
				return nil, parseErr(i, "single '=' is not a comparison (use '==')")
			}
		case c == '!':
			if i+1 < len(expr) && expr[i+1] == '=' {
				tokens = append(tokens, token{tokNE, "!=", i})
				i += 2
			} else {
				return nil, parseErr(i, "unexpected '!' (use 'not' or '!=')")
			}
		case c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			if c == '-' {
				i++
				if i >= len(expr) || !(expr[i] == '.' || (expr[i] >= '0' && expr[i] <= '9')) {
					return nil, parseErr(start, "'-' must be followed by a number")
				}
			}
			for i < len(expr) && (expr[i] == '.' || (expr[i] >= '0' && expr[i] <= '9')) {
				i++
			}
			text := expr[start:i]
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, parseErr(start, fmt.Sprintf("invalid number %q", text))
			}
			tokens = append(tokens, token{tokNumber, text, start})
		case isIdentStart(c):
			start := i
			for i < len(expr) && isIdentPart(expr[i]) {
				i++
			}
			text := expr[start:i]
			switch text {
			case "and":
				tokens = append(tokens, token{tokAnd, text, start})
			case "or":
				tokens = append(tokens, token{tokOr, text, start})
			case "not":
				tokens = append(tokens, token{tokNot, text, start})
			default:
				tokens = append(tokens, token{tokIdent, text, start})
			}
		default:
			return nil, parseErr(i, fmt.Sprintf("unexpected character %q", string(c)))
		}
	}
	tokens = append(tokens, token{tokEOF, "", len(expr)})
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// parser implements recursive descent with precedence or < and < not < comparison
type parser struct {
	tokens []token
	next   int
}

func (p *parser) peek() token {
	return p.tokens[p.next]
}

func (p *parser) advance() token {
	tok := p.tokens[p.next]
	if tok.kind != tokEOF {
		p.next++
	}
	return tok
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Node{left}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return left, nil
	}
	if err := requireBool(operands, "or"); err != nil {
		return nil, err
	}
	return BooleanOp{Op: OpOr, Operands: operands}, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	operands := []Node{left}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return left, nil
	}
	if err := requireBool(operands, "and"); err != nil {
		return nil, err
	}
	return BooleanOp{Op: OpAnd, Operands: operands}, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().kind == tokNot {
		tok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		if !operand.isBool() {
			return nil, parseErr(tok.pos, "'not' requires a boolean operand")
		}
		return BooleanOp{Op: OpNot, Operands: []Node{operand}}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(p.peek().kind)
	if !ok {
		return left, nil
	}
	tok := p.advance()
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if left.isBool() || right.isBool() {
		return nil, parseErr(tok.pos, fmt.Sprintf("%q requires numeric operands", tok.text))
	}
	// Chained comparisons (a < b < c) are rejected by the trailing-token
	// check in Parse, since the result here is boolean.
	return Comparison{Op: op, Left: left, Right: right}, nil
}

func comparisonOp(kind tokenKind) (CompareOp, bool) {
	switch kind {
	case tokLT:
		return OpLT, true
	case tokLE:
		return OpLE, true
	case tokGT:
		return OpGT, true
	case tokGE:
		return OpGE, true
	case tokEQ:
		return OpEQ, true
	case tokNE:
		return OpNE, true
	default:
		return 0, false
	}
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, parseErr(tok.pos, fmt.Sprintf("invalid number %q", tok.text))
		}
		return Literal{Value: value}, nil
	case tokIdent:
		p.advance()
		return Identifier{Name: tok.text}, nil
	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing := p.peek()
		if closing.kind != tokRParen {
			return nil, parseErr(closing.pos, "missing ')'")
		}
		p.advance()
		return inner, nil
	case tokEOF:
		return nil, parseErr(tok.pos, "unexpected end of expression")
	default:
		return nil, parseErr(tok.pos, fmt.Sprintf("unexpected %q", tok.text))
	}
}

func requireBool(operands []Node, op string) error {
	for _, o := range operands {
		if !o.isBool() {
			return parseErr(0, fmt.Sprintf("%q requires boolean operands", op))
		}
	}
	return nil
}
