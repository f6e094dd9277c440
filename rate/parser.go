package rate

import "fmt"

// Parse compiles a rate expression string into an AST. On any
// malformed input it returns a *NotUnderstoodError carrying the
// original text, per spec.md §4.1 — there is exactly one error kind
// at this layer, the reason string is diagnostic only.
func Parse(text string) (*Expr, error) {
	p := &parser{lex: newLexer(text), text: text}
	if err := p.advance(); err != nil {
		return nil, p.wrap(err)
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, p.wrap(err)
	}
	if p.cur.kind != tokEOF {
		return nil, p.wrap(fmt.Errorf("unexpected trailing input %q", p.remainder()))
	}
	return e, nil
}

type parser struct {
	lex  *lexer
	cur  token
	text string
}

func (p *parser) wrap(err error) error {
	return &NotUnderstoodError{Text: p.text, Reason: err.Error()}
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) remainder() string {
	switch p.cur.kind {
	case tokIdent, tokNumber:
		return p.cur.text
	default:
		return p.lex.rest()
	}
}

// Binding powers for the binary operators; unary minus binds tighter
// than '*'/'/' per spec.md §4.1.
const (
	bpSum = 1 << iota
	bpProd
	bpUnary
)

// parseExpr implements Pratt/precedence-climbing parsing: parse a
// unary/primary term, then repeatedly fold in binary operators whose
// binding power exceeds minBP.
func (p *parser) parseExpr(minBP int) (*Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var kind Kind
		var bp int
		switch p.cur.kind {
		case tokPlus:
			kind, bp = KindAdd, bpSum
		case tokMinus:
			kind, bp = KindSub, bpSum
		case tokStar:
			kind, bp = KindMul, bpProd
		case tokSlash:
			kind, bp = KindDiv, bpProd
		default:
			return left, nil
		}
		if bp <= minBP {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr(bp)
		if err != nil {
			return nil, err
		}
		left = binary(kind, left, right)
	}
}

func (p *parser) parseUnary() (*Expr, error) {
	if p.cur.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(bpUnary)
		if err != nil {
			return nil, err
		}
		return neg(operand), nil
	}
	if p.cur.kind == tokPlus {
		// Unary plus is accepted as a no-op for symmetry with unary
		// minus, even though spec.md only names unary '-' explicitly.
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseExpr(bpUnary)
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return lit(v), nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return variable(name), nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("missing operand")
	default:
		return nil, fmt.Errorf("unexpected token")
	}
}
