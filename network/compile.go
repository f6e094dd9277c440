package network

import "github.com/deep6ix/gillespie/rate"

// compiledKind mirrors rate.Kind but with KindVar resolved away:
// spec.md §9 calls for "index-binding at network freeze" so the hot
// loop never does a name lookup. A Var bound to a parameter collapses
// straight to a literal (params are fixed for the whole run); a Var
// bound to a species becomes a direct state-slice index.
type compiledKind int

const (
	cLit compiledKind = iota
	cSpecies
	cNeg
	cAdd
	cSub
	cMul
	cDiv
)

type compiledExpr struct {
	kind       compiledKind
	lit        float64
	speciesIdx int
	l, r       *compiledExpr
}

// compileRate binds every Var node in e to a species index or inlines
// it as a parameter literal, and returns the set of species indices
// actually referenced (used to build the sparse-mode dependency
// graph). It fails with *rate.MissingParameterError if a name is
// neither a declared species nor a supplied parameter.
func (n *Network) compileRate(e *rate.Expr, params map[string]float64) (*compiledExpr, map[int]bool, error) {
	freeSpecies := make(map[int]bool)

	var build func(*rate.Expr) (*compiledExpr, error)
	build = func(node *rate.Expr) (*compiledExpr, error) {
		switch node.Kind {
		case rate.KindLit:
			return &compiledExpr{kind: cLit, lit: node.Lit}, nil
		case rate.KindVar:
			if idx, ok := n.species.lookup(node.Name); ok {
				freeSpecies[idx] = true
				return &compiledExpr{kind: cSpecies, speciesIdx: idx}, nil
			}
			if v, ok := params[node.Name]; ok {
				return &compiledExpr{kind: cLit, lit: v}, nil
			}
			return nil, &rate.MissingParameterError{Name: node.Name}
		case rate.KindNeg:
			l, err := build(node.L)
			if err != nil {
				return nil, err
			}
			return &compiledExpr{kind: cNeg, l: l}, nil
		default:
			var k compiledKind
			switch node.Kind {
			case rate.KindAdd:
				k = cAdd
			case rate.KindSub:
				k = cSub
			case rate.KindMul:
				k = cMul
			case rate.KindDiv:
				k = cDiv
			}
			l, err := build(node.L)
			if err != nil {
				return nil, err
			}
			r, err := build(node.R)
			if err != nil {
				return nil, err
			}
			return &compiledExpr{kind: k, l: l, r: r}, nil
		}
	}

	root, err := build(e)
	if err != nil {
		return nil, nil, err
	}
	return root, freeSpecies, nil
}

func evalCompiled(c *compiledExpr, state []int64) float64 {
	switch c.kind {
	case cLit:
		return c.lit
	case cSpecies:
		return float64(state[c.speciesIdx])
	case cNeg:
		return -evalCompiled(c.l, state)
	case cAdd:
		return evalCompiled(c.l, state) + evalCompiled(c.r, state)
	case cSub:
		return evalCompiled(c.l, state) - evalCompiled(c.r, state)
	case cMul:
		return evalCompiled(c.l, state) * evalCompiled(c.r, state)
	case cDiv:
		return evalCompiled(c.l, state) / evalCompiled(c.r, state)
	default:
		panic("network: unknown compiled node kind")
	}
}
