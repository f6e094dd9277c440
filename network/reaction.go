package network

import "github.com/deep6ix/gillespie/rate"

// RateKind tags whether a reaction's rate is a law-of-mass-action
// constant or an arbitrary expression (spec.md §3, §9 "polymorphic
// rate").
type RateKind int

const (
	RateConstant RateKind = iota
	RateExpr
)

// Rate is the tagged union `Constant(c) | Expr(ast)` of spec.md §3.
type Rate struct {
	Kind RateKind
	C    float64
	Expr *rate.Expr
	// Text is the original rate string, used by String() for Expr
	// rates so rendering round-trips the user's notation rather than
	// re-printing the AST. Freeze compiles Expr, not Text.
	Text string
}

// reaction is one AddReaction record: reactant/product multisets and
// a rate. It holds nothing derived — stoichiometry and any compiled
// expression are built fresh by Freeze (spec.md §4.2 "Stoichiometry
// build: on freeze..."), so a *Network stays an immutable, read-only
// value once construction finishes and many Freeze/Run calls can run
// concurrently against it (spec.md §5).
type reaction struct {
	reactants []int // species indices, ordered, multiplicity significant
	products  []int
	rate      Rate
}

// String renders one reaction as "reactants → products [rate]"
// following spec.md §4.7: multiplicities expand (A + A -> AA written
// as "A + A"), an empty side renders as "∅".
func (r *reaction) String(names *speciesTable) string {
	return sideString(r.reactants, names) + " → " + sideString(r.products, names) + " [" + r.rateString() + "]"
}

func sideString(species []int, names *speciesTable) string {
	if len(species) == 0 {
		return "∅"
	}
	s := ""
	for i, idx := range species {
		if i > 0 {
			s += " + "
		}
		s += names.nameAt(idx)
	}
	return s
}

func (r *reaction) rateString() string {
	if r.rate.Kind == RateConstant {
		return formatFloat(r.rate.C)
	}
	return r.rate.Text
}
