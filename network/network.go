// Package network is the in-memory reaction-network model of spec.md
// §3–§4.2 and §4.7: species interning, reactions, stoichiometry, the
// propensity engine that reads them, and textual rendering. It also
// performs the §7 validation that Freeze runs before a simulation
// starts.
package network

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/deep6ix/gillespie/rate"
)

// Network accumulates species and reactions via AddReaction/SetInit.
// A Network is safe for concurrent Freeze/Run calls once construction
// (the AddReaction/SetInit sequence) is finished on a single
// goroutine; it holds no mutable state that a Freeze touches.
type Network struct {
	species    *speciesTable
	inReaction []bool // per species index, whether any reaction references it
	reactions  []reaction
	init       map[int]int64

	warn WarnFunc
}

// WarnFunc receives non-fatal conditions (spec.md §7.3). The zero
// value (nil) is treated as a no-op.
type WarnFunc func(Warning)

// New returns an empty Network.
func New() *Network {
	return &Network{
		species: newSpeciesTable(),
		init:    make(map[int]int64),
	}
}

// SetWarnFunc installs the callback used to deliver warnings. Pass nil
// to silence warnings again.
func (n *Network) SetWarnFunc(f WarnFunc) { n.warn = f }

func (n *Network) warnf(w Warning) {
	if n.warn != nil {
		n.warn(w)
	}
}

// AddReaction appends one reaction, and optionally its reverse, in the
// order spec.md §4.2 describes. rateSpec and reverseRateSpec must each
// be a float64 (law of mass action) or a string (parsed as a rate
// expression); reverseRateSpec may be nil to skip the reverse
// reaction. Species names not seen before are interned. A malformed
// rate string surfaces as *rate.NotUnderstoodError.
func (n *Network) AddReaction(rateSpec any, reactants, products []string, reverseRateSpec any) error {
	r, err := n.buildRate(rateSpec)
	if err != nil {
		return err
	}
	n.appendReaction(r, reactants, products)

	if reverseRateSpec != nil {
		rr, err := n.buildRate(reverseRateSpec)
		if err != nil {
			return err
		}
		n.appendReaction(rr, products, reactants)
	}
	return nil
}

func (n *Network) buildRate(spec any) (Rate, error) {
	switch v := spec.(type) {
	case float64:
		return Rate{Kind: RateConstant, C: v}, nil
	case int:
		return Rate{Kind: RateConstant, C: float64(v)}, nil
	case string:
		ast, err := rate.Parse(v)
		if err != nil {
			return Rate{}, err
		}
		return Rate{Kind: RateExpr, Expr: ast, Text: v}, nil
	default:
		return Rate{}, fmt.Errorf("network: rate must be float64 or string, got %T", spec)
	}
}

func (n *Network) appendReaction(r Rate, reactantNames, productNames []string) {
	reactants := n.internAll(reactantNames)
	products := n.internAll(productNames)
	n.reactions = append(n.reactions, reaction{reactants: reactants, products: products, rate: r})
}

func (n *Network) internAll(names []string) []int {
	idxs := make([]int, len(names))
	for i, name := range names {
		idx := n.species.intern(name)
		n.markInReaction(idx)
		idxs[i] = idx
	}
	return idxs
}

func (n *Network) markInReaction(idx int) {
	for len(n.inReaction) <= idx {
		n.inReaction = append(n.inReaction, false)
	}
	n.inReaction[idx] = true
}

// SetInit records the initial copy number for each named species.
// Names not yet declared by any reaction are interned so they still
// appear in output (with a constant value), and
// WarnSpeciesNotInvolvedInAnyReaction is raised through WarnFunc for
// them (spec.md §4.2, §7.3). Negative counts are accepted here and
// rejected later by Freeze, matching the §6 contract that
// InitSpeciesNegative is a run-entry error, not a SetInit error.
func (n *Network) SetInit(init map[string]int64) {
	names := make([]string, 0, len(init))
	for name := range init {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idx := n.species.intern(name)
		n.init[idx] = init[name]
		if len(n.inReaction) <= idx || !n.inReaction[idx] {
			n.warnf(Warning{
				Kind:    WarnSpeciesNotInvolvedInAnyReaction,
				Message: fmt.Sprintf("species %q is not involved in any reaction", name),
			})
		}
	}
}

// String renders the network per spec.md §4.7: one line per reaction
// in declaration order.
func (n *Network) String() string {
	s := ""
	for i, r := range n.reactions {
		if i > 0 {
			s += "\n"
		}
		s += r.String(n.species)
	}
	return s
}

// NumSpecies returns the number of interned species.
func (n *Network) NumSpecies() int { return n.species.len() }

// NumReactions returns the number of reactions, including reverse
// reactions added by AddReaction's reverse_rate convenience.
func (n *Network) NumReactions() int { return len(n.reactions) }

// SpeciesNames returns species names in declaration order.
func (n *Network) SpeciesNames() []string {
	names := make([]string, n.species.len())
	copy(names, n.species.names)
	return names
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
