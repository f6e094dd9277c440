package network

import (
	"fmt"
	"math"
)

// InitialPropensities computes every reaction's propensity against
// state from scratch, for both layouts: the dense layout always
// starts this way, and the sparse layout uses it once at t=0 before
// switching to incremental updates (spec.md §4.3).
func (f *Frozen) InitialPropensities(state []int64) ([]float64, float64) {
	a := make([]float64, len(f.runtime))
	total := 0.0
	for ri := range f.runtime {
		a[ri] = f.recomputeOne(ri, state)
		total += a[ri]
	}
	return a, total
}

// Fire applies reaction ri's stoichiometric delta to state and returns
// the updated propensity total. In dense mode every propensity is
// recomputed (a itself is updated in place); in sparse mode only the
// reactions whose propensity depends on a species ri's delta touched
// are recomputed, via the listener graph built at Freeze time.
func (f *Frozen) Fire(state []int64, ri int, a []float64, total float64) float64 {
	f.applyDelta(state, ri)

	if !f.sparse {
		total = 0
		for j := range f.runtime {
			a[j] = f.recomputeOne(j, state)
			total += a[j]
		}
		return total
	}

	var dirty []int
	seen := make(map[int]bool)
	for _, sd := range f.runtime[ri].sparseDelta {
		for _, dep := range f.listeners[sd.species] {
			if !seen[dep] {
				seen[dep] = true
				dirty = append(dirty, dep)
			}
		}
	}
	for _, dep := range dirty {
		total -= a[dep]
		a[dep] = f.recomputeOne(dep, state)
		total += a[dep]
	}
	return total
}

func (f *Frozen) applyDelta(state []int64, ri int) {
	if f.sparse {
		for _, sd := range f.runtime[ri].sparseDelta {
			state[sd.species] += sd.delta
		}
		return
	}
	dense := f.runtime[ri].delta
	for s, d := range dense {
		if d != 0 {
			state[s] += d
		}
	}
}

// rawPropensity computes reaction ri's propensity before the
// non-finite/negative clamp: the law-of-mass-action falling factorial
// (without the n! normalization, per the rebop convention spec.md §9
// resolves to) for RateConstant reactions, or the compiled expression
// tree for RateExpr reactions.
func (f *Frozen) rawPropensity(ri int, state []int64) float64 {
	rxn := &f.net.reactions[ri]
	rt := &f.runtime[ri]
	if rxn.rate.Kind == RateExpr {
		return evalCompiled(rt.compiled, state)
	}
	v := rxn.rate.C
	for _, rc := range rt.reactantCounts {
		v *= fallingFactorial(state[rc.species], rc.count)
	}
	return v
}

// fallingFactorial computes x(x-1)...(x-m+1), the combinatorial factor
// for m molecules of a species being consumed by one reaction event.
func fallingFactorial(x int64, m int64) float64 {
	v := 1.0
	for k := int64(0); k < m; k++ {
		v *= float64(x - k)
	}
	return v
}

// recomputeOne computes reaction ri's propensity and clamps NaN,
// negative or +Inf results to zero, surfacing WarnNonFinitePropensity
// through the owning Network's WarnFunc the first time this happens
// for ri (spec.md §7.4).
func (f *Frozen) recomputeOne(ri int, state []int64) float64 {
	raw := f.rawPropensity(ri, state)
	if math.IsNaN(raw) || raw < 0 || math.IsInf(raw, 1) {
		if !f.warnedOnce[ri] {
			f.warnedOnce[ri] = true
			f.net.warnf(Warning{
				Kind:    WarnNonFinitePropensity,
				Message: fmt.Sprintf("reaction %d propensity evaluated to %v, clamped to zero", ri, raw),
			})
		}
		return 0
	}
	return raw
}
