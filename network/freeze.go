package network

import (
	"sort"

	"github.com/ctessum/sparse"
)

// Options configures a Freeze call (spec.md §7.1): the parameter
// bindings for expression rates, the subset and order of species a
// run should record (nil means every species, declaration order), and
// an optional override of the dense/sparse propensity layout.
type Options struct {
	Params   map[string]float64
	VarNames []string
	Sparse   *bool
}

type speciesCount struct {
	species int
	count   int64
}

type speciesDelta struct {
	species int
	delta   int64
}

// runtimeReaction is the per-reaction data Freeze derives: a compiled
// expression tree for Expr rates, the reactant multiset for mass
// action, and the nonzero stoichiometric delta. It is rebuilt fresh on
// every Freeze so it never aliases anything another concurrent Freeze
// is computing (spec.md §5).
type runtimeReaction struct {
	compiled       *compiledExpr
	reactantCounts []speciesCount
	sparseDelta    []speciesDelta
	delta          []int64 // dense form of the same data, length S
}

// Frozen is the immutable, run-ready compilation of a Network produced
// by Freeze: stoichiometry, compiled rate expressions, the chosen
// dense/sparse propensity layout and (in sparse mode) the species →
// dependent-reactions listener graph. A single Network can be frozen
// many times concurrently; each Frozen is independent (spec.md §5).
type Frozen struct {
	net        *Network
	sparse     bool
	varIndices []int
	runtime    []runtimeReaction
	listeners  [][]int // species -> reaction indices touched by it, sparse mode only
	warnedOnce []bool  // per reaction, whether WarnNonFinitePropensity already fired
}

// Freeze validates params/init/varNames against the Network and
// compiles a run-ready Frozen plus the initial state vector (spec.md
// §7.2). Validation order: parameter/species collisions, then
// negative initial counts, then unknown var_names entries, then
// compiling rate expressions (which can surface
// *rate.MissingParameterError).
func (n *Network) Freeze(opts Options) (*Frozen, []int64, error) {
	for pname := range opts.Params {
		if _, ok := n.species.lookup(pname); ok {
			return nil, nil, &ParameterNameCollidesWithSpeciesError{Name: pname}
		}
	}

	state := make([]int64, n.species.len())
	for idx, count := range n.init {
		if count < 0 {
			return nil, nil, &InitSpeciesNegativeError{Name: n.species.nameAt(idx), Value: count}
		}
		state[idx] = count
	}

	var varIdx []int
	if opts.VarNames != nil {
		varIdx = make([]int, len(opts.VarNames))
		for i, name := range opts.VarNames {
			idx, ok := n.species.lookup(name)
			if !ok {
				return nil, nil, &UnknownVarNameError{Name: name}
			}
			varIdx[i] = idx
		}
	} else {
		varIdx = make([]int, n.species.len())
		for i := range varIdx {
			varIdx[i] = i
		}
	}

	runtime, listeners, sparseChosen, err := n.buildRuntime(opts.Params, opts.Sparse)
	if err != nil {
		return nil, nil, err
	}

	return &Frozen{
		net:        n,
		sparse:     sparseChosen,
		varIndices: varIdx,
		runtime:    runtime,
		listeners:  listeners,
		warnedOnce: make([]bool, len(runtime)),
	}, state, nil
}

// buildRuntime computes, for every reaction, its reactant multiset and
// stoichiometric delta (via two R×S sparse.SparseArray accumulators,
// spec.md §4.2's "stoichiometry build"), and compiles any expression
// rate against params (spec.md §4.1, §9 index-binding). It also
// applies the dense/sparse layout heuristic of §4.2 and, when sparse
// wins, builds the species → dependent-reaction listener graph used by
// the propensity engine's incremental recompute (§4.3).
func (n *Network) buildRuntime(params map[string]float64, sparseOverride *bool) ([]runtimeReaction, [][]int, bool, error) {
	R := len(n.reactions)
	S := n.species.len()

	runtime := make([]runtimeReaction, R)
	touchedCounts := make([]int, R)
	relevant := make([][]int, R)

	var reactantMatrix, deltaMatrix *sparse.SparseArray
	if S > 0 && R > 0 {
		reactantMatrix = sparse.ZerosSparse(R, S)
		deltaMatrix = sparse.ZerosSparse(R, S)
	}

	for ri := range n.reactions {
		rxn := &n.reactions[ri]

		reactantCount := make(map[int]int64)
		for _, s := range rxn.reactants {
			reactantCount[s]++
		}
		productCount := make(map[int]int64)
		for _, s := range rxn.products {
			productCount[s]++
		}

		touched := make(map[int]bool)
		for s, c := range reactantCount {
			reactantMatrix.Set(float64(c), ri, s)
			touched[s] = true
		}
		for s := range productCount {
			touched[s] = true
		}
		for s := range touched {
			d := productCount[s] - reactantCount[s]
			if d != 0 {
				deltaMatrix.Set(float64(d), ri, s)
			}
		}

		rel := make(map[int]bool, len(reactantCount))
		for s := range reactantCount {
			rel[s] = true
		}

		if rxn.rate.Kind == RateExpr {
			compiled, freeSpecies, err := n.compileRate(rxn.rate.Expr, params)
			if err != nil {
				return nil, nil, false, err
			}
			runtime[ri].compiled = compiled
			for s := range freeSpecies {
				rel[s] = true
				touched[s] = true
			}
		}

		touchedCounts[ri] = len(touched)
		relevant[ri] = setToSlice(rel)
	}

	if reactantMatrix != nil {
		for _, idx1d := range reactantMatrix.Nonzero() {
			coord := reactantMatrix.IndexNd(idx1d)
			ri, s := coord[0], coord[1]
			runtime[ri].reactantCounts = append(runtime[ri].reactantCounts,
				speciesCount{species: s, count: int64(reactantMatrix.Get1d(idx1d))})
		}
		for _, idx1d := range deltaMatrix.Nonzero() {
			coord := deltaMatrix.IndexNd(idx1d)
			ri, s := coord[0], coord[1]
			runtime[ri].sparseDelta = append(runtime[ri].sparseDelta,
				speciesDelta{species: s, delta: int64(deltaMatrix.Get1d(idx1d))})
		}
	}
	for ri := range runtime {
		dense := make([]int64, S)
		for _, sd := range runtime[ri].sparseDelta {
			dense[sd.species] = sd.delta
		}
		runtime[ri].delta = dense
		sort.Slice(runtime[ri].reactantCounts, func(i, j int) bool {
			return runtime[ri].reactantCounts[i].species < runtime[ri].reactantCounts[j].species
		})
		sort.Slice(runtime[ri].sparseDelta, func(i, j int) bool {
			return runtime[ri].sparseDelta[i].species < runtime[ri].sparseDelta[j].species
		})
	}

	sparseChosen := decideSparse(S, R, touchedCounts, sparseOverride)

	var listeners [][]int
	if sparseChosen {
		listeners = make([][]int, S)
		for ri, rel := range relevant {
			for _, s := range rel {
				listeners[s] = append(listeners[s], ri)
			}
		}
	}

	return runtime, listeners, sparseChosen, nil
}

// decideSparse implements spec.md §4.2's layout heuristic: sparse wins
// when there are at least 8 species and the mean number of species
// touched per reaction is under a quarter of the species count. An
// explicit override always wins.
func decideSparse(S, R int, touchedCounts []int, override *bool) bool {
	if override != nil {
		return *override
	}
	if S < 8 || R == 0 {
		return false
	}
	total := 0
	for _, c := range touchedCounts {
		total += c
	}
	mean := float64(total) / float64(R)
	return mean/float64(S) < 0.25
}

func setToSlice(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Sparse reports which propensity layout this Frozen uses.
func (f *Frozen) Sparse() bool { return f.sparse }

// NumSpecies returns the species count of the underlying Network.
func (f *Frozen) NumSpecies() int { return f.net.species.len() }

// NumReactions returns the reaction count of the underlying Network.
func (f *Frozen) NumReactions() int { return len(f.runtime) }

// OutputNames returns species names in the order Options.VarNames
// requested (or declaration order, if none was given).
func (f *Frozen) OutputNames() []string {
	names := make([]string, len(f.varIndices))
	for i, idx := range f.varIndices {
		names[i] = f.net.species.nameAt(idx)
	}
	return names
}

// VarIndices returns the species indices selected for recording, in
// output order.
func (f *Frozen) VarIndices() []int {
	out := make([]int, len(f.varIndices))
	copy(out, f.varIndices)
	return out
}
