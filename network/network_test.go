package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReactionAndString(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.5, []string{"A", "B"}, []string{"C"}, nil))
	assert.Equal(t, "A + B → C [1.5]", n.String())
	assert.Equal(t, 3, n.NumSpecies())
	assert.Equal(t, 1, n.NumReactions())
}

func TestAddReactionReverse(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(2.0, []string{"A"}, []string{"B"}, 0.5))
	assert.Equal(t, 2, n.NumReactions())
	assert.Equal(t, "A → B [2]\nB → A [0.5]", n.String())
}

func TestAddReactionSynthesisFromNothing(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(3.0, nil, []string{"A"}, nil))
	assert.Equal(t, "∅ → A [3]", n.String())
}

func TestAddReactionBadRateString(t *testing.T) {
	n := New()
	err := n.AddReaction("1 +", []string{"A"}, []string{"B"}, nil)
	require.Error(t, err)
	var nu interface{ Error() string }
	require.ErrorAs(t, err, &nu)
}

func TestSetInitWarnsForSpeciesNotInAnyReaction(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A"}, []string{"B"}, nil))

	var warnings []Warning
	n.SetWarnFunc(func(w Warning) { warnings = append(warnings, w) })
	n.SetInit(map[string]int64{"A": 10, "Spectator": 5})

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnSpeciesNotInvolvedInAnyReaction, warnings[0].Kind)
}

func TestFreezeParameterCollidesWithSpecies(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction("k", []string{"A"}, []string{"B"}, nil))
	_, _, err := n.Freeze(Options{Params: map[string]float64{"A": 1}})
	var collide *ParameterNameCollidesWithSpeciesError
	require.ErrorAs(t, err, &collide)
	assert.Equal(t, "A", collide.Name)
}

func TestFreezeInitSpeciesNegative(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A"}, []string{"B"}, nil))
	n.SetInit(map[string]int64{"A": -1})
	_, _, err := n.Freeze(Options{})
	var neg *InitSpeciesNegativeError
	require.ErrorAs(t, err, &neg)
	assert.Equal(t, "A", neg.Name)
	assert.EqualValues(t, -1, neg.Value)
}

func TestFreezeUnknownVarName(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A"}, []string{"B"}, nil))
	_, _, err := n.Freeze(Options{VarNames: []string{"Z"}})
	var unk *UnknownVarNameError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "Z", unk.Name)
}

func TestFreezeMissingParameter(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction("k * A", []string{"A"}, []string{"B"}, nil))
	_, _, err := n.Freeze(Options{})
	require.Error(t, err)
}

func TestFreezeDefaultsToDeclarationOrder(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A"}, []string{"B"}, nil))
	f, state, err := n.Freeze(Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, f.OutputNames())
	assert.Equal(t, []int64{0, 0}, state)
}

func TestMassActionDimerizationPropensity(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(0.1, []string{"A", "A"}, []string{"B"}, nil))
	n.SetInit(map[string]int64{"A": 5})
	f, state, err := n.Freeze(Options{})
	require.NoError(t, err)

	a, total := f.InitialPropensities(state)
	require.Len(t, a, 1)
	// falling factorial: 0.1 * 5 * 4 = 2
	assert.InDelta(t, 2.0, a[0], 1e-12)
	assert.InDelta(t, 2.0, total, 1e-12)
}

func TestMassActionPropensityZeroBelowThreshold(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A", "A"}, []string{"B"}, nil))
	n.SetInit(map[string]int64{"A": 1})
	f, state, err := n.Freeze(Options{})
	require.NoError(t, err)

	a, total := f.InitialPropensities(state)
	assert.Equal(t, 0.0, a[0])
	assert.Equal(t, 0.0, total)
}

func TestExpressionRatePropensity(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction("V * S / (Km + S)", []string{"S"}, []string{"P"}, nil))
	n.SetInit(map[string]int64{"S": 100})
	f, state, err := n.Freeze(Options{Params: map[string]float64{"V": 1, "Km": 20}})
	require.NoError(t, err)

	a, total := f.InitialPropensities(state)
	assert.InDelta(t, 100.0/120.0, a[0], 1e-9)
	assert.InDelta(t, 100.0/120.0, total, 1e-9)
}

func TestFireDenseUpdatesStateAndPropensities(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction(1.0, []string{"A"}, []string{"B"}, nil))
	n.SetInit(map[string]int64{"A": 3})
	f, state, err := n.Freeze(Options{})
	require.NoError(t, err)
	require.False(t, f.Sparse())

	a, total := f.InitialPropensities(state)
	total = f.Fire(state, 0, a, total)

	assert.EqualValues(t, []int64{2, 1}, state)
	assert.InDelta(t, 2.0, a[0], 1e-12)
	assert.InDelta(t, 2.0, total, 1e-12)
}

// birthDeathChain builds a network with nSpecies species chained
// A0 -> A1 -> A2 -> ... so it is large enough to trigger the sparse
// heuristic (S >= 8, low connectivity), used to check dense and
// sparse layouts agree on every Fire.
func birthDeathChain(t *testing.T, n int) (*Network, []string) {
	t.Helper()
	net := New()
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = "A" + string(rune('0'+i))
	}
	for i := 0; i < n-1; i++ {
		require.NoError(t, net.AddReaction(1.0, []string{names[i]}, []string{names[i+1]}, nil))
	}
	return net, names
}

func TestSparseHeuristicChoosesSparseForLargeLowConnectivityNetwork(t *testing.T) {
	net, names := birthDeathChain(t, 10)
	net.SetInit(map[string]int64{names[0]: 50})
	f, _, err := net.Freeze(Options{})
	require.NoError(t, err)
	assert.True(t, f.Sparse())
}

func TestFireSparseMatchesDense(t *testing.T) {
	net, names := birthDeathChain(t, 10)
	net.SetInit(map[string]int64{names[0]: 50})

	falseVal, trueVal := false, true
	dense, denseState, err := net.Freeze(Options{Sparse: &falseVal})
	require.NoError(t, err)
	sparse, sparseState, err := net.Freeze(Options{Sparse: &trueVal})
	require.NoError(t, err)
	require.False(t, dense.Sparse())
	require.True(t, sparse.Sparse())

	da, dtotal := dense.InitialPropensities(denseState)
	sa, stotal := sparse.InitialPropensities(sparseState)
	assert.InDeltaSlice(t, da, sa, 1e-12)
	assert.InDelta(t, dtotal, stotal, 1e-12)

	for _, ri := range []int{0, 1, 2} {
		dtotal = dense.Fire(denseState, ri, da, dtotal)
		stotal = sparse.Fire(sparseState, ri, sa, stotal)
		assert.Equal(t, denseState, sparseState)
		assert.InDeltaSlice(t, da, sa, 1e-9)
		assert.InDelta(t, dtotal, stotal, 1e-9)
	}
}

func TestNonFinitePropensityClampedAndWarnedOnce(t *testing.T) {
	n := New()
	require.NoError(t, n.AddReaction("A - B", []string{"A"}, []string{"C"}, nil))
	n.SetInit(map[string]int64{"A": 1, "B": 5})

	var warnings []Warning
	n.SetWarnFunc(func(w Warning) { warnings = append(warnings, w) })

	f, state, err := n.Freeze(Options{})
	require.NoError(t, err)

	a, total := f.InitialPropensities(state)
	assert.Equal(t, 0.0, a[0])
	assert.Equal(t, 0.0, total)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNonFinitePropensity, warnings[0].Kind)

	// Recomputing the same reaction's propensity again must not warn a
	// second time.
	f.InitialPropensities(state)
	assert.Len(t, warnings, 1)
}
