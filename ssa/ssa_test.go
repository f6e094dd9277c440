package ssa

import (
	"testing"

	"github.com/deep6ix/gillespie/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSIR(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction(1e-4, []string{"S", "I"}, []string{"I", "I"}, nil))
	require.NoError(t, n.AddReaction(0.01, []string{"I"}, []string{"R"}, nil))
	n.SetInit(map[string]int64{"S": 999, "I": 1})

	series, err := Run(Config{
		Network: n,
		Tmax:    250,
		NBSteps: 250,
		Seed:    12345,
	})
	require.NoError(t, err)

	s, i, r := series.Columns["S"], series.Columns["I"], series.Columns["R"]
	require.Len(t, series.Times, 251)

	prevS := int64(999)
	prevR := int64(0)
	for k := range series.Times {
		total := s[k] + i[k] + r[k]
		assert.EqualValues(t, 1000, total, "conservation at grid point %d", k)
		assert.LessOrEqual(t, s[k], prevS, "S must be non-increasing at %d", k)
		assert.GreaterOrEqual(t, r[k], prevR, "R must be non-decreasing at %d", k)
		assert.LessOrEqual(t, s[k], int64(999))
		assert.LessOrEqual(t, i[k], int64(1000))
		assert.LessOrEqual(t, r[k], int64(1000))
		prevS, prevR = s[k], r[k]
	}
}

func TestMichaelisMenten(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction("V * A / (Km + A)", []string{"A"}, []string{"P"}, nil))
	n.SetInit(map[string]int64{"A": 100})

	series, err := Run(Config{
		Network: n,
		Tmax:    250,
		NBSteps: 100,
		Params:  map[string]float64{"V": 1, "Km": 20},
		Seed:    7,
	})
	require.NoError(t, err)

	a, p := series.Columns["A"], series.Columns["P"]
	prevA := int64(100)
	for k := range series.Times {
		assert.EqualValues(t, 100, a[k]+p[k])
		assert.LessOrEqual(t, a[k], prevA)
		prevA = a[k]
	}
}

func buildCrossed(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddReaction("B", nil, []string{"A"}, nil))
	require.NoError(t, n.AddReaction("A", nil, []string{"B"}, nil))
	return n
}

func TestCrossedExpressionRatesZeroFromEmptyInit(t *testing.T) {
	n := buildCrossed(t)
	series, err := Run(Config{Network: n, Tmax: 10, NBSteps: 10, Seed: 1})
	require.NoError(t, err)

	for _, v := range series.Columns["A"] {
		assert.EqualValues(t, 0, v)
	}
	for _, v := range series.Columns["B"] {
		assert.EqualValues(t, 0, v)
	}
}

func TestCrossedExpressionRatesGrowFromSeededInit(t *testing.T) {
	n := buildCrossed(t)
	n.SetInit(map[string]int64{"A": 1})
	series, err := Run(Config{Network: n, Tmax: 10, NBSteps: 10, Seed: 1})
	require.NoError(t, err)

	last := len(series.Times) - 1
	assert.Greater(t, series.Columns["A"][last], int64(1))
	assert.Greater(t, series.Columns["B"][last], int64(0))
}

func TestEmptyNetwork(t *testing.T) {
	n := network.New()
	series, err := Run(Config{Network: n, Tmax: 10, NBSteps: 10, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, series.Times)
	assert.Empty(t, series.Names())
}

func TestParameterValidationMissingParameter(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction("k", nil, []string{"A"}, nil))

	_, err := Run(Config{Network: n, Tmax: 10, NBSteps: 10, Seed: 1})
	require.Error(t, err)
}

func TestParameterValidationRunsWithSuppliedParameter(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction("k", nil, []string{"A"}, nil))

	series, err := Run(Config{
		Network: n,
		Tmax:    10,
		NBSteps: 10,
		Params:  map[string]float64{"k": 0.4},
		Seed:    1,
	})
	require.NoError(t, err)
	last := len(series.Times) - 1
	assert.Greater(t, series.Columns["A"][last], int64(0))
}

func TestSpeciesAsParameterCollision(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction(4.0, []string{"A"}, []string{"B"}, nil))

	_, err := Run(Config{
		Network: n,
		Tmax:    10,
		NBSteps: 10,
		Params:  map[string]float64{"B": 4.2},
		Seed:    1,
	})
	var collide *network.ParameterNameCollidesWithSpeciesError
	require.ErrorAs(t, err, &collide)
	assert.Equal(t, "B", collide.Name)
}

func TestDeterminismSameSeedSameOutput(t *testing.T) {
	build := func() *network.Network {
		n := network.New()
		require.NoError(t, n.AddReaction(1e-4, []string{"S", "I"}, []string{"I", "I"}, nil))
		require.NoError(t, n.AddReaction(0.01, []string{"I"}, []string{"R"}, nil))
		n.SetInit(map[string]int64{"S": 999, "I": 1})
		return n
	}

	cfg := func(n *network.Network) Config {
		return Config{Network: n, Tmax: 250, NBSteps: 250, Seed: 999}
	}

	s1, err := Run(cfg(build()))
	require.NoError(t, err)
	s2, err := Run(cfg(build()))
	require.NoError(t, err)

	assert.Equal(t, s1.Times, s2.Times)
	assert.Equal(t, s1.Columns, s2.Columns)
}

func TestSparseAndDenseAgreeForSameSeed(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction(1e-4, []string{"S", "I"}, []string{"I", "I"}, nil))
	require.NoError(t, n.AddReaction(0.01, []string{"I"}, []string{"R"}, nil))
	n.SetInit(map[string]int64{"S": 999, "I": 1})

	falseVal, trueVal := false, true
	dense, err := Run(Config{Network: n, Tmax: 250, NBSteps: 250, Seed: 42, Sparse: &falseVal})
	require.NoError(t, err)
	sparse, err := Run(Config{Network: n, Tmax: 250, NBSteps: 250, Seed: 42, Sparse: &trueVal})
	require.NoError(t, err)

	assert.Equal(t, dense.Times, sparse.Times)
	assert.Equal(t, dense.Columns, sparse.Columns)
}

func TestEventModeStartsAtZeroAndStrictlyIncreasesExceptSentinel(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddReaction(0.05, []string{"A"}, []string{"B"}, nil))
	n.SetInit(map[string]int64{"A": 20})

	series, err := Run(Config{Network: n, Tmax: 1000, NBSteps: 0, Seed: 3})
	require.NoError(t, err)

	require.NotEmpty(t, series.Times)
	assert.Equal(t, 0.0, series.Times[0])
	for i := 1; i < len(series.Times)-1; i++ {
		assert.Greater(t, series.Times[i], series.Times[i-1])
	}
}
