// Package ssa is the SSA direct-method main loop of spec.md §4.4: it
// draws the next reaction time and index, fires the reaction through
// the frozen network, and feeds a sampler.Recorder. It owns the RNG
// for the run and touches no state shared with other runs.
package ssa

import (
	"math"

	"github.com/deep6ix/gillespie/network"
	"github.com/deep6ix/gillespie/rng"
	"github.com/deep6ix/gillespie/sampler"
)

// Config is one run request (spec.md §4.4's run(tmax, nb_steps,
// params, seed, sparse?, var_names?)).
type Config struct {
	Network  *network.Network
	Tmax     float64
	NBSteps  int
	Params   map[string]float64
	Seed     uint64
	Sparse   *bool
	VarNames []string
	// MaxIters optionally caps the number of steps as a safety valve
	// (spec.md §4.4's IterCapped state); zero means unlimited.
	MaxIters int
	// OnSample, if set, is called with the initial state at t=0 and
	// again after every reaction fires, in both grid and event mode;
	// grid points and the terminal +Inf row that Finish writes are not
	// passed to it. The streaming server (SPEC_FULL §4.11) uses
	// this to forward live frames over a WebSocket while Run still
	// assembles and returns the complete trajectory.
	OnSample func(t float64, names []string, x []int64)
}

// Run executes one simulation to completion and returns its
// trajectory. Two runs with identical Config values (including the
// Network's declaration order) produce bitwise-identical output
// (spec.md §6 determinism contract).
func Run(cfg Config) (*sampler.Series, error) {
	if cfg.Tmax <= 0 {
		return nil, &network.InvalidRunParameterError{Reason: "tmax must be > 0"}
	}
	if cfg.NBSteps < 0 {
		return nil, &network.InvalidRunParameterError{Reason: "nb_steps must be >= 0"}
	}

	frozen, state, err := cfg.Network.Freeze(network.Options{
		Params:   cfg.Params,
		VarNames: cfg.VarNames,
		Sparse:   cfg.Sparse,
	})
	if err != nil {
		return nil, err
	}

	names := frozen.OutputNames()
	varIdx := frozen.VarIndices()

	var rec sampler.Recorder
	if cfg.NBSteps == 0 {
		rec = sampler.NewEventRecorder(names)
	} else {
		rec = sampler.NewGridRecorder(names, cfg.Tmax, cfg.NBSteps)
	}

	source := rng.New(cfg.Seed)
	a, total := frozen.InitialPropensities(state)
	t := 0.0
	// Event mode's times[0] == 0 (spec.md §8); GridRecorder ignores Event.
	x0 := extract(state, varIdx)
	rec.Event(t, x0)
	if cfg.OnSample != nil {
		cfg.OnSample(t, names, x0)
	}

	for iter := 0; ; iter++ {
		if cfg.MaxIters > 0 && iter >= cfg.MaxIters {
			return rec.Finish(extract(state, varIdx), false), nil
		}

		if total <= 0 {
			return rec.Finish(extract(state, varIdx), true), nil
		}

		u1, u2 := source.Uniforms()
		tau := -math.Log(u1) / total
		tNew := t + tau

		if tNew > cfg.Tmax {
			return rec.Finish(extract(state, varIdx), false), nil
		}

		k := selectReaction(a, total, u2)

		rec.Advance(t, tNew, extract(state, varIdx))
		total = frozen.Fire(state, k, a, total)
		x := extract(state, varIdx)
		rec.Event(tNew, x)
		if cfg.OnSample != nil {
			cfg.OnSample(tNew, names, x)
		}
		t = tNew
	}
}

// selectReaction picks the smallest k with cumsum(a[:k+1]) >= u2*total,
// spec.md §4.4 step 5. Floating point rounding can leave the running
// sum just short of the threshold on the last reaction; falling
// through to the last reaction with positive propensity keeps
// selection total (never returns an index whose propensity is zero
// when a positive one exists).
func selectReaction(a []float64, total float64, u2 float64) int {
	threshold := u2 * total
	cum := 0.0
	last := 0
	for i, ai := range a {
		if ai > 0 {
			last = i
		}
		cum += ai
		if cum >= threshold {
			return i
		}
	}
	return last
}

func extract(state []int64, varIdx []int) []int64 {
	out := make([]int64, len(varIdx))
	for i, idx := range varIdx {
		out[i] = state[idx]
	}
	return out
}
