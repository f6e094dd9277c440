// Package sampler accumulates a simulation trajectory, in either of
// the two modes spec.md §4.5 describes: a uniform time grid, or one
// row per reaction event. The driver in package ssa feeds it; it does
// no propensity or RNG work of its own.
package sampler

// Series is the trajectory a Sampler produces: Times has the same
// length as every slice in Columns. Columns is keyed by species name;
// Names gives the output order the run requested (spec.md §4.5
// "variable subset").
type Series struct {
	Times   []float64
	Columns map[string][]int64
	names   []string
}

// Names returns the recorded species names in output column order.
func (s *Series) Names() []string { return s.names }

// Recorder is implemented by GridRecorder and EventRecorder. The ssa
// driver drives either one through the same three calls per step, so
// it never branches on which mode is active.
type Recorder interface {
	// Advance is called once per step with the state that held during
	// [tPrev, tNew) — i.e. before the reaction selected for tNew is
	// applied. GridRecorder uses it to fill every grid point in that
	// half-open interval; EventRecorder ignores it.
	Advance(tPrev, tNew float64, xDuring []int64)
	// Event is called once per step, after the reaction has been
	// applied, with the resulting state at tNew. EventRecorder appends
	// a row; GridRecorder ignores it.
	Event(tNew float64, xAfter []int64)
	// Finish closes out the trajectory: GridRecorder fills any grid
	// points at or beyond the last Advance with xFinal, EventRecorder
	// appends a terminal +Inf row with xFinal when exhausted is true.
	Finish(xFinal []int64, exhausted bool) *Series
}
