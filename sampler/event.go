package sampler

import "math"

// EventRecorder records one row per reaction event (spec.md §4.5
// "event mode"), using growable buffers since the final length isn't
// known up front.
type EventRecorder struct {
	names []string
	times []float64
	cols  [][]int64
}

// NewEventRecorder returns an EventRecorder for the given output
// column names.
func NewEventRecorder(names []string) *EventRecorder {
	return &EventRecorder{
		names: names,
		cols:  make([][]int64, len(names)),
	}
}

func (e *EventRecorder) Advance(tPrev, tNew float64, xDuring []int64) {}

func (e *EventRecorder) Event(tNew float64, xAfter []int64) {
	e.times = append(e.times, tNew)
	for i := range e.cols {
		e.cols[i] = append(e.cols[i], xAfter[i])
	}
}

// Finish appends the terminal +Inf row when the run ended because
// total propensity reached zero (spec.md §4.5), so downstream
// consumers can detect exhaustion; it is omitted when the run ended
// because a reaction's firing time would exceed tmax.
func (e *EventRecorder) Finish(xFinal []int64, exhausted bool) *Series {
	if exhausted {
		e.times = append(e.times, math.Inf(1))
		for i := range e.cols {
			e.cols[i] = append(e.cols[i], xFinal[i])
		}
	}
	columns := make(map[string][]int64, len(e.names))
	for i, name := range e.names {
		columns[name] = e.cols[i]
	}
	return &Series{Times: e.times, Columns: columns, names: e.names}
}
