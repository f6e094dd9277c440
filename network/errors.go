package network

import "fmt"

// ParameterNameCollidesWithSpeciesError is returned by Run when a
// params key also names a declared species (spec.md §3, §6).
type ParameterNameCollidesWithSpeciesError struct {
	Name string
}

func (e *ParameterNameCollidesWithSpeciesError) Error() string {
	return fmt.Sprintf("parameter name collides with species: %q", e.Name)
}

// InitSpeciesNegativeError is returned by Freeze (and so by ssa.Run)
// when an initial copy number is negative; SetInit accepts the value.
type InitSpeciesNegativeError struct {
	Name  string
	Value int64
}

func (e *InitSpeciesNegativeError) Error() string {
	return fmt.Sprintf("initial count for %q is negative: %d", e.Name, e.Value)
}

// UnknownVarNameError is returned by Run when var_names references a
// name that is not a declared species.
type UnknownVarNameError struct {
	Name string
}

func (e *UnknownVarNameError) Error() string {
	return fmt.Sprintf("unknown variable name: %q", e.Name)
}

// InvalidRunParameterError covers the remaining §7.2 validation
// failures that are not specific to a single name: nb_steps < 0 and
// tmax <= 0.
type InvalidRunParameterError struct {
	Reason string
}

func (e *InvalidRunParameterError) Error() string {
	return fmt.Sprintf("invalid run parameter: %s", e.Reason)
}

// Warning is a non-fatal condition signaled through Network's WarnFunc
// (spec.md §7.3).
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }

// WarningKind enumerates the non-fatal conditions this package can
// signal.
type WarningKind int

const (
	// WarnSpeciesNotInvolvedInAnyReaction fires from SetInit when a
	// named species appears in init but in no reaction.
	WarnSpeciesNotInvolvedInAnyReaction WarningKind = iota
	// WarnNonFinitePropensity fires once per reaction, the first time
	// its propensity evaluates to NaN, a negative value or +Inf
	// (spec.md §7.4). The propensity engine in this package raises it
	// through the same WarnFunc.
	WarnNonFinitePropensity
)
