package rate

import "fmt"

// NotUnderstoodError is the single error kind spec.md §4.1 allows a
// malformed rate expression to raise: unrecognized character,
// unmatched parenthesis, missing operand, or trailing garbage all
// collapse to this one kind, carrying the original text for the
// caller to report.
type NotUnderstoodError struct {
	Text   string
	Reason string
}

func (e *NotUnderstoodError) Error() string {
	return fmt.Sprintf("rate expression not understood: %q: %s", e.Text, e.Reason)
}

// MissingParameterError is returned by Eval when a Var node resolves
// to neither a species nor a supplied parameter.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter: %q", e.Name)
}
