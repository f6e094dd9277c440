package rate

// Resolver maps a name to a value and reports whether it was found.
// Package network does not go through Eval: it binds names to species
// indices or parameter literals once per Freeze (network/compile.go).
type Resolver func(name string) (float64, bool)

// Eval evaluates the expression against resolver. Division by zero
// follows IEEE-754 (±Inf or NaN) and is not an error here — spec.md
// §4.1 leaves non-finite results to the propensity engine's sanity
// guard. The only error this returns is MissingParameterError.
func Eval(e *Expr, resolve Resolver) (float64, error) {
	switch e.Kind {
	case KindLit:
		return e.Lit, nil
	case KindVar:
		v, ok := resolve(e.Name)
		if !ok {
			return 0, &MissingParameterError{Name: e.Name}
		}
		return v, nil
	case KindNeg:
		v, err := Eval(e.L, resolve)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case KindAdd, KindSub, KindMul, KindDiv:
		l, err := Eval(e.L, resolve)
		if err != nil {
			return 0, err
		}
		r, err := Eval(e.R, resolve)
		if err != nil {
			return 0, err
		}
		switch e.Kind {
		case KindAdd:
			return l + r, nil
		case KindSub:
			return l - r, nil
		case KindMul:
			return l * r, nil
		default:
			return l / r, nil
		}
	default:
		panic("rate: unknown AST node kind")
	}
}
