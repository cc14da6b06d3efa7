package aleph

import "math"

// builtin is the implementation of a named operation. Arguments arrive
// already evaluated. A builtin returns a symbolic residue, not an error,
// when its arguments are merely unresolved.
type builtin func(args []Expr, ctx *Context) (Expr, error)

// builtins is the dispatch table for built-in operations, keyed by head.
// If, And, Or, and List are special forms handled by the evaluator before
// argument evaluation, so they do not appear here.
var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"Plus":     evalPlus,
		"Times":    evalTimes,
		"Subtract": evalSubtract,
		"Divide":   evalDivide,
		"Power":    evalPower,

		"Floor":   numeric1("Floor", math.Floor),
		"Ceiling": numeric1("Ceiling", math.Ceil),
		// Round halves away from zero: Round[3.5] is 4, Round[-3.5] is -4.
		"Round": numeric1("Round", math.Round),
		"Sqrt":  numeric1("Sqrt", math.Sqrt),
		"Exp":   numeric1("Exp", math.Exp),
		"Sin":   numeric1("Sin", math.Sin),
		"Cos":   numeric1("Cos", math.Cos),

		"Max": extremum("Max", math.Max),
		"Min": extremum("Min", math.Min),

		"Length": evalLength,

		"Not":          evalNot,
		"Equal":        evalEqual,
		"Unequal":      evalUnequal,
		"Less":         relational("Less", func(c int) bool { return c < 0 }),
		"LessEqual":    relational("LessEqual", func(c int) bool { return c <= 0 }),
		"Greater":      relational("Greater", func(c int) bool { return c > 0 }),
		"GreaterEqual": relational("GreaterEqual", func(c int) bool { return c >= 0 }),

		"StringJoin":    evalStringJoin,
		"StringLength":  evalStringLength,
		"StringReplace": evalStringReplace,
		"StringTake":    evalStringTake,
	}
}

// numeric1 adapts a float function to a builtin of one argument that
// stays symbolic on non-numeric input.
func numeric1(name string, f func(float64) float64) builtin {
	return func(args []Expr, ctx *Context) (Expr, error) {
		if len(args) != 1 {
			return nil, &ArityError{Func: name, Got: len(args), Want: "1"}
		}
		if v, ok := numVal(args[0]); ok {
			return Number(f(v)), nil
		}
		return NewCall(name, args...), nil
	}
}

// extremum adapts a binary float reduction to an n-ary builtin that
// computes only when every argument is numeric.
func extremum(name string, pick func(a, b float64) float64) builtin {
	return func(args []Expr, ctx *Context) (Expr, error) {
		if len(args) == 0 {
			return nil, &ArityError{Func: name, Got: 0, Want: "at least 1"}
		}
		best, ok := numVal(args[0])
		if ok {
			for _, a := range args[1:] {
				v, vok := numVal(a)
				if !vok {
					ok = false
					break
				}
				best = pick(best, v)
			}
		}
		if !ok {
			return NewCall(name, args...), nil
		}
		return Number(best), nil
	}
}

func evalLength(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 1 {
		return nil, &ArityError{Func: "Length", Got: len(args), Want: "1"}
	}
	if elems, ok := listElems(args[0]); ok {
		return Number(len(elems)), nil
	}
	if s, ok := args[0].(String); ok {
		return evalStringLength([]Expr{s}, ctx)
	}
	return NewCall("Length", args...), nil
}
