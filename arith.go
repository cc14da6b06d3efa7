package aleph

import (
	"math"
	"sort"
)

// numVal returns the value of a numeric expression as a float.
func numVal(e Expr) (float64, bool) {
	switch e := e.(type) {
	case Number:
		return float64(e), true
	case Rational:
		return float64(e.Num) / float64(e.Den), true
	}
	return 0, false
}

// exactVal returns the value of an integral Number or a Rational as an
// exact fraction.
func exactVal(e Expr) (num, den int64, ok bool) {
	switch e := e.(type) {
	case Number:
		f := float64(e)
		if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return int64(f), 1, true
		}
	case Rational:
		return e.Num, e.Den, true
	}
	return 0, 0, false
}

func addRat(an, ad, bn, bd int64) (int64, int64) {
	n, d := an*bd+bn*ad, ad*bd
	g := gcd(n, d)
	return n / g, d / g
}

func mulRat(an, ad, bn, bd int64) (int64, int64) {
	n, d := an*bn, ad*bd
	g := gcd(n, d)
	return n / g, d / g
}

// flattenHead splices arguments which are themselves calls to head, so
// that Plus(Plus(a, b), c) sums a single operand list.
func flattenHead(head string, args []Expr) []Expr {
	flat := false
	for _, a := range args {
		if c, ok := a.(*Call); ok && c.Head == head {
			flat = true
			break
		}
	}
	if !flat {
		return args
	}
	r := make([]Expr, 0, len(args)+2)
	for _, a := range args {
		if c, ok := a.(*Call); ok && c.Head == head {
			r = append(r, flattenHead(head, c.Args)...)
			continue
		}
		r = append(r, a)
	}
	return r
}

// broadcast lifts an arithmetic operation elementwise through list
// arguments. The result is nil with ok false when no argument is a list.
// Scalar arguments repeat across every element; list arguments must all
// have the same size.
func broadcast(head string, args []Expr, ctx *Context) (Expr, bool, error) {
	size := -1
	for _, a := range args {
		elems, ok := listElems(a)
		if !ok {
			continue
		}
		if size >= 0 && size != len(elems) {
			return nil, true, &DomainError{Func: head, Reason: "List sizes must match for elementwise operation"}
		}
		size = len(elems)
	}
	if size < 0 {
		return nil, false, nil
	}
	out := make([]Expr, size)
	sub := make([]Expr, len(args))
	for i := range out {
		for j, a := range args {
			if elems, ok := listElems(a); ok {
				sub[j] = elems[i]
			} else {
				sub[j] = a
			}
		}
		r, err := builtins[head](sub, ctx)
		if err != nil {
			return nil, true, err
		}
		out[i] = r
	}
	return &List{Elems: out}, true, nil
}

// sortOperands puts the operands of Plus and Times into the canonical
// order. The sort is stable so that unlike but equally ranked operands
// keep their written order.
func sortOperands(args []Expr) {
	sort.SliceStable(args, func(i, j int) bool { return canonLess(args[i], args[j]) })
}

// numericFold accumulates numeric operands exactly while every one is an
// integral Number or a Rational, demoting to floats on the first
// non-integral Number.
type numericFold struct {
	xn, xd int64
	f      float64
	exact  bool
	seen   bool
}

func (acc *numericFold) add(e Expr, unit func(acc *numericFold, n, d int64, f float64)) bool {
	n, d, eok := exactVal(e)
	f, fok := numVal(e)
	if !fok {
		return false
	}
	if acc.exact && !eok {
		acc.f = float64(acc.xn) / float64(acc.xd)
		acc.exact = false
	}
	unit(acc, n, d, f)
	acc.seen = true
	return true
}

func foldAdd(acc *numericFold, n, d int64, f float64) {
	if acc.exact {
		acc.xn, acc.xd = addRat(acc.xn, acc.xd, n, d)
		return
	}
	acc.f += f
}

func foldMul(acc *numericFold, n, d int64, f float64) {
	if acc.exact {
		acc.xn, acc.xd = mulRat(acc.xn, acc.xd, n, d)
		return
	}
	acc.f *= f
}

func (acc *numericFold) value() Expr {
	if acc.exact {
		return Rat(acc.xn, acc.xd)
	}
	return Number(acc.f)
}

func (acc *numericFold) is(v int64) bool {
	if acc.exact {
		return acc.xd == 1 && acc.xn == v
	}
	return acc.f == float64(v)
}

func evalPlus(args []Expr, ctx *Context) (Expr, error) {
	args = flattenHead("Plus", args)
	if r, ok, err := broadcast("Plus", args, ctx); ok {
		return r, err
	}
	acc := numericFold{xd: 1, exact: true}
	var rest []Expr
	for _, a := range args {
		if !acc.add(a, foldAdd) {
			rest = append(rest, a)
		}
	}
	sortOperands(rest)
	switch {
	case len(rest) == 0:
		return acc.value(), nil
	case !acc.seen || acc.is(0):
		// Zero contributes nothing to a sum.
		if len(rest) == 1 {
			return rest[0], nil
		}
		return NewCall("Plus", rest...), nil
	default:
		return NewCall("Plus", append([]Expr{acc.value()}, rest...)...), nil
	}
}

func evalTimes(args []Expr, ctx *Context) (Expr, error) {
	args = flattenHead("Times", args)
	if r, ok, err := broadcast("Times", args, ctx); ok {
		return r, err
	}
	acc := numericFold{xn: 1, xd: 1, exact: true}
	var rest []Expr
	for _, a := range args {
		if !acc.add(a, foldMul) {
			rest = append(rest, a)
		}
	}
	if acc.seen && acc.is(0) {
		// A zero factor annihilates the product, symbolic factors
		// included.
		return Number(0), nil
	}
	sortOperands(rest)
	switch {
	case len(rest) == 0:
		return acc.value(), nil
	case !acc.seen || acc.is(1):
		if len(rest) == 1 {
			return rest[0], nil
		}
		return NewCall("Times", rest...), nil
	default:
		// A leading -1 stays: it is how negation is spelled.
		return NewCall("Times", append([]Expr{acc.value()}, rest...)...), nil
	}
}

func evalSubtract(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "Subtract", Got: len(args), Want: "2"}
	}
	neg, err := evalTimes([]Expr{Number(-1), args[1]}, ctx)
	if err != nil {
		return nil, err
	}
	return evalPlus([]Expr{args[0], neg}, ctx)
}

func evalDivide(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "Divide", Got: len(args), Want: "2"}
	}
	if r, ok, err := broadcast("Divide", args, ctx); ok {
		return r, err
	}
	a, b := args[0], args[1]
	if f, ok := numVal(b); ok && f == 1 {
		return a, nil
	}
	an, ad, aok := exactVal(a)
	bn, bd, bok := exactVal(b)
	if aok && bok {
		switch {
		case an == 0 && bn == 0:
			return Indeterminate{}, nil
		case bn == 0:
			return Infinity{}, nil
		}
		return Rat(an*bd, ad*bn), nil
	}
	af, afok := numVal(a)
	bf, bfok := numVal(b)
	if bfok && bf == 0 {
		if afok && af == 0 {
			return Indeterminate{}, nil
		}
		return Infinity{}, nil
	}
	if afok && bfok {
		return Number(af / bf), nil
	}
	return NewCall("Divide", a, b), nil
}

func evalPower(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "Power", Got: len(args), Want: "2"}
	}
	if r, ok, err := broadcast("Power", args, ctx); ok {
		return r, err
	}
	b, e := args[0], args[1]
	if f, ok := numVal(e); ok {
		switch f {
		case 0:
			return Number(1), nil
		case 1:
			return b, nil
		}
	}
	bf, bok := numVal(b)
	ef, eok := numVal(e)
	if bok && eok {
		return Number(math.Pow(bf, ef)), nil
	}
	return NewCall("Power", b, e), nil
}
