package aleph

// cmpNums compares two numeric expressions, exactly when both sides are
// exact.
func cmpNums(a, b Expr) (int, bool) {
	an, ad, aok := exactVal(a)
	bn, bd, bok := exactVal(b)
	if aok && bok {
		l, r := an*bd, bn*ad
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		}
		return 0, true
	}
	af, afok := numVal(a)
	bf, bfok := numVal(b)
	if !afok || !bfok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

// sameness decides Equal and Unequal: both report ok false when the
// arguments cannot be proven equal or unequal.
func sameness(a, b Expr) (equal, ok bool) {
	if c, ok := cmpNums(a, b); ok {
		return c == 0, true
	}
	switch a := a.(type) {
	case String:
		b, bok := b.(String)
		return a == b, bok
	case Boolean:
		b, bok := b.(Boolean)
		return a == b, bok
	case Symbol:
		// Distinct symbols might still denote the same value, so only a
		// match is conclusive.
		if b, bok := b.(Symbol); bok && a == b {
			return true, true
		}
	}
	return false, false
}

func evalEqual(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "Equal", Got: len(args), Want: "2"}
	}
	if eq, ok := sameness(args[0], args[1]); ok {
		return Boolean(eq), nil
	}
	return NewCall("Equal", args...), nil
}

func evalUnequal(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "Unequal", Got: len(args), Want: "2"}
	}
	if eq, ok := sameness(args[0], args[1]); ok {
		return Boolean(!eq), nil
	}
	return NewCall("Unequal", args...), nil
}

// relational adapts a numeric ordering test to a builtin that stays
// symbolic when either side is not numeric.
func relational(name string, holds func(c int) bool) builtin {
	return func(args []Expr, ctx *Context) (Expr, error) {
		if len(args) != 2 {
			return nil, &ArityError{Func: name, Got: len(args), Want: "2"}
		}
		if c, ok := cmpNums(args[0], args[1]); ok {
			return Boolean(holds(c)), nil
		}
		return NewCall(name, args...), nil
	}
}

func evalNot(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 1 {
		return nil, &ArityError{Func: "Not", Got: len(args), Want: "1"}
	}
	if b, ok := args[0].(Boolean); ok {
		return !b, nil
	}
	return NewCall("Not", args...), nil
}
