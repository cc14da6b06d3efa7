package aleph

import (
	"strings"
	"unicode/utf8"
)

// symbolic reports whether an evaluated argument is still unresolved. A
// string operation on an unresolved argument stays symbolic; only a
// definite value of the wrong type is an error.
func symbolic(e Expr) bool {
	switch e := e.(type) {
	case Symbol, *Call:
		return true
	case *Rule:
		return symbolic(e.LHS) || symbolic(e.RHS)
	}
	return false
}

func anySymbolic(args []Expr) bool {
	for _, a := range args {
		if symbolic(a) {
			return true
		}
	}
	return false
}

func evalStringJoin(args []Expr, ctx *Context) (Expr, error) {
	if anySymbolic(args) {
		return NewCall("StringJoin", args...), nil
	}
	var b strings.Builder
	for _, a := range args {
		s, ok := a.(String)
		if !ok {
			return nil, &TypeError{Func: "StringJoin", Want: "string arguments"}
		}
		b.WriteString(string(s))
	}
	return String(b.String()), nil
}

func evalStringLength(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 1 {
		return nil, &ArityError{Func: "StringLength", Got: len(args), Want: "1"}
	}
	if symbolic(args[0]) {
		return NewCall("StringLength", args...), nil
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &TypeError{Func: "StringLength", Want: "a string argument"}
	}
	return Number(utf8.RuneCountInString(string(s))), nil
}

func evalStringReplace(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "StringReplace", Got: len(args), Want: "2"}
	}
	if anySymbolic(args) {
		return NewCall("StringReplace", args...), nil
	}
	s, sok := args[0].(String)
	r, rok := args[1].(*Rule)
	if !sok || !rok {
		return nil, &TypeError{Func: "StringReplace", Want: "a string and a replacement rule"}
	}
	from, fok := r.LHS.(String)
	to, tok := r.RHS.(String)
	if !fok || !tok {
		return nil, &TypeError{Func: "StringReplace", Want: "a rule between strings"}
	}
	// Replacements scan left to right without overlapping.
	return String(strings.ReplaceAll(string(s), string(from), string(to))), nil
}

func evalStringTake(args []Expr, ctx *Context) (Expr, error) {
	if len(args) != 2 {
		return nil, &ArityError{Func: "StringTake", Got: len(args), Want: "2"}
	}
	if anySymbolic(args) {
		return NewCall("StringTake", args...), nil
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &TypeError{Func: "StringTake", Want: "a string and an index or range"}
	}
	bad := &DomainError{Func: "StringTake", Reason: "StringTake expects a valid index or range"}
	r := []rune(string(s))
	if elems, ok := listElems(args[1]); ok {
		// 1-based inclusive range {i, j}.
		if len(elems) != 2 {
			return nil, bad
		}
		i, di, iok := exactVal(elems[0])
		j, dj, jok := exactVal(elems[1])
		if !iok || !jok || di != 1 || dj != 1 {
			return nil, bad
		}
		if i < 1 || j > int64(len(r)) || i > j+1 {
			return nil, bad
		}
		return String(r[i-1 : j]), nil
	}
	n, d, ok := exactVal(args[1])
	if !ok || d != 1 {
		return nil, bad
	}
	switch {
	case n == 0, n > int64(len(r)), -n > int64(len(r)):
		return nil, bad
	case n > 0:
		return String(r[:n]), nil
	default:
		return String(r[int64(len(r))+n:]), nil
	}
}
