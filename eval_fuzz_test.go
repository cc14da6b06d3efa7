package aleph_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/aleph"
)

func FuzzEval(f *testing.F) {
	f.Add("2 + 3")
	f.Add("{1, 2} + {3, 4}")
	f.Add("x/-3x")
	f.Add("0/0")
	f.Add(`StringTake["Hello", {2, 4}]`)
	f.Fuzz(func(t *testing.T, s string) {
		e, err := aleph.ParseString(s)
		if err != nil {
			return
		}
		if containsDefinition(e) {
			// Definitions mutate the context and return the defined name
			// rather than a value, so re-evaluation resolves differently
			// on purpose.
			return
		}
		ctx := aleph.NewContext()
		ctx.Set("x", aleph.Number(2))
		r, err := aleph.Evaluate(e, ctx)
		if err != nil {
			return
		}
		if strings.Contains(aleph.ToStringRaw(r), "NaN") {
			// NaN is never equal to itself.
			return
		}
		// Evaluation lands on a fixpoint.
		again, err := aleph.Evaluate(r, ctx)
		if err != nil {
			t.Fatalf("%q evaluated to %s which fails to re-evaluate: %v", s, aleph.ToStringRaw(r), err)
		}
		if !aleph.Equal(r, again) {
			t.Errorf("%q is not at a fixpoint: %s then %s", s, aleph.ToStringRaw(r), aleph.ToStringRaw(again))
		}
	})
}

func containsDefinition(e aleph.Expr) bool {
	switch e := e.(type) {
	case *aleph.Assign, *aleph.FuncDef:
		return true
	case *aleph.List:
		for _, el := range e.Elems {
			if containsDefinition(el) {
				return true
			}
		}
	case *aleph.Call:
		for _, a := range e.Args {
			if containsDefinition(a) {
				return true
			}
		}
	case *aleph.Rule:
		return containsDefinition(e.LHS) || containsDefinition(e.RHS)
	}
	return false
}
