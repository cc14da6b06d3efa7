package aleph

import "testing"

// specialForms are heads the evaluator handles before argument
// evaluation, so they do not appear in the builtins table.
var specialForms = []string{"If", "And", "Or", "List"}

func TestBuiltinHeads(t *testing.T) {
	special := func(head string) bool {
		for _, s := range specialForms {
			if head == s {
				return true
			}
		}
		return false
	}
	// Every operator head the printer knows is either a builtin or a
	// special form.
	for head := range infix {
		if special(head) {
			continue
		}
		if builtins[head] == nil {
			t.Errorf("no builtin for operator head %q", head)
		}
	}
	// Special forms must not be builtins, or dispatch would evaluate
	// their arguments first.
	for _, head := range specialForms {
		if builtins[head] != nil {
			t.Errorf("special form %q is also a builtin", head)
		}
	}
}

func TestNumericResiduals(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"Sin", "Sin[x]"},
		{"Cos", "Cos[x + 1]"},
		{"Sqrt", "Sqrt[x]"},
		{"Exp", "Exp[x]"},
		{"Floor", "Floor[x]"},
		{"Ceiling", "Ceiling[x]"},
		{"Round", "Round[x]"},
		{"Max", "Max[1, x]"},
		{"Min", "Min[x, 2]"},
		{"Power", "x^y"},
		{"Divide", "x/y"},
	}
	ctx := NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, err := Evaluate(e, ctx)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			call, ok := r.(*Call)
			if !ok {
				t.Fatalf("%q reduced to %s, want a symbolic residue", c.src, ToStringRaw(r))
			}
			if call.Head != c.name {
				t.Errorf("%q residue has head %q, want %q", c.src, call.Head, c.name)
			}
		})
	}
}

func TestStringResiduals(t *testing.T) {
	cases := []struct {
		name string
		src  string
		head string
	}{
		{"join", `x <> "a"`, "StringJoin"},
		{"length", "StringLength[x]", "StringLength"},
		{"replace", `StringReplace[x, "a" -> "b"]`, "StringReplace"},
		{"replace-rule", `StringReplace["ab", x -> "b"]`, "StringReplace"},
		{"take", "StringTake[x, 3]", "StringTake"},
	}
	ctx := NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, err := Evaluate(e, ctx)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			call, ok := r.(*Call)
			if !ok {
				t.Fatalf("%q reduced to %s, want a symbolic residue", c.src, ToStringRaw(r))
			}
			if call.Head != c.head {
				t.Errorf("%q residue has head %q, want %q", c.src, call.Head, c.head)
			}
		})
	}
}
