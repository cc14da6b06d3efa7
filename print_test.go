package aleph

import "testing"

func TestToString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add", "2 + 3", "2 + 3"},
		{"add-neg", "-2 + 3", "-2 + 3"},
		{"add-neg-rhs", "2 + -3", "2 + -3"},
		{"add-neg-both", "-2 + -3", "-2 + -3"},
		{"var", "x + 1", "x + 1"},
		{"call", "sin[x]", "sin[x]"},
		{"call-neg", "sin[-x]", "sin[-x]"},
		{"call-nested", "max[-2, min[-3, -4]]", "max[-2, min[-3, -4]]"},
		{"pow", "2^3", "2^3"},
		{"pow-neg", "-2^3", "-2^3"},
		{"pow-negexp", "2^-3", "2^-3"},
		{"implicit", "2x", "2 * x"},
		{"implicit-paren", "2(3 + x)", "2 * (3 + x)"},
		{"floor", "floor[3.7]", "floor[3.7]"},
		{"list", "{1, 2, 3}", "{1, 2, 3}"},
		{"list-empty", "{}", "{}"},
		{"join", `"a" <> "b"`, `"a" <> "b"`},
		{"string", `"Hello World"`, `"Hello World"`},
		{"assign", "x = 2", "x = 2"},
		{"def", "f[x_] := x^2", "f[x_] := x^2"},
		{"def-default", "f[x_:1] := x", "f[x_:1] := x"},
		{"rule", "x -> y", "x -> y"},
		{"div-prod", "x/-3x", "x / (-3 * x)"},
		{"and", "True && x", "True && x"},
		{"eq", "x == 0", "x == 0"},
		{"not", "!x", "!x"},
		{"if", "If[x == 0, 1, 2]", "If[x == 0, 1, 2]"},
		{"sub", "a - b", "a - b"},
		{"sub-paren", "a - (b + c)", "a - (b + c)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := ToString(a); got != c.want {
				t.Errorf("%q prints %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestToStringRaw(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add", "2 + 3", "Plus[2, 3]"},
		{"implicit", "2x", "Times[2, x]"},
		{"list", "{1, 2}", "List[1, 2]"},
		{"assign", "x = 2", "Assignment[x, 2]"},
		{"rule", "x -> y", "Rule[x, y]"},
		{"def", "f[x_] := y", "FunctionDefinition[f, {x_}, y, Delayed]"},
		{"def-immediate", "f[x_] = y", "FunctionDefinition[f, {x_}, y]"},
		{"div", "x/y", "Divide[x, y]"},
		{"neg", "-x", "Times[-1, x]"},
		{"negpow", "-2^3", "Times[-1, Power[2, 3]]"},
		{"bool", "True", "True"},
		{"string", `"hi"`, `"hi"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := ToStringRaw(a); got != c.want {
				t.Errorf("%q prints raw %q, want %q", c.src, got, c.want)
			}
		})
	}
}

// TestRoundTrip checks that printing and reparsing preserves the tree.
func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"add", "2 + 3"},
		{"addsub", "w - x + y - z"},
		{"terms", "x y z"},
		{"prec-updown", "w^x*y+z+a*b^c"},
		{"prec-downup", "w+x*y^z^a*b+c"},
		{"neg", "-x"},
		{"neg-num", "-2"},
		{"neg-pow", "-2^3"},
		{"pow-neg", "x^-1"},
		{"pow-tower", "2^3^2"},
		{"neg-sub", "-x-x"},
		{"div-chain", "w/x/y/z"},
		{"div-prod", "x/-3x"},
		{"div-idents", "-a/(b C)"},
		{"div-maximal", "-a/(bC)"},
		{"implicit", "2x"},
		{"implicit-call", "2 Sin[x]"},
		{"call", "max[2, min[3, 4]]"},
		{"list", "{1 + 2, x^2, f[3]}"},
		{"list-nested", "{{}, {1, {2}}}"},
		{"strings", `"a" <> "b" <> "c"`},
		{"replace", `StringReplace["ab", "a" -> "b"]`},
		{"rule-chain", "a -> b -> c"},
		{"logic", "!x && y || z"},
		{"cmp", "x <= y"},
		{"if", "If[x == 0, 1, x + 2]"},
		{"assign", "x = y = 2"},
		{"def", "f[x_, y_:2] := x^y"},
		{"quoted", `"a\"b\nc"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := ToString(a)
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			if !Equal(a, b) {
				t.Errorf("mismatched trees:\n\t%q parses %s\n\t%q parses %s", c.src, ToStringRaw(a), s, ToStringRaw(b))
			}
			// Canonical printing is stable.
			if again := ToString(b); again != s {
				t.Errorf("unstable printing: %q then %q", s, again)
			}
		})
	}
}

// TestEvaluatedPrinting checks printed forms of evaluator products that
// the parser alone never builds.
func TestEvaluatedPrinting(t *testing.T) {
	cases := []struct {
		name string
		e    Expr
		want string
	}{
		{"rational", Rational{Num: 1, Den: 3}, "1/3"},
		{"rational-neg", Rational{Num: -1, Den: 3}, "-1/3"},
		{"rational-mul", NewCall("Times", Number(2), Rational{Num: -1, Den: 3}), "2 * (-1/3)"},
		{"list", NewList(Number(5), Number(7)), "{5, 7}"},
		{"infinity", Infinity{}, "Infinity"},
		{"indeterminate", Indeterminate{}, "Indeterminate"},
		{"plus-nary", NewCall("Plus", Number(1), Symbol("x"), Symbol("y")), "1 + x + y"},
		{"power-negbase", NewCall("Power", Number(-2), Number(3)), "(-2)^3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToString(c.e); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}
