package aleph

import (
	"strconv"
	"strings"
)

// ToString returns the canonical printed form of an expression. The form
// is stable: structurally equal trees print equally. Trees the parser
// builds from operator syntax reparse to an equal tree. A nested operator
// call written in bracket form, such as Plus[Plus[a, b], c], prints in
// infix and reparses flattened, and values only the evaluator produces
// print in source forms that reparse to different trees: a Rational prints
// as 1/3, which parses to Divide[1, 3].
func ToString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, precExpr)
	return b.String()
}

// ToStringRaw returns the literal tree form of an expression, with every
// operation in bracket notation: Plus[2, x] rather than 2 + x.
func ToStringRaw(e Expr) string {
	var b strings.Builder
	writeRaw(&b, e)
	return b.String()
}

func (n Number) String() string      { return ToString(n) }
func (r Rational) String() string    { return ToString(r) }
func (c Complex) String() string     { return ToString(c) }
func (v Boolean) String() string     { return ToString(v) }
func (s String) String() string      { return ToString(s) }
func (s Symbol) String() string      { return ToString(s) }
func (l *List) String() string       { return ToString(l) }
func (c *Call) String() string       { return ToString(c) }
func (d *FuncDef) String() string    { return ToString(d) }
func (a *Assign) String() string     { return ToString(a) }
func (r *Rule) String() string       { return ToString(r) }
func (Infinity) String() string      { return "Infinity" }
func (Indeterminate) String() string { return "Indeterminate" }

// Print precedence levels, mirroring the parser's operator table. An
// expression is parenthesized wherever its level is below what its
// context requires.
const (
	precExpr    int8 = 0
	precAssign  int8 = 1
	precRule    int8 = 2
	precOr      int8 = 3
	precAnd     int8 = 4
	precCompare int8 = 5
	precJoin    int8 = 6
	precAdd     int8 = 7
	precMul     int8 = 8
	precUnary   int8 = 9
	precPow     int8 = 10
	precAtom    int8 = 11
)

// infix maps operator heads with their required arity (-1 for n-ary of at
// least two) to the operator text and level.
var infix = map[string]struct {
	op    string
	prec  int8
	arity int
}{
	"Or":           {" || ", precOr, -1},
	"And":          {" && ", precAnd, -1},
	"Equal":        {" == ", precCompare, 2},
	"Unequal":      {" != ", precCompare, 2},
	"Less":         {" < ", precCompare, 2},
	"LessEqual":    {" <= ", precCompare, 2},
	"Greater":      {" > ", precCompare, 2},
	"GreaterEqual": {" >= ", precCompare, 2},
	"StringJoin":   {" <> ", precJoin, -1},
	"Plus":         {" + ", precAdd, -1},
	"Subtract":     {" - ", precAdd, 2},
	"Times":        {" * ", precMul, -1},
	"Divide":       {" / ", precMul, 2},
	"Power":        {"^", precPow, 2},
}

// exprPrec returns the level of the form an expression prints as.
func exprPrec(e Expr) int8 {
	switch e := e.(type) {
	case Number:
		if e < 0 {
			return precUnary
		}
		return precAtom
	case Rational:
		// Rationals print with a division bar.
		return precMul
	case *Call:
		if isNegation(e) {
			return precUnary
		}
		if e.Head == "Not" && len(e.Args) == 1 {
			return precUnary
		}
		if in, ok := infix[e.Head]; ok && (in.arity == len(e.Args) || in.arity == -1 && len(e.Args) >= 2) {
			return in.prec
		}
		return precAtom
	case *Rule:
		return precRule
	case *Assign, *FuncDef:
		return precAssign
	default:
		return precAtom
	}
}

// isNegation reports whether a call prints as a unary minus.
func isNegation(c *Call) bool {
	if c.Head != "Times" || len(c.Args) != 2 {
		return false
	}
	n, ok := c.Args[0].(Number)
	return ok && n == -1
}

func writeExpr(b *strings.Builder, e Expr, min int8) {
	if exprPrec(e) < min {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	switch e := e.(type) {
	case Number:
		b.WriteString(formatNumber(float64(e)))
	case Rational:
		b.WriteString(strconv.FormatInt(e.Num, 10))
		b.WriteByte('/')
		b.WriteString(strconv.FormatInt(e.Den, 10))
	case Complex:
		b.WriteString("Complex[")
		b.WriteString(formatNumber(e.Re))
		b.WriteString(", ")
		b.WriteString(formatNumber(e.Im))
		b.WriteByte(']')
	case Boolean:
		if e {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case String:
		b.WriteString(strconv.Quote(string(e)))
	case Symbol:
		b.WriteString(string(e))
	case *List:
		writeSeq(b, "{", e.Elems, "}")
	case *Call:
		writeCall(b, e)
	case *FuncDef:
		b.WriteString(e.Name)
		b.WriteByte('[')
		for i, p := range e.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteByte('_')
			if p.Default != nil {
				b.WriteByte(':')
				writeExpr(b, p.Default, precExpr)
			}
		}
		b.WriteByte(']')
		if e.Delayed {
			b.WriteString(" := ")
		} else {
			b.WriteString(" = ")
		}
		writeExpr(b, e.Body, precAssign)
	case *Assign:
		b.WriteString(e.Name)
		b.WriteString(" = ")
		writeExpr(b, e.Value, precAssign)
	case *Rule:
		writeExpr(b, e.LHS, precRule+1)
		b.WriteString(" -> ")
		writeExpr(b, e.RHS, precRule)
	case Infinity:
		b.WriteString("Infinity")
	case Indeterminate:
		b.WriteString("Indeterminate")
	default:
		panic("aleph: cannot print expression")
	}
}

func writeCall(b *strings.Builder, c *Call) {
	switch {
	case isNegation(c):
		b.WriteByte('-')
		min := precUnary
		if n, ok := c.Args[1].(Number); ok && n >= 0 {
			// -2 would reparse as a negative literal, so -(2) keeps its
			// parentheses.
			min = precAtom + 1
		}
		writeExpr(b, c.Args[1], min)
		return
	case c.Head == "Not" && len(c.Args) == 1:
		b.WriteByte('!')
		writeExpr(b, c.Args[0], precUnary)
		return
	case c.Head == "List":
		writeSeq(b, "{", c.Args, "}")
		return
	}
	if in, ok := infix[c.Head]; ok && (in.arity == len(c.Args) || in.arity == -1 && len(c.Args) >= 2) {
		rhs := in.prec + 1
		if in.prec == precPow {
			// Exponentiation binds rightward, and its right operand may
			// be a bare negation: 2^-3 needs no parentheses.
			writeExpr(b, c.Args[0], precAtom)
			b.WriteString(in.op)
			writeExpr(b, c.Args[1], precUnary)
			return
		}
		writeExpr(b, c.Args[0], in.prec)
		for _, a := range c.Args[1:] {
			b.WriteString(in.op)
			writeExpr(b, a, rhs)
		}
		return
	}
	b.WriteString(c.Head)
	writeSeq(b, "[", c.Args, "]")
}

func writeSeq(b *strings.Builder, open string, elems []Expr, close string) {
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e, precExpr)
	}
	b.WriteString(close)
}

// formatNumber renders a float without an exponent and without trailing
// zeros, so that integral values print as integers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeRaw(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Number:
		b.WriteString(formatNumber(float64(e)))
	case Rational:
		b.WriteString("Rational[")
		b.WriteString(strconv.FormatInt(e.Num, 10))
		b.WriteString(", ")
		b.WriteString(strconv.FormatInt(e.Den, 10))
		b.WriteByte(']')
	case Complex:
		b.WriteString("Complex[")
		b.WriteString(formatNumber(e.Re))
		b.WriteString(", ")
		b.WriteString(formatNumber(e.Im))
		b.WriteByte(']')
	case Boolean:
		if e {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case String:
		b.WriteString(strconv.Quote(string(e)))
	case Symbol:
		b.WriteString(string(e))
	case *List:
		writeRawSeq(b, "List[", e.Elems)
	case *Call:
		writeRawSeq(b, e.Head+"[", e.Args)
	case *FuncDef:
		b.WriteString("FunctionDefinition[")
		b.WriteString(e.Name)
		b.WriteString(", {")
		for i, p := range e.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteByte('_')
			if p.Default != nil {
				b.WriteByte(':')
				writeRaw(b, p.Default)
			}
		}
		b.WriteString("}, ")
		writeRaw(b, e.Body)
		if e.Delayed {
			b.WriteString(", Delayed")
		}
		b.WriteByte(']')
	case *Assign:
		b.WriteString("Assignment[")
		b.WriteString(e.Name)
		b.WriteString(", ")
		writeRaw(b, e.Value)
		b.WriteByte(']')
	case *Rule:
		b.WriteString("Rule[")
		writeRaw(b, e.LHS)
		b.WriteString(", ")
		writeRaw(b, e.RHS)
		b.WriteByte(']')
	case Infinity:
		b.WriteString("Infinity")
	case Indeterminate:
		b.WriteString("Indeterminate")
	default:
		panic("aleph: cannot print expression")
	}
}

func writeRawSeq(b *strings.Builder, open string, elems []Expr) {
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		writeRaw(b, e)
	}
	b.WriteByte(']')
}
