package aleph

import (
	"io"
	"sort"
	"strconv"
	"strings"
)

// Context is a mutable set of variable bindings and function definitions
// under which expressions evaluate. It is owned by the caller and is not
// safe to use concurrently.
type Context struct {
	vars  map[string]Expr
	funcs map[string]*FuncDef
}

// NewContext creates an empty evaluation context.
func NewContext() *Context {
	return &Context{
		vars:  make(map[string]Expr),
		funcs: make(map[string]*FuncDef),
	}
}

// Set binds a name to an expression.
func (ctx *Context) Set(name string, value Expr) {
	ctx.vars[name] = value
}

// Get returns the expression bound to a name, if any.
func (ctx *Context) Get(name string) (Expr, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// Unset removes the binding for a name.
func (ctx *Context) Unset(name string) {
	delete(ctx.vars, name)
}

// Define registers a function definition, replacing any previous
// definition of the same name.
func (ctx *Context) Define(def *FuncDef) {
	ctx.funcs[def.Name] = def
}

// Definition returns the definition of a named function, if any.
func (ctx *Context) Definition(name string) (*FuncDef, bool) {
	def, ok := ctx.funcs[name]
	return def, ok
}

// Names returns the bound variable names in sorted order.
func (ctx *Context) Names() []string {
	r := make([]string, 0, len(ctx.vars))
	for k := range ctx.vars {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Definitions returns the registered function definitions sorted by name.
func (ctx *Context) Definitions() []*FuncDef {
	r := make([]*FuncDef, 0, len(ctx.funcs))
	for _, def := range ctx.funcs {
		r = append(r, def)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r
}

// clone copies the context so that a function application can bind its
// parameters without mutating the caller's bindings.
func (ctx *Context) clone() *Context {
	n := Context{
		vars:  make(map[string]Expr, len(ctx.vars)),
		funcs: make(map[string]*FuncDef, len(ctx.funcs)),
	}
	for k, v := range ctx.vars {
		n.vars[k] = v
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	return &n
}

// Evaluate reduces an expression under a context. Numeric subexpressions
// are computed, algebraic identities are applied, and anything irreducible
// is returned in symbolic form: a free symbol evaluates to itself, and a
// call with an unknown head evaluates to the same call with evaluated
// arguments. Assignments and function definitions mutate the context.
func Evaluate(e Expr, ctx *Context) (Expr, error) {
	r, err := eval(e, ctx)
	if err != nil {
		return nil, err
	}
	// If a reduction changed the form of a call, one more pass can pick
	// up newly enabled reductions.
	if _, ok := r.(*Call); ok && !Equal(r, e) {
		return eval(r, ctx)
	}
	return r, nil
}

// Eval is a shortcut to parse an expression from a reader and evaluate it.
func Eval(src io.RuneScanner, ctx *Context) (Expr, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Evaluate(e, ctx)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, ctx *Context) (Expr, error) {
	return Eval(strings.NewReader(src), ctx)
}

func eval(e Expr, ctx *Context) (Expr, error) {
	switch e := e.(type) {
	case Number, Rational, Complex, Boolean, String, Infinity, Indeterminate:
		return e, nil
	case Symbol:
		switch e {
		case "Infinity":
			return Infinity{}, nil
		case "Indeterminate":
			return Indeterminate{}, nil
		}
		if v, ok := ctx.vars[string(e)]; ok {
			// Bindings re-evaluate under the current context, so that a
			// variable bound to an expression over other variables sees
			// their current values.
			return eval(v, ctx)
		}
		return e, nil
	case *List:
		elems, err := evalAll(e.Elems, ctx)
		if err != nil {
			return nil, err
		}
		return &List{Elems: elems}, nil
	case *Call:
		return evalCall(e, ctx)
	case *Assign:
		v, err := eval(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		ctx.vars[e.Name] = v
		return Symbol(e.Name), nil
	case *FuncDef:
		def := e
		if !e.Delayed {
			body, err := eval(e.Body, ctx)
			if err != nil {
				return nil, err
			}
			def = &FuncDef{Name: e.Name, Params: e.Params, Body: body}
		}
		ctx.funcs[def.Name] = def
		return Symbol(def.Name), nil
	case *Rule:
		l, err := eval(e.LHS, ctx)
		if err != nil {
			return nil, err
		}
		r, err := eval(e.RHS, ctx)
		if err != nil {
			return nil, err
		}
		return &Rule{LHS: l, RHS: r}, nil
	default:
		panic("aleph: cannot evaluate expression")
	}
}

func evalAll(args []Expr, ctx *Context) ([]Expr, error) {
	r := make([]Expr, len(args))
	for i, a := range args {
		v, err := eval(a, ctx)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

func evalCall(c *Call, ctx *Context) (Expr, error) {
	// Special forms control the evaluation of their own arguments.
	switch c.Head {
	case "If":
		return evalIf(c.Args, ctx)
	case "And":
		return evalAndOr(c.Args, ctx, true)
	case "Or":
		return evalAndOr(c.Args, ctx, false)
	case "List":
		elems, err := evalAll(c.Args, ctx)
		if err != nil {
			return nil, err
		}
		return &List{Elems: elems}, nil
	}
	args, err := evalAll(c.Args, ctx)
	if err != nil {
		return nil, err
	}
	if fn := builtins[c.Head]; fn != nil {
		return fn(args, ctx)
	}
	if def, ok := ctx.funcs[c.Head]; ok {
		return apply(def, args, ctx)
	}
	// Unknown head: a symbolic residue with evaluated arguments.
	return NewCall(c.Head, args...), nil
}

// apply evaluates a user-defined function on already evaluated arguments.
// Parameters bind in a copy of the context, falling back to their default
// values for missing arguments.
func apply(def *FuncDef, args []Expr, ctx *Context) (Expr, error) {
	if len(args) > len(def.Params) {
		return nil, &ArityError{Func: def.Name, Got: len(args), Want: "at most " + strconv.Itoa(len(def.Params))}
	}
	scope := ctx.clone()
	for i, p := range def.Params {
		var v Expr
		switch {
		case i < len(args):
			v = args[i]
		case p.Default != nil:
			d, err := eval(p.Default, ctx)
			if err != nil {
				return nil, err
			}
			v = d
		default:
			return nil, &ArityError{Func: def.Name, Got: len(args), Want: strconv.Itoa(len(def.Params))}
		}
		scope.vars[p.Name] = v
	}
	return eval(def.Body, scope)
}

func evalIf(args []Expr, ctx *Context) (Expr, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, &ArityError{Func: "If", Got: len(args), Want: "2 or 3"}
	}
	cond, err := eval(args[0], ctx)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(Boolean)
	if !ok {
		// The condition stays symbolic, and the branches stay untouched.
		rest := append([]Expr{cond}, args[1:]...)
		return NewCall("If", rest...), nil
	}
	switch {
	case bool(b):
		return eval(args[1], ctx)
	case len(args) == 3:
		return eval(args[2], ctx)
	default:
		return Symbol("Null"), nil
	}
}

// evalAndOr evaluates the operands of And or Or left to right with
// short-circuiting. A literal false in And or true in Or decides the
// result; otherwise the result is boolean when every operand is, and a
// symbolic residue with all evaluated operands when not.
func evalAndOr(args []Expr, ctx *Context, and bool) (Expr, error) {
	vals := make([]Expr, 0, len(args))
	bools := true
	for _, a := range args {
		v, err := eval(a, ctx)
		if err != nil {
			return nil, err
		}
		if b, ok := v.(Boolean); ok {
			if bool(b) != and {
				// false && _, true || _
				return b, nil
			}
		} else {
			bools = false
		}
		vals = append(vals, v)
	}
	if bools {
		return Boolean(and), nil
	}
	if and {
		return NewCall("And", vals...), nil
	}
	return NewCall("Or", vals...), nil
}
