// Package aleph implements the core of a small computer algebra system.
//
// Expressions are written in a bracket-function notation: "f[x, y]" is a
// function call, "{1, 2, 3}" is a list, and adjacency is multiplication, so
// "2x" is the same as "2 * x". Parsing produces an immutable expression
// tree, and evaluating a tree under a Context reduces what can be reduced
// and leaves the rest symbolic: "2 + 3" becomes 5, while "x + 0" becomes x
// when x has no binding.
//
// Contexts let you bind variables and define functions, either immediately
// ("f[x_] = x^2") or delayed ("f[x_] := x^2"), and evaluate many
// expressions under the same bindings.
package aleph
