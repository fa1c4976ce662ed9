package sparql

import "github.com/rdfgraph/engine/term"

// ExprKind identifies a node in the FILTER/BIND expression tree.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprVar
	ExprUnary
	ExprBinary
	ExprCall
	ExprExists
	ExprNotExists
)

// Expr is the expression AST used inside FILTER and BIND/Extend, and
// inside aggregate arguments. It is a separate tree from the term.Term
// pattern model: an Expr evaluates against a row of variable bindings to
// produce a term.Term value (or an error per SPARQL's error-propagation
// rules), whereas term.Term patterns only ever describe what to match.
type Expr struct {
	Kind ExprKind

	// ExprLiteral
	Value term.Term

	// ExprVar
	Var string

	// ExprUnary / ExprBinary
	Op       string // "!", "-", "+", "&&", "||", "=", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/", "in", "not in"
	Operands []*Expr

	// ExprCall
	Func string // e.g. "STR", "LANG", "REGEX", "BOUND", "COALESCE", "UUID", "MD5", ...
	Args []*Expr

	// ExprExists / ExprNotExists
	Pattern Algebra
}

func Lit(v term.Term) *Expr          { return &Expr{Kind: ExprLiteral, Value: v} }
func VarRef(name string) *Expr       { return &Expr{Kind: ExprVar, Var: name} }
func Unary(op string, x *Expr) *Expr { return &Expr{Kind: ExprUnary, Op: op, Operands: []*Expr{x}} }
func Binary(op string, l, r *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Op: op, Operands: []*Expr{l, r}}
}
func Call(fn string, args ...*Expr) *Expr { return &Expr{Kind: ExprCall, Func: fn, Args: args} }
