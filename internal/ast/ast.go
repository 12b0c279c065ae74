// Package ast defines the surface syntax the inference driver walks.
// There is no parser here — these node types are the narrow interface
// the driver consumes from whatever produces a renamed tree upstream.
package ast

import (
	"fmt"
	"strings"

	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// Pos is a source position, carried through from the renamer so
// diagnostics can point back at original text.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Expr is one surface expression node, per spec.md §4.7's syntax-
// directed rules.
type Expr interface {
	exprNode()
	Position() Pos
	String() string
}

// BorrowKind distinguishes a read from a write borrow at the syntax
// level, mirroring types.BorrowMode.
type BorrowKind = types.BorrowMode

const (
	ReadBorrow  = types.Read
	WriteBorrow = types.Write
)

// Const is a literal constant; its built-in scheme is looked up by
// name in the builtin environment (e.g. "Int", "Bool", "Unit").
type Const struct {
	Tycon string
	Value interface{}
	Pos   Pos
}

func (*Const) exprNode()        {}
func (c *Const) Position() Pos  { return c.Pos }
func (c *Const) String() string { return fmt.Sprintf("%v", c.Value) }

// Var is a reference to a bound name.
type Var struct {
	Name names.Name
	Pos  Pos
}

func (*Var) exprNode()        {}
func (v *Var) Position() Pos  { return v.Pos }
func (v *Var) String() string { return v.Name.String() }

// Borrow takes a non-owning reference to a bound name.
type Borrow struct {
	Mode BorrowKind
	Name names.Name
	Pos  Pos
}

func (*Borrow) exprNode()       {}
func (b *Borrow) Position() Pos { return b.Pos }
func (b *Borrow) String() string {
	if b.Mode == WriteBorrow {
		return "&!" + b.Name.String()
	}
	return "&" + b.Name.String()
}

// ReBorrow re-derives a borrow from an existing borrow, constraining
// the source to itself be Borrow(Write, _, _) (spec.md §4.7).
type ReBorrow struct {
	Mode BorrowKind
	Name names.Name
	Pos  Pos
}

func (*ReBorrow) exprNode()       {}
func (r *ReBorrow) Position() Pos { return r.Pos }
func (r *ReBorrow) String() string {
	if r.Mode == WriteBorrow {
		return "&!*" + r.Name.String()
	}
	return "&*" + r.Name.String()
}

// Lambda is a one-argument abstraction; multi-argument surface syntax
// desugars to nested Lambdas upstream.
type Lambda struct {
	Param Pattern
	Body  Expr
	Pos   Pos
}

func (*Lambda) exprNode()       {}
func (l *Lambda) Position() Pos { return l.Pos }
func (l *Lambda) String() string {
	return fmt.Sprintf("\\%s -> %s", l.Param, l.Body)
}

// App is function application to one or more arguments.
type App struct {
	Fn   Expr
	Args []Expr
	Pos  Pos
}

func (*App) exprNode()       {}
func (a *App) Position() Pos { return a.Pos }
func (a *App) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Fn, strings.Join(parts, ", "))
}

// Tuple groups a fixed number of expressions.
type Tuple struct {
	Elems []Expr
	Pos   Pos
}

func (*Tuple) exprNode()       {}
func (t *Tuple) Position() Pos { return t.Pos }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Array is a homogeneous sequence literal; an empty array is the one
// non-expansive array form under the value restriction.
type Array struct {
	Elems []Expr
	Pos   Pos
}

func (*Array) exprNode()       {}
func (a *Array) Position() Pos { return a.Pos }
func (a *Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Let is either non-recursive (Rec == false, any Pattern) or
// recursive (Rec == true; only PVar patterns are legal, enforced by
// the driver, not this type — spec.md §4.7: "Non-PVar patterns on
// `let rec` are rejected").
type Let struct {
	Rec     bool
	Pattern Pattern
	Value   Expr
	Body    Expr
	Pos     Pos
}

func (*Let) exprNode()       {}
func (l *Let) Position() Pos { return l.Pos }
func (l *Let) String() string {
	kw := "let"
	if l.Rec {
		kw = "let rec"
	}
	return fmt.Sprintf("%s %s = %s in %s", kw, l.Pattern, l.Value, l.Body)
}

// MatchModifier controls how a scrutinee is bound inside each arm: by
// value, or under a borrow that wraps the arm's pattern type in
// Borrow(b, k, _).
type MatchModifier int

const (
	MatchByValue MatchModifier = iota
	MatchByReadBorrow
	MatchByWriteBorrow
)

// Arm is one match arm: a pattern plus the expression it guards.
type Arm struct {
	Pattern Pattern
	Body    Expr
}

// Match dispatches on a scrutinee's shape.
type Match struct {
	Modifier  MatchModifier
	Scrutinee Expr
	Arms      []Arm
	Pos       Pos
}

func (*Match) exprNode()       {}
func (m *Match) Position() Pos { return m.Pos }
func (m *Match) String() string {
	parts := make([]string, len(m.Arms))
	for i, arm := range m.Arms {
		parts[i] = fmt.Sprintf("%s -> %s", arm.Pattern, arm.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(parts, "; "))
}

// Region introduces region-local variables whose borrow-kinds must
// satisfy the region escape rule on exit (spec.md §4.4's exit-region
// rule).
type Region struct {
	Vars []names.Name
	Body Expr
	Pos  Pos
}

func (*Region) exprNode()       {}
func (r *Region) Position() Pos { return r.Pos }
func (r *Region) String() string {
	parts := make([]string, len(r.Vars))
	for i, n := range r.Vars {
		parts[i] = n.String()
	}
	return fmt.Sprintf("region(%s) { %s }", strings.Join(parts, ", "), r.Body)
}
