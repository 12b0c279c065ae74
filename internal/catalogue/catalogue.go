// Package catalogue supplies the named sample declarations the CLI and
// the REPL drive through inference. There is no surface parser in this
// module, so each sample is built directly as an ast.Expr rather than
// read from source text.
package catalogue

import (
	"github.com/affe-lang/affe/internal/ast"
	"github.com/affe-lang/affe/internal/names"
)

// Sample is one named top-level declaration: a right-hand side
// expression, whether it binds recursively, and the name it is bound
// to for InferTop.
type Sample struct {
	Name     string
	Rec      bool
	Describe string
	Build    func(in *names.Interner) ast.Expr
}

var pos = ast.Pos{File: "<catalogue>"}

func v(n names.Name) *ast.Var { return &ast.Var{Name: n, Pos: pos} }

// All returns the end-to-end scenarios of spec.md §8 in declaration
// order, each built fresh against the given interner so repeated runs
// never collide on Name tags.
func All() []Sample {
	return []Sample{
		{
			Name:     "id",
			Describe: "let id = fun x -> x",
			Build: func(in *names.Interner) ast.Expr {
				x := in.Fresh("x")
				return &ast.Lambda{Param: &ast.PVar{Name: x, Pos: pos}, Body: v(x), Pos: pos}
			},
		},
		{
			Name:     "twice",
			Describe: "let twice = fun f -> fun x -> f (f x)",
			Build: func(in *names.Interner) ast.Expr {
				f := in.Fresh("f")
				x := in.Fresh("x")
				inner := &ast.App{Fn: v(f), Args: []ast.Expr{&ast.App{Fn: v(f), Args: []ast.Expr{v(x)}, Pos: pos}}, Pos: pos}
				return &ast.Lambda{
					Param: &ast.PVar{Name: f, Pos: pos},
					Body:  &ast.Lambda{Param: &ast.PVar{Name: x, Pos: pos}, Body: inner, Pos: pos},
					Pos:   pos,
				}
			},
		},
		{
			Name:     "swap",
			Describe: "let swap = fun p -> match p with (a,b) -> (b,a)",
			Build: func(in *names.Interner) ast.Expr {
				p := in.Fresh("p")
				a := in.Fresh("a")
				b := in.Fresh("b")
				arm := ast.Arm{
					Pattern: &ast.PTuple{Elems: []ast.Pattern{
						&ast.PVar{Name: a, Pos: pos},
						&ast.PVar{Name: b, Pos: pos},
					}, Pos: pos},
					Body: &ast.Tuple{Elems: []ast.Expr{v(b), v(a)}, Pos: pos},
				}
				match := &ast.Match{Scrutinee: v(p), Arms: []ast.Arm{arm}, Pos: pos}
				return &ast.Lambda{Param: &ast.PVar{Name: p, Pos: pos}, Body: match, Pos: pos}
			},
		},
		{
			Name:     "r",
			Describe: "let r = fun x -> &x",
			Build: func(in *names.Interner) ast.Expr {
				x := in.Fresh("x")
				return &ast.Lambda{
					Param: &ast.PVar{Name: x, Pos: pos},
					Body:  &ast.Borrow{Mode: ast.ReadBorrow, Name: x, Pos: pos},
					Pos:   pos,
				}
			},
		},
		{
			Name:     "bad",
			Describe: "let bad = fun x -> (x, x)",
			Build: func(in *names.Interner) ast.Expr {
				x := in.Fresh("x")
				return &ast.Lambda{
					Param: &ast.PVar{Name: x, Pos: pos},
					Body:  &ast.Tuple{Elems: []ast.Expr{v(x), v(x)}, Pos: pos},
					Pos:   pos,
				}
			},
		},
		{
			Name:     "bad_borrow",
			Describe: "let bad_borrow = fun x -> let y = &x in &!x",
			Build: func(in *names.Interner) ast.Expr {
				x := in.Fresh("x")
				y := in.Fresh("y")
				body := &ast.Let{
					Pattern: &ast.PVar{Name: y, Pos: pos},
					Value:   &ast.Borrow{Mode: ast.ReadBorrow, Name: x, Pos: pos},
					Body:    &ast.Borrow{Mode: ast.WriteBorrow, Name: x, Pos: pos},
					Pos:     pos,
				}
				return &ast.Lambda{Param: &ast.PVar{Name: x, Pos: pos}, Body: body, Pos: pos}
			},
		},
		{
			Name:     "occurs",
			Describe: "fun x -> x x (expected to fail: RecursiveType)",
			Build: func(in *names.Interner) ast.Expr {
				x := in.Fresh("x")
				return &ast.Lambda{
					Param: &ast.PVar{Name: x, Pos: pos},
					Body:  &ast.App{Fn: v(x), Args: []ast.Expr{v(x)}, Pos: pos},
					Pos:   pos,
				}
			},
		},
	}
}
