package infer

import "github.com/affe-lang/affe/internal/ast"

// IsNonExpansive implements the value-restriction syntactic check
// spec.md §4.6 defers to surface syntax: constants, variables,
// borrows, lambdas, tuples/regions/lets/matches of non-expansive
// sub-expressions, and the empty array literal all generalise.
// Everything else — in particular every application and every
// non-empty array, since either might run effectful code or allocate
// a fresh linear resource per evaluation — does not.
func IsNonExpansive(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Const, *ast.Var, *ast.Borrow, *ast.ReBorrow, *ast.Lambda:
		return true
	case *ast.Tuple:
		for _, el := range e.Elems {
			if !IsNonExpansive(el) {
				return false
			}
		}
		return true
	case *ast.Array:
		return len(e.Elems) == 0
	case *ast.Region:
		return IsNonExpansive(e.Body)
	case *ast.Let:
		return IsNonExpansive(e.Value) && IsNonExpansive(e.Body)
	case *ast.Match:
		if !IsNonExpansive(e.Scrutinee) {
			return false
		}
		for _, arm := range e.Arms {
			if !IsNonExpansive(arm.Body) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
