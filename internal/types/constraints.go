package types

import "fmt"

// Constraint is the tree form from spec.md §3: Eq/KindLeq leaves,
// True, and a commutative-associative And.
type Constraint interface {
	constraint()
	String() string
}

// CTrue is the always-satisfied constraint, the identity of And.
type CTrue struct{}

func (CTrue) constraint()   {}
func (CTrue) String() string { return "true" }

// CEq is a deferred type equality, discharged into the unifier by
// Solve (spec.md §3: "a normalised constraint ... all type equalities
// have been discharged into the union-find by solving").
type CEq struct{ Left, Right Type }

func (CEq) constraint() {}
func (c CEq) String() string { return fmt.Sprintf("%s = %s", c.Left, c.Right) }

// CKindLeq is a kind inequality leaf.
type CKindLeq struct{ Lower, Upper Kind }

func (CKindLeq) constraint() {}
func (c CKindLeq) String() string { return fmt.Sprintf("%s <= %s", c.Lower, c.Upper) }

// CAnd is conjunction. And below flattens nested/true conjuncts so
// callers never need to special-case CTrue themselves.
type CAnd struct{ Left, Right Constraint }

func (CAnd) constraint() {}
func (c CAnd) String() string { return c.Left.String() + " & " + c.Right.String() }

// And builds the conjunction of a and b, dropping either side if it
// is CTrue so long chains of sequential composition don't grow an
// ever-deeper tree of no-ops.
func And(a, b Constraint) Constraint {
	if _, ok := a.(CTrue); ok {
		return b
	}
	if _, ok := b.(CTrue); ok {
		return a
	}
	return CAnd{a, b}
}

// AndAll folds And over a slice, returning CTrue for an empty slice.
func AndAll(cs ...Constraint) Constraint {
	out := Constraint(CTrue{})
	for _, c := range cs {
		out = And(out, c)
	}
	return out
}

// Leq is shorthand for the common case of constraining one kind's
// retrieval against another.
func Leq(lower, upper Kind) Constraint { return CKindLeq{Lower: lower, Upper: upper} }

// Conjuncts flattens a Constraint tree into its leaf conjuncts,
// dropping CTrue leaves. Eq leaves and KindLeq leaves are returned
// separately since they are discharged by two different mechanisms
// (the unifier vs. the kind solver).
func Conjuncts(c Constraint) (eqs []CEq, leqs []CKindLeq) {
	var walk func(Constraint)
	walk = func(c Constraint) {
		switch c := c.(type) {
		case CTrue:
		case CEq:
			eqs = append(eqs, c)
		case CKindLeq:
			leqs = append(leqs, c)
		case CAnd:
			walk(c.Left)
			walk(c.Right)
		}
	}
	walk(c)
	return eqs, leqs
}
