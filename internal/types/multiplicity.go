package types

import "github.com/affe-lang/affe/internal/names"

// Use is one entry in a name's usage record: Shadow (the binder has
// left scope and must not be used again), Borrow(mode, ks) (read or
// write references taken, not yet consumed), or Normal(ks) (ordinary
// value-position uses). Kinds accumulates one entry per site the name
// was used, per spec.md §3's Normal([k…])/Borrow(_, [k…]).
type Use struct {
	Shadow bool
	Borrow bool
	Mode   BorrowMode
	Kinds  []Kind
}

func shadowUse() Use { return Use{Shadow: true} }

func (u Use) label() string {
	switch {
	case u.Shadow:
		return "shadowed"
	case u.Borrow && u.Mode == Write:
		return "write-borrow"
	case u.Borrow:
		return "read-borrow"
	default:
		return "normal use"
	}
}

// M is the multiplicity map threaded through inference: one usage
// record per free name referenced by the expression under
// consideration (spec.md §3/§4.4).
type M map[names.Name]Use

// NewM returns an empty multiplicity map.
func NewM() M { return M{} }

// SeqMerge is the sequential-merge monoid (spec.md §4.4), used for
// composing sibling sub-expressions whose effects occur in program
// order. It mutates neither input map; the result is a fresh M plus
// whatever residual constraint the merge produced (the Un-Never
// obligation on repeated Normal use).
func SeqMerge(a, b M) (M, Constraint, error) {
	out := NewM()
	c := Constraint(CTrue{})
	for n, ua := range a {
		out[n] = ua
	}
	for n, ub := range b {
		ua, ok := out[n]
		if !ok {
			out[n] = ub
			continue
		}
		merged, mc, err := seqMergeUse(n, ua, ub)
		if err != nil {
			return nil, nil, err
		}
		out[n] = merged
		c = And(c, mc)
	}
	return out, c, nil
}

func seqMergeUse(n names.Name, a, b Use) (Use, Constraint, error) {
	switch {
	case a.Shadow:
		return b, CTrue{}, nil
	case b.Shadow:
		return a, CTrue{}, nil
	case a.Borrow && b.Borrow && a.Mode == Read && b.Mode == Read:
		return Use{Borrow: true, Mode: Read, Kinds: append(append([]Kind{}, a.Kinds...), b.Kinds...)}, CTrue{}, nil
	case !a.Borrow && !a.Shadow && !b.Borrow && !b.Shadow:
		// Normal ⊕ Normal: concatenate the kind lists, and require every
		// combined kind <= Un Never (the variable must be unrestricted
		// to be used more than once).
		combined := append(append([]Kind{}, a.Kinds...), b.Kinds...)
		c := Constraint(CTrue{})
		for _, k := range combined {
			c = And(c, Leq(k, UnNever))
		}
		return Use{Kinds: combined}, c, nil
	default:
		return Use{}, nil, NewUseMismatchError(n.String(), a.label(), b.label())
	}
}

// ParMerge is the parallel-merge monoid (spec.md §4.4), used to
// combine match-arm multiplicities — only one arm fires, so repeated
// Normal use across arms needs no Un-Never obligation.
func ParMerge(a, b M) (M, error) {
	out := NewM()
	for n, ua := range a {
		out[n] = ua
	}
	for n, ub := range b {
		ua, ok := out[n]
		if !ok {
			out[n] = ub
			continue
		}
		merged, err := parMergeUse(n, ua, ub)
		if err != nil {
			return nil, err
		}
		out[n] = merged
	}
	return out, nil
}

func parMergeUse(n names.Name, a, b Use) (Use, error) {
	switch {
	case a.Shadow && b.Shadow:
		return shadowUse(), nil
	case a.Borrow && b.Borrow && a.Mode == b.Mode:
		return Use{Borrow: true, Mode: a.Mode, Kinds: append(append([]Kind{}, a.Kinds...), b.Kinds...)}, nil
	case !a.Borrow && !a.Shadow && !b.Borrow && !b.Shadow:
		return Use{Kinds: append(append([]Kind{}, a.Kinds...), b.Kinds...)}, nil
	default:
		return Use{}, NewUseMismatchError(n.String(), a.label(), b.label())
	}
}

// ExitBinder applies the exit-binder rule: when n leaves scope with
// usage record m and declared kind k, emit k <= Aff Never if n has 0
// or >=2 Normal uses; a single Normal use, or any Borrow/Shadow state,
// needs no constraint.
func ExitBinder(m M, n names.Name, k Kind) Constraint {
	u, ok := m[n]
	if !ok {
		// zero uses: the binding must be discardable.
		return Leq(k, AffNever)
	}
	if u.Shadow || u.Borrow {
		return CTrue{}
	}
	if len(u.Kinds) == 1 {
		return CTrue{}
	}
	return Leq(k, AffNever)
}

// ExitScope applies the exit-scope rule: every Borrow entry currently
// open is downgraded to Shadow, so a subsequent reference in an outer
// scope fails cleanly rather than silently reusing a dead borrow.
func ExitScope(m M) M {
	out := NewM()
	for n, u := range m {
		if u.Borrow {
			out[n] = shadowUse()
			continue
		}
		out[n] = u
	}
	return out
}

// ExitRegion applies the exit-region rule: when leaving a
// Region(vars, e) construct, every borrow still open on one of the
// region-local vars must have a kind no less restrictive than region
// — otherwise the borrow could be smuggled out through a later use of
// the same name in an outer scope. Un is used as the qualifier floor
// so only the region component of the bound is forced; the qualifier
// itself is unconstrained here (spec.md §9 leaves the separate
// borrow-to-region qualifier constraint deliberately unimplemented).
func ExitRegion(m M, vars []names.Name, region names.Region) Constraint {
	c := Constraint(CTrue{})
	floor := KindConst{Qualifier: Un, Region: region}
	for _, n := range vars {
		u, ok := m[n]
		if !ok || !u.Borrow {
			continue
		}
		for _, k := range u.Kinds {
			c = And(c, Leq(floor, k))
		}
	}
	return c
}

// ConstraintAll implements constraint_all (spec.md §4.4): at arrow
// closure, every Normal-use kind in m must be <= the arrow's own kind,
// so that capturing a linear value forces a linear arrow.
func ConstraintAll(m M, arrowKind Kind) Constraint {
	c := Constraint(CTrue{})
	for _, u := range m {
		if u.Borrow || u.Shadow {
			continue
		}
		for _, k := range u.Kinds {
			c = And(c, Leq(k, arrowKind))
		}
	}
	return c
}
