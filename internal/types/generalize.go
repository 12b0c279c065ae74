package types

import "sort"

// Generalize implements §4.6: given the ambient constraint and a
// result type produced at level ℓ, quantify every unification
// variable whose level is greater than ℓ, partition the simplified
// constraint between the scheme and the residue left for the caller,
// and build the scheme. generalize reports whether the caller's
// value-restriction check allowed generalisation at all; when false,
// the result is a trivial (non-quantifying) scheme wrapping the type
// as-is, per the value-restriction rule.
func Generalize(c Constraint, level int, generalize bool, body Type) (*TypeScheme, Constraint) {
	if !generalize {
		return &TypeScheme{Body: body}, c
	}

	vm := ComputeVariance(body)
	_, leqs := Conjuncts(c)

	freeT := map[*TypeVar]bool{}
	freeK := map[*KindVar]bool{}
	collectFreeTypeVars(body, level, freeT)
	for tv := range freeT {
		if kv, ok := ShortenKind(tv.Kind).(*KindVar); ok {
			freeK[kv] = true
		}
	}
	collectFreeKindVarsFromLeqs(leqs, level, freeK)

	keep := map[*KindVar]bool{}
	// nothing outside this scheme keeps these variables alive; keep is
	// only populated by the caller's enclosing env, which generalize's
	// caller (infer_top / the let-binding path) does not yet need here
	// since freeK already restricts to variables strictly deeper than
	// level, i.e. exactly the ones eligible for quantification.
	simplified := Simplify(leqs, vm, keep)

	// freeT/freeK are sets built by ranging over maps of free variables
	// discovered mid-traversal; iterating them directly would make the
	// quantifier order (and hence scheme.String()) depend on Go's
	// randomised map order instead of the program being checked. Sort
	// by minting id so the same declaration always generalises to the
	// same scheme text.
	tvarList := make([]*TypeVar, 0, len(freeT))
	for tv := range freeT {
		tvarList = append(tvarList, tv)
	}
	sort.Slice(tvarList, func(i, j int) bool { return tvarList[i].ID() < tvarList[j].ID() })

	kvarList := make([]*KindVar, 0, len(freeK))
	for kv := range freeK {
		kvarList = append(kvarList, kv)
	}
	sort.Slice(kvarList, func(i, j int) bool { return kvarList[i].ID() < kvarList[j].ID() })

	kGenOf := map[*KindVar]KindGeneric{}
	kvars := make([]KindGeneric, 0, len(kvarList))
	nextGenID := 0
	for _, kv := range kvarList {
		g := KindGeneric{ID: nextGenID}
		nextGenID++
		kGenOf[kv] = g
		kv.setLink(g)
		kvars = append(kvars, g)
	}

	tvars := make([]TypeVarBinding, 0, len(tvarList))
	for _, tv := range tvarList {
		gk := genericizeKind(tv.Kind, kGenOf)
		gv := &GenericVar{ID: nextGenID, Kind: gk}
		nextGenID++
		tv.setLink(gv)
		tvars = append(tvars, TypeVarBinding{Var: gv, Kind: gk})
	}

	// Partition: inequalities both of whose endpoints are now quantified
	// kind variables belong in the scheme's own constraint; the rest
	// remain outside for the caller to carry forward.
	var innerLeqs []CKindLeq
	var outerLeqs []CKindLeq
	for _, ineq := range simplified {
		lo := genericizeKind(ineq.Lower, kGenOf)
		hi := genericizeKind(ineq.Upper, kGenOf)
		if isQuantified(lo) && isQuantified(hi) {
			innerLeqs = append(innerLeqs, CKindLeq{Lower: lo, Upper: hi})
		} else {
			outerLeqs = append(outerLeqs, CKindLeq{Lower: lo, Upper: hi})
		}
	}

	inner := Constraint(CTrue{})
	for _, ineq := range innerLeqs {
		inner = And(inner, ineq)
	}
	outer := Constraint(CTrue{})
	for _, ineq := range outerLeqs {
		outer = And(outer, ineq)
	}

	scheme := &TypeScheme{
		KVars:  kvars,
		TVars:  tvars,
		Constr: inner,
		Body:   genericizeType(body, kGenOf),
	}
	return scheme, outer
}

func isQuantified(k Kind) bool {
	_, ok := k.(KindGeneric)
	return ok
}

func genericizeKind(k Kind, kGenOf map[*KindVar]KindGeneric) Kind {
	switch k := ShortenKind(k).(type) {
	case *KindVar:
		if g, ok := kGenOf[k]; ok {
			return g
		}
		return k
	default:
		return k
	}
}

func genericizeType(t Type, kGenOf map[*KindVar]KindGeneric) Type {
	switch t := Shorten(t).(type) {
	case *TypeVar:
		return t // already relinked to a *GenericVar by Generalize; Shorten follows it
	case *App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = genericizeType(a, kGenOf)
		}
		return &App{Con: t.Con, Args: args}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = genericizeType(e, kGenOf)
		}
		return &Tuple{Elems: elems}
	case *Arrow:
		return &Arrow{
			Param:  genericizeType(t.Param, kGenOf),
			Kind:   genericizeKind(t.Kind, kGenOf),
			Result: genericizeType(t.Result, kGenOf),
		}
	case *Borrow:
		return &Borrow{Mode: t.Mode, Kind: genericizeKind(t.Kind, kGenOf), Payload: genericizeType(t.Payload, kGenOf)}
	default:
		return t
	}
}

func collectFreeTypeVars(t Type, level int, out map[*TypeVar]bool) {
	switch t := Shorten(t).(type) {
	case *TypeVar:
		if t.IsUnbound() && t.Level() > level {
			out[t] = true
		}
	case *App:
		for _, a := range t.Args {
			collectFreeTypeVars(a, level, out)
		}
	case *Tuple:
		for _, e := range t.Elems {
			collectFreeTypeVars(e, level, out)
		}
	case *Arrow:
		collectFreeTypeVars(t.Param, level, out)
		collectFreeTypeVars(t.Result, level, out)
	case *Borrow:
		collectFreeTypeVars(t.Payload, level, out)
	}
}

func collectFreeKindVarsFromLeqs(leqs []CKindLeq, level int, out map[*KindVar]bool) {
	note := func(k Kind) {
		if v, ok := ShortenKind(k).(*KindVar); ok && v.IsUnbound() && v.Level() > level {
			out[v] = true
		}
	}
	for _, ineq := range leqs {
		note(ineq.Lower)
		note(ineq.Upper)
	}
}

// The value-restriction syntactic check (constants, lambdas, variables,
// borrows, tuples, regions, lets, matches, and empty arrays generalise;
// everything else, including every non-empty array and every
// application, does not; there are no data constructors, so no
// application is treated as non-expansive) walks
// surface syntax and so lives in internal/infer, which is the layer
// that actually sees expression nodes; it calls Generalize here with
// the resulting bool.
