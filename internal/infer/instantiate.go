package infer

import "github.com/affe-lang/affe/internal/types"

// instKind substitutes a scheme's quantified kind variables for fresh
// cells. A closed scheme body only ever contains KindConst or
// KindGeneric at a Kind position (Generalize genericizes every
// reachable kind var), so anything else passes through unchanged.
func instKind(k types.Kind, ksub map[int]types.Kind) types.Kind {
	if g, ok := k.(types.KindGeneric); ok {
		if r, ok := ksub[g.ID]; ok {
			return r
		}
	}
	return k
}

// instType substitutes a scheme's quantified type variables (by their
// GenericVar.ID) for the fresh cells instantiate minted, threading the
// parallel kind substitution into every Arrow/Borrow kind slot.
func instType(t types.Type, sub map[int]types.Type, ksub map[int]types.Kind) types.Type {
	switch t := t.(type) {
	case *types.GenericVar:
		if r, ok := sub[t.ID]; ok {
			return r
		}
		return t
	case *types.App:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = instType(a, sub, ksub)
		}
		return &types.App{Con: t.Con, Args: args}
	case *types.Tuple:
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = instType(e, sub, ksub)
		}
		return &types.Tuple{Elems: elems}
	case *types.Arrow:
		return &types.Arrow{
			Param:  instType(t.Param, sub, ksub),
			Kind:   instKind(t.Kind, ksub),
			Result: instType(t.Result, sub, ksub),
		}
	case *types.Borrow:
		return &types.Borrow{
			Mode:    t.Mode,
			Kind:    instKind(t.Kind, ksub),
			Payload: instType(t.Payload, sub, ksub),
		}
	default:
		return t
	}
}

// instConstraint rewrites a scheme's residual constraint (always built
// from CKindLeq leaves over quantified kind variables, per Generalize)
// in terms of the fresh kind cells instantiate minted.
func instConstraint(c types.Constraint, ksub map[int]types.Kind) types.Constraint {
	switch c := c.(type) {
	case types.CTrue:
		return c
	case types.CKindLeq:
		return types.Leq(instKind(c.Lower, ksub), instKind(c.Upper, ksub))
	case types.CAnd:
		return types.And(instConstraint(c.Left, ksub), instConstraint(c.Right, ksub))
	case types.CEq:
		return c
	default:
		return c
	}
}
