package types

import "fmt"

// TyconLookup resolves a type constructor name to its kind scheme.
// *Env satisfies this via its LookupTycon method; SynthKind takes one
// explicitly rather than consulting package-level state, since kind
// schemes for type constructors are themselves scoped to an
// environment the same way value schemes are.
type TyconLookup interface {
	LookupTycon(name string) (*KindScheme, error)
}

// SynthKind implements the §4.3 kind-inference-for-types procedure: for
// any type term, return its synthesised kind together with whatever
// residual constraint was generated along the way.
func SynthKind(tycons TyconLookup, t Type) (Kind, Constraint, error) {
	t = Shorten(t)
	switch t := t.(type) {
	case *TypeVar:
		return t.Kind, CTrue{}, nil

	case *GenericVar:
		return t.Kind, CTrue{}, nil

	case *App:
		scheme, err := tycons.LookupTycon(t.Con)
		if err != nil {
			return nil, nil, err
		}
		inst, err := InstantiateKindScheme(scheme, len(t.Args))
		if err != nil {
			return nil, nil, err
		}
		c := Constraint(inst.Constr)
		for i, arg := range t.Args {
			ak, ac, err := SynthKind(tycons, arg)
			if err != nil {
				return nil, nil, err
			}
			if err := UnifyKind(ak, inst.Args[i]); err != nil {
				return nil, nil, err
			}
			c = And(c, ac)
		}
		return inst.Result, c, nil

	case *Tuple:
		level := 0
		for _, e := range t.Elems {
			if v, ok := e.(*TypeVar); ok && v.IsUnbound() {
				level = v.Level()
			}
		}
		kappa := NewKindVar(level)
		c := Constraint(CTrue{})
		for _, e := range t.Elems {
			ek, ec, err := SynthKind(tycons, e)
			if err != nil {
				return nil, nil, err
			}
			c = And(c, ec)
			c = And(c, Leq(ek, kappa))
		}
		return kappa, c, nil

	case *Arrow:
		return t.Kind, CTrue{}, nil

	case *Borrow:
		return t.Kind, CTrue{}, nil

	default:
		return nil, nil, fmt.Errorf("types: SynthKind: unhandled type form %T", t)
	}
}

// instKindScheme holds one use-site instantiation of a KindScheme: the
// scheme's quantified kind variables replaced by fresh cells, with the
// constraint and argument/result kinds rewritten to match.
type instKindScheme struct {
	Constr Constraint
	Args   []Kind
	Result Kind
}

// InstantiateKindScheme replaces a kind scheme's quantified variables
// with fresh cells at the current (unspecified — callers rewrite level
// afterward if needed) level, and checks the supplied argument count.
func InstantiateKindScheme(s *KindScheme, argc int) (*instKindScheme, error) {
	if argc != len(s.Args) {
		return nil, NewArityMismatchError(len(s.Args), argc)
	}
	sub := make(map[int]Kind, len(s.KVars))
	for _, kv := range s.KVars {
		sub[kv.ID] = NewKindVar(0)
	}
	return &instKindScheme{
		Constr: substKindGenerics(s.Constr, sub),
		Args:   substKindArgs(s.Args, sub),
		Result: substKindGeneric(s.Result, sub),
	}, nil
}

func substKindGeneric(k Kind, sub map[int]Kind) Kind {
	switch k := k.(type) {
	case KindGeneric:
		if r, ok := sub[k.ID]; ok {
			return r
		}
		return k
	default:
		return k
	}
}

func substKindArgs(ks []Kind, sub map[int]Kind) []Kind {
	out := make([]Kind, len(ks))
	for i, k := range ks {
		out[i] = substKindGeneric(k, sub)
	}
	return out
}

func substKindGenerics(c Constraint, sub map[int]Kind) Constraint {
	switch c := c.(type) {
	case nil:
		return CTrue{}
	case CTrue:
		return c
	case CKindLeq:
		return CKindLeq{Lower: substKindGeneric(c.Lower, sub), Upper: substKindGeneric(c.Upper, sub)}
	case CAnd:
		return And(substKindGenerics(c.Left, sub), substKindGenerics(c.Right, sub))
	case CEq:
		return c
	default:
		return c
	}
}
