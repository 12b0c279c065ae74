package types

import "strings"

// TypeVarBinding maps one quantified type variable to the kind it was
// generalised with (spec.md §3: "tyvars is an ordered list mapping a
// quantified type variable to its kind scheme").
type TypeVarBinding struct {
	Var  *GenericVar
	Kind Kind
}

// TypeScheme is a closed, re-instantiable type: quantified kind
// variables, an ordered list of quantified type variables with their
// kinds, a residual constraint over the quantified kind variables, and
// a body type.
type TypeScheme struct {
	KVars  []KindGeneric
	TVars  []TypeVarBinding
	Constr Constraint
	Body   Type
}

func (s *TypeScheme) String() string {
	if len(s.KVars) == 0 && len(s.TVars) == 0 {
		return s.Body.String()
	}
	var names []string
	for _, kv := range s.KVars {
		names = append(names, kv.String())
	}
	for _, tv := range s.TVars {
		names = append(names, tv.Var.String())
	}
	prefix := "∀" + strings.Join(names, " ") + ". "
	if _, ok := s.Constr.(CTrue); ok {
		return prefix + s.Body.String()
	}
	return prefix + "(" + s.Constr.String() + ") => " + s.Body.String()
}

// KindScheme is a type constructor's kind signature: the kinds its
// arguments must have, in order, and the kind of the resulting
// application, closed over a set of quantified kind variables.
type KindScheme struct {
	KVars  []KindGeneric
	Constr Constraint
	Args   []Kind
	Result Kind
}

func (s *KindScheme) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " -> ") + " => " + s.Result.String()
}
