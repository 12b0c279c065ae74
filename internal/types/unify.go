package types

// UnifyKind implements unify_kind (spec.md §4.2): classical union-find
// over the Link indirection, with level-adjustment on link.
func UnifyKind(a, b Kind) error {
	a = ShortenKind(a)
	b = ShortenKind(b)

	if a == b {
		return nil
	}

	if ca, ok := a.(KindConst); ok {
		if cb, ok := b.(KindConst); ok {
			if ca.Equal(cb) {
				return nil
			}
			return NewKindMismatchError(a, b)
		}
	}

	if va, ok := a.(*KindVar); ok {
		return linkKindVar(va, b)
	}
	if vb, ok := b.(*KindVar); ok {
		return linkKindVar(vb, a)
	}

	// Both sides are constants (handled above) or one is a KindGeneric,
	// which can only occur if instantiation was skipped — an invariant
	// violation rather than a user-facing mismatch.
	return NewKindMismatchError(a, b)
}

// linkKindVar links v to target, first lowering the level of any
// unbound cells reachable from target (kinds are non-recursive, so no
// occurs-check can ever fail here, per spec.md §4.2).
func linkKindVar(v *KindVar, target Kind) error {
	target = ShortenKind(target)
	if other, ok := target.(*KindVar); ok && other == v {
		return nil
	}
	adjustKindLevel(target, v.Level())
	v.setLink(target)
	return nil
}

func adjustKindLevel(k Kind, level int) {
	k = ShortenKind(k)
	if v, ok := k.(*KindVar); ok && v.IsUnbound() {
		v.SetLevel(level)
	}
}

// UnifyType implements unify_type (spec.md §4.2). It returns the
// residual kind constraint produced along the way (kind equalities
// from borrows, and the kind equalities embedded in arrow unification
// are performed eagerly via UnifyKind; what's left over here is
// whatever the caller wants solved at the next normalize boundary).
func UnifyType(tycons TyconLookup, a, b Type) (Constraint, error) {
	a = Shorten(a)
	b = Shorten(b)

	if a == b {
		return CTrue{}, nil
	}

	if va, ok := a.(*TypeVar); ok {
		return bindTypeVar(tycons, va, b)
	}
	if vb, ok := b.(*TypeVar); ok {
		return bindTypeVar(tycons, vb, a)
	}

	switch ta := a.(type) {
	case *App:
		tb, ok := b.(*App)
		if !ok || ta.Con != tb.Con || len(ta.Args) != len(tb.Args) {
			return nil, NewTypeMismatchError(a, b)
		}
		c := Constraint(CTrue{})
		for i := range ta.Args {
			ci, err := UnifyType(tycons, ta.Args[i], tb.Args[i])
			if err != nil {
				return nil, err
			}
			c = And(c, ci)
		}
		return c, nil

	case *Tuple:
		tb, ok := b.(*Tuple)
		if !ok || len(ta.Elems) != len(tb.Elems) {
			return nil, NewTypeMismatchError(a, b)
		}
		c := Constraint(CTrue{})
		for i := range ta.Elems {
			ci, err := UnifyType(tycons, ta.Elems[i], tb.Elems[i])
			if err != nil {
				return nil, err
			}
			c = And(c, ci)
		}
		return c, nil

	case *Arrow:
		tb, ok := b.(*Arrow)
		if !ok {
			return nil, NewTypeMismatchError(a, b)
		}
		// contravariant in the parameter
		cParam, err := UnifyType(tycons, tb.Param, ta.Param)
		if err != nil {
			return nil, err
		}
		cResult, err := UnifyType(tycons, ta.Result, tb.Result)
		if err != nil {
			return nil, err
		}
		if err := UnifyKind(ta.Kind, tb.Kind); err != nil {
			return nil, err
		}
		return And(cParam, cResult), nil

	case *Borrow:
		tb, ok := b.(*Borrow)
		if !ok || ta.Mode != tb.Mode {
			return nil, NewTypeMismatchError(a, b)
		}
		cPayload, err := UnifyType(tycons, ta.Payload, tb.Payload)
		if err != nil {
			return nil, err
		}
		// same borrow kind-flavour: kind equality, both directions
		kindEq := And(Leq(ta.Kind, tb.Kind), Leq(tb.Kind, ta.Kind))
		return And(kindEq, cPayload), nil

	default:
		return nil, NewTypeMismatchError(a, b)
	}
}

// bindTypeVar handles the "one side Unbound" rule: occurs-check,
// level-adjust, unify the two sides' kinds by equality, then link.
func bindTypeVar(tycons TyconLookup, v *TypeVar, target Type) (Constraint, error) {
	target = Shorten(target)
	if other, ok := target.(*TypeVar); ok && other == v {
		return CTrue{}, nil
	}
	if occursType(v, target) {
		return nil, NewRecursiveTypeError(v, target)
	}
	adjustTypeLevel(target, v.Level())

	kt, c, err := SynthKind(tycons, target)
	if err != nil {
		return nil, err
	}
	if err := UnifyKind(v.Kind, kt); err != nil {
		return nil, err
	}

	v.setLink(target)
	return c, nil
}

func adjustTypeLevel(t Type, level int) {
	t = Shorten(t)
	switch t := t.(type) {
	case *TypeVar:
		if t.IsUnbound() {
			t.SetLevel(level)
		}
	case *App:
		for _, a := range t.Args {
			adjustTypeLevel(a, level)
		}
	case *Tuple:
		for _, e := range t.Elems {
			adjustTypeLevel(e, level)
		}
	case *Arrow:
		adjustTypeLevel(t.Param, level)
		adjustTypeLevel(t.Result, level)
	case *Borrow:
		adjustTypeLevel(t.Payload, level)
	}
}

func occursType(v *TypeVar, t Type) bool {
	t = Shorten(t)
	switch t := t.(type) {
	case *TypeVar:
		return t == v
	case *App:
		for _, a := range t.Args {
			if occursType(v, a) {
				return true
			}
		}
		return false
	case *Tuple:
		for _, e := range t.Elems {
			if occursType(v, e) {
				return true
			}
		}
		return false
	case *Arrow:
		return occursType(v, t.Param) || occursType(v, t.Result)
	case *Borrow:
		return occursType(v, t.Payload)
	default:
		return false
	}
}
