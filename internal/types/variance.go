package types

// Polarity classifies how a kind variable's bound matters for
// simplification purposes: Pos (only its upper bound matters once
// generalised — it can be widened freely below that bound), Neg (only
// its lower bound matters), or Invar (both matter, conservatively the
// default under a type-constructor argument per spec.md §4.5's note
// that this is "only correct for covariant constructors").
type Polarity int

const (
	Pos Polarity = iota
	Neg
	Invar
)

func joinPolarity(a, b Polarity) Polarity {
	if a == b {
		return a
	}
	return Invar
}

func flip(p Polarity) Polarity {
	switch p {
	case Pos:
		return Neg
	case Neg:
		return Pos
	default:
		return Invar
	}
}

// VarianceMap records the computed polarity of every kind variable
// reachable from a set of result types.
type VarianceMap map[*KindVar]Polarity

func (vm VarianceMap) record(k Kind, p Polarity) {
	v, ok := ShortenKind(k).(*KindVar)
	if !ok {
		return
	}
	if existing, has := vm[v]; has {
		vm[v] = joinPolarity(existing, p)
	} else {
		vm[v] = p
	}
}

// ComputeVariance walks each result type covariantly and returns the
// polarity of every kind (unification) variable reachable from it.
func ComputeVariance(results ...Type) VarianceMap {
	vm := VarianceMap{}
	for _, t := range results {
		walkVariance(t, Pos, vm)
	}
	return vm
}

func walkVariance(t Type, p Polarity, vm VarianceMap) {
	switch t := Shorten(t).(type) {
	case *TypeVar:
		vm.record(t.Kind, p)
	case *GenericVar:
		vm.record(t.Kind, p)
	case *App:
		for _, a := range t.Args {
			// conservative: invariant under constructor arguments
			// (spec.md §4.5 — only correct for covariant constructors).
			walkVariance(a, Invar, vm)
		}
	case *Tuple:
		for _, e := range t.Elems {
			walkVariance(e, p, vm)
		}
	case *Arrow:
		vm.record(t.Kind, p)
		walkVariance(t.Param, flip(p), vm)
		walkVariance(t.Result, p, vm)
	case *Borrow:
		vm.record(t.Kind, p)
		walkVariance(t.Payload, p, vm)
	}
}

// Simplify drops inequalities that carry no information for the
// retained polarities: for a Pos-only variable, only its upper bound
// matters, so a lower-bound edge where the variable is itself
// eliminable (not in keep) and purely positive can be dropped; Neg is
// the mirror image. Invar variables keep every edge.
func Simplify(ineqs []CKindLeq, vm VarianceMap, keep map[*KindVar]bool) []CKindLeq {
	var out []CKindLeq
	for _, ineq := range ineqs {
		if dropByVariance(ineq, vm, keep) {
			continue
		}
		out = append(out, ineq)
	}
	return out
}

func dropByVariance(ineq CKindLeq, vm VarianceMap, keep map[*KindVar]bool) bool {
	lowerVar, lowerIsVar := ShortenKind(ineq.Lower).(*KindVar)
	upperVar, upperIsVar := ShortenKind(ineq.Upper).(*KindVar)

	// lower <= upperConst: this edge supplies `lower` a constant upper
	// bound, which is exactly what a purely positive eliminable
	// variable needs kept; it's the mirror edges below that go dead.
	if upperIsVar && !lowerIsVar && !keep[upperVar] {
		if p, ok := vm[upperVar]; ok && p == Pos {
			// upperVar is purely positive: its lower bounds (this edge
			// supplying it as an upper bound's lower bound) are unused
			// once it's eliminated and widened to its least upper bound.
			return true
		}
	}
	if lowerIsVar && !upperIsVar && !keep[lowerVar] {
		if p, ok := vm[lowerVar]; ok && p == Neg {
			return true
		}
	}
	return false
}
