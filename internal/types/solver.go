package types

// solverNode is either a variable or a lattice constant, used as a
// graph node key. Constants are keyed by value so two occurrences of
// the same constant collapse to one node.
type solverNode struct {
	v *KindVar   // nil if this node is a constant
	c KindConst  // meaningful only if v == nil
}

func nodeOf(k Kind) solverNode {
	switch k := ShortenKind(k).(type) {
	case *KindVar:
		return solverNode{v: k}
	case KindConst:
		return solverNode{c: k}
	default:
		// KindGeneric reaching the solver is an instantiation bug; treat
		// it as an opaque constant node so solving degrades gracefully
		// rather than panicking mid-declaration.
		return solverNode{c: KindConst{}}
	}
}

func (n solverNode) isVar() bool { return n.v != nil }

// Solve implements the §4.1 canonicalisation algorithm over a set of
// kind inequalities. keep names the variables that must survive in the
// returned normal form (the free variables of the result type/scheme
// and of scheme bodies already in the environment); edges between
// eliminable variables that don't participate in a path touching a
// kept variable or a constant are dropped.
func Solve(ineqs []CKindLeq, keep map[*KindVar]bool) ([]CKindLeq, error) {
	// 1-2: shorten and classify.
	type edge struct{ lo, hi solverNode }
	var edges []edge
	nodeSeen := map[solverNode]bool{}
	var nodes []solverNode

	addNode := func(n solverNode) {
		if !nodeSeen[n] {
			nodeSeen[n] = true
			nodes = append(nodes, n)
		}
	}

	for _, ineq := range ineqs {
		lo := nodeOf(ineq.Lower)
		hi := nodeOf(ineq.Upper)
		addNode(lo)
		addNode(hi)
		edges = append(edges, edge{lo, hi})

		// 5b: constant->constant edges must already respect the order.
		if !lo.isVar() && !hi.isVar() {
			if !constLeq(lo.c, hi.c) {
				return nil, NewIllegalEdgeError(KindConst(lo.c), KindConst(hi.c))
			}
		}
	}

	// 3-4: for each variable node, compute its constant lower bounds
	// (predecessors that are constants) and constant upper bounds
	// (successors that are constants).
	lowerConsts := map[solverNode][]KindConst{}
	upperConsts := map[solverNode][]KindConst{}
	for _, e := range edges {
		if !e.lo.isVar() && e.hi.isVar() {
			lowerConsts[e.hi] = append(lowerConsts[e.hi], e.lo.c)
		}
		if e.lo.isVar() && !e.hi.isVar() {
			upperConsts[e.lo] = append(upperConsts[e.lo], e.hi.c)
		}
	}

	for _, n := range nodes {
		if !n.isVar() {
			continue
		}
		los, hasLo := lowerConsts[n]
		his, hasHi := upperConsts[n]
		if !hasLo || !hasHi {
			continue
		}
		lub := los[0]
		for _, c := range los[1:] {
			lub = constMax(lub, c)
		}
		glb := his[0]
		for _, c := range his[1:] {
			glb = constMin(glb, c)
		}
		if !constLeq(lub, glb) {
			return nil, NewKindInfeasibleError(KindConst(lub), n.v, KindConst(glb))
		}
	}

	// 6: keep edges touching a constant or a kept variable; edges
	// between two eliminable variables are dropped unless they sit on
	// a path that would otherwise disconnect a kept node from a bound
	// it needs. A conservative, terminating approximation: retain an
	// eliminable-eliminable edge only if removing it would strand a
	// kept/constant node's reachability to another kept/constant node.
	// In practice the driver only ever calls Solve with `keep` already
	// covering every variable still reachable from the result type, so
	// this reduces to "drop edges where both endpoints are neither a
	// constant nor in keep".
	isRetained := func(n solverNode) bool {
		if !n.isVar() {
			return true
		}
		return keep[n.v]
	}

	var out []CKindLeq
	for _, e := range edges {
		if isRetained(e.lo) || isRetained(e.hi) {
			out = append(out, toIneq(e.lo, e.hi))
		}
	}
	return out, nil
}

func toIneq(lo, hi solverNode) CKindLeq {
	var lower, upper Kind
	if lo.isVar() {
		lower = lo.v
	} else {
		lower = lo.c
	}
	if hi.isVar() {
		upper = hi.v
	} else {
		upper = hi.c
	}
	return CKindLeq{Lower: lower, Upper: upper}
}

// Normalize runs Solve over the KindLeq conjuncts of c, discharging any
// CEq conjuncts into UnifyType first (spec.md §4.7: "the driver calls
// normalize which unifies pending equalities and solves the kind
// graph"). It returns the simplified constraint.
func Normalize(tycons TyconLookup, c Constraint, keep map[*KindVar]bool) (Constraint, error) {
	pending, leqs := Conjuncts(c)
	for len(pending) > 0 {
		eq := pending[0]
		pending = pending[1:]
		residual, err := UnifyType(tycons, eq.Left, eq.Right)
		if err != nil {
			return nil, err
		}
		moreEqs, moreLeqs := Conjuncts(residual)
		pending = append(pending, moreEqs...)
		leqs = append(leqs, moreLeqs...)
	}
	solved, err := Solve(leqs, keep)
	if err != nil {
		return nil, err
	}
	out := Constraint(CTrue{})
	for _, ineq := range solved {
		out = And(out, ineq)
	}
	return out, nil
}
