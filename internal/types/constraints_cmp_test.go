package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// regionCmp treats two Regions as equal when Equals says so, since
// Region carries an unexported uuid tag go-cmp can't see into.
var regionCmp = cmp.Comparer(func(a, b names.Region) bool { return a.Equals(b) })

func TestConjuncts_StructurallyDiffersOnLowerBound(t *testing.T) {
	req := names.Fresh(names.Global)
	a := []types.CKindLeq{{Lower: types.UnGlobal, Upper: types.KindConst{Qualifier: types.Lin, Region: req}}}
	b := []types.CKindLeq{{Lower: types.AffNever, Upper: types.KindConst{Qualifier: types.Lin, Region: req}}}

	if diff := cmp.Diff(a, b, regionCmp); diff == "" {
		t.Fatalf("expected a diff between distinct lower bounds, got none")
	}
}

func TestConjuncts_MatchesSameShapeConstraint(t *testing.T) {
	req := names.Fresh(names.Global)
	build := func() []types.CKindLeq {
		return []types.CKindLeq{{Lower: types.UnGlobal, Upper: types.KindConst{Qualifier: types.Lin, Region: req}}}
	}
	a, b := build(), build()

	assert.Empty(t, cmp.Diff(a, b, regionCmp))
}

func TestConjuncts_SplitsEqAndLeqLeaves(t *testing.T) {
	x := types.NewTypeVar(0)
	eq := types.CEq{Left: x, Right: &types.App{Con: "Int"}}
	leq := types.Leq(types.UnGlobal, types.AffNever)
	c := types.And(eq, leq)

	eqs, leqs := types.Conjuncts(c)

	as := assert.New(t)
	as.Len(eqs, 1)
	as.Len(leqs, 1)
	as.Empty(cmp.Diff([]types.CKindLeq{{Lower: types.UnGlobal, Upper: types.AffNever}}, leqs, regionCmp))
}
