package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

func TestSolve_DropsEliminableEdges(t *testing.T) {
	v := types.NewKindVar(0)
	w := types.NewKindVar(0)
	ineqs := []types.CKindLeq{{Lower: v, Upper: w}}
	out, err := types.Solve(ineqs, map[*types.KindVar]bool{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSolve_KeepsEdgesTouchingKeptVar(t *testing.T) {
	v := types.NewKindVar(0)
	ineqs := []types.CKindLeq{{Lower: types.UnGlobal, Upper: v}}
	out, err := types.Solve(ineqs, map[*types.KindVar]bool{v: true})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestSolve_RejectsInfeasibleConstantEdge(t *testing.T) {
	ineqs := []types.CKindLeq{{Lower: types.LinNever, Upper: types.UnGlobal}}
	_, err := types.Solve(ineqs, map[*types.KindVar]bool{})
	require.Error(t, err)
}

func TestSolve_RejectsInfeasibleBounds(t *testing.T) {
	v := types.NewKindVar(0)
	ineqs := []types.CKindLeq{
		{Lower: types.LinNever, Upper: v},
		{Lower: v, Upper: types.UnGlobal},
	}
	_, err := types.Solve(ineqs, map[*types.KindVar]bool{})
	require.Error(t, err)
}

// TestSolve_CrossDimensionPairIsIncomparable exercises the product
// order at a pair the lattice genuinely doesn't decide either way:
// Aff at the outermost region versus Un at a nested one. Neither
// Qualifier nor Region dominates the other, so an edge asserting
// either direction must be rejected as an illegal constant edge — a
// lexicographic order (qualifier-first, region as tiebreak) would
// wrongly accept one of these two.
func TestSolve_CrossDimensionPairIsIncomparable(t *testing.T) {
	nested := names.Fresh(names.Global)
	affOuter := types.KindConst{Qualifier: types.Aff, Region: names.Global}
	unNested := types.KindConst{Qualifier: types.Un, Region: nested}

	_, err := types.Solve([]types.CKindLeq{{Lower: affOuter, Upper: unNested}}, map[*types.KindVar]bool{})
	assert.Error(t, err, "Aff Global <= Un nested should not hold: Aff > Un")

	_, err = types.Solve([]types.CKindLeq{{Lower: unNested, Upper: affOuter}}, map[*types.KindVar]bool{})
	assert.Error(t, err, "Un nested <= Aff Global should not hold: nested region is more restrictive than Global")
}

func TestNormalize_DischargesEqualitiesFirst(t *testing.T) {
	v := types.NewTypeVar(0)
	c := types.CEq{Left: v, Right: &types.App{Con: "Int"}}
	env := types.NewEnv().ExtendTycon("Int", &types.KindScheme{Result: types.UnGlobal})
	out, err := types.Normalize(env, c, map[*types.KindVar]bool{})
	require.NoError(t, err)
	assert.IsType(t, types.CTrue{}, out)
	assert.Equal(t, "Int", types.Shorten(v).String())
}
