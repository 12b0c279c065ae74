package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affe-lang/affe/internal/types"
)

func TestComputeVariance_ArrowFlipsParamPolarity(t *testing.T) {
	param := types.NewKindVar(1)
	result := types.NewKindVar(1)
	paramVar := types.NewTypeVarLike(1, param)
	resultVar := types.NewTypeVarLike(1, result)
	arrow := &types.Arrow{Param: paramVar, Kind: types.NewKindVar(1), Result: resultVar}

	vm := types.ComputeVariance(arrow)
	assert.Equal(t, types.Neg, vm[param])
	assert.Equal(t, types.Pos, vm[result])
}

func TestComputeVariance_AppArgsAreInvariant(t *testing.T) {
	k := types.NewKindVar(1)
	tv := types.NewTypeVarLike(1, k)
	app := &types.App{Con: "Box", Args: []types.Type{tv}}

	vm := types.ComputeVariance(app)
	assert.Equal(t, types.Invar, vm[k])
}

func TestSimplify_DropsDeadEdgeForPositiveVar(t *testing.T) {
	v := types.NewKindVar(1)
	vm := types.VarianceMap{v: types.Pos}
	ineqs := []types.CKindLeq{{Lower: types.UnGlobal, Upper: v}}

	out := types.Simplify(ineqs, vm, map[*types.KindVar]bool{})
	assert.Empty(t, out)
}

func TestSimplify_KeepsEdgeForKeptVar(t *testing.T) {
	v := types.NewKindVar(1)
	vm := types.VarianceMap{v: types.Pos}
	ineqs := []types.CKindLeq{{Lower: types.UnGlobal, Upper: v}}

	out := types.Simplify(ineqs, vm, map[*types.KindVar]bool{v: true})
	assert.Len(t, out, 1)
}
