package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/types"
)

func TestGeneralize_QuantifiesFreshVars(t *testing.T) {
	level := 1
	tv := types.NewTypeVar(level + 1)
	arrow := &types.Arrow{Param: tv, Kind: types.NewKindVar(level + 1), Result: tv}

	scheme, residue := types.Generalize(types.CTrue{}, level, true, arrow)
	require.Len(t, scheme.TVars, 1)
	assert.IsType(t, types.CTrue{}, residue)

	body, ok := scheme.Body.(*types.Arrow)
	require.True(t, ok)
	_, isGeneric := body.Param.(*types.GenericVar)
	assert.True(t, isGeneric)
}

func TestGeneralize_ValueRestrictionSkipsQuantification(t *testing.T) {
	level := 1
	tv := types.NewTypeVar(level + 1)

	scheme, residue := types.Generalize(types.CTrue{}, level, false, tv)
	assert.Empty(t, scheme.TVars)
	assert.Empty(t, scheme.KVars)
	assert.Same(t, tv, scheme.Body)
	assert.IsType(t, types.CTrue{}, residue)
}

func TestGeneralize_DoesNotQuantifyAmbientVars(t *testing.T) {
	level := 1
	ambient := types.NewTypeVar(level) // at or below level: stays free
	scheme, _ := types.Generalize(types.CTrue{}, level, true, ambient)
	assert.Empty(t, scheme.TVars)
	assert.Same(t, ambient, scheme.Body)
}
