package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

func freshName(label string) names.Name {
	return names.NewInterner().Fresh(label)
}

func TestSeqMerge_RepeatedNormalUseRequiresUnNever(t *testing.T) {
	n := freshName("x")
	k := types.NewKindVar(0)
	a := types.M{n: {Kinds: []types.Kind{k}}}
	b := types.M{n: {Kinds: []types.Kind{k}}}

	merged, c, err := types.SeqMerge(a, b)
	require.NoError(t, err)
	assert.Len(t, merged[n].Kinds, 2)
	eqs, leqs := types.Conjuncts(c)
	assert.Empty(t, eqs)
	assert.NotEmpty(t, leqs)
}

func TestSeqMerge_ReadBorrowsCombine(t *testing.T) {
	n := freshName("x")
	a := types.M{n: {Borrow: true, Mode: types.Read}}
	b := types.M{n: {Borrow: true, Mode: types.Read}}

	merged, c, err := types.SeqMerge(a, b)
	require.NoError(t, err)
	assert.True(t, merged[n].Borrow)
	assert.IsType(t, types.CTrue{}, c)
}

func TestSeqMerge_ReadThenWriteBorrowConflicts(t *testing.T) {
	n := freshName("x")
	a := types.M{n: {Borrow: true, Mode: types.Read}}
	b := types.M{n: {Borrow: true, Mode: types.Write}}

	_, _, err := types.SeqMerge(a, b)
	require.Error(t, err)
}

func TestParMerge_IdenticalArmsNoResidue(t *testing.T) {
	n := freshName("x")
	k := types.NewKindVar(0)
	a := types.M{n: {Kinds: []types.Kind{k}}}
	b := types.M{n: {Kinds: []types.Kind{k}}}

	merged, err := types.ParMerge(a, b)
	require.NoError(t, err)
	assert.Len(t, merged[n].Kinds, 2)
}

func TestExitBinder_ZeroUsesRequiresAffNever(t *testing.T) {
	n := freshName("x")
	k := types.NewKindVar(0)
	c := types.ExitBinder(types.NewM(), n, k)
	leqs := []types.CKindLeq{}
	_, ls := types.Conjuncts(c)
	leqs = append(leqs, ls...)
	require.Len(t, leqs, 1)
	assert.Equal(t, types.AffNever, leqs[0].Upper)
}

func TestExitBinder_SingleUseIsFree(t *testing.T) {
	n := freshName("x")
	k := types.NewKindVar(0)
	m := types.M{n: {Kinds: []types.Kind{types.NewKindVar(0)}}}
	c := types.ExitBinder(m, n, k)
	assert.IsType(t, types.CTrue{}, c)
}

func TestExitScope_DowngradesBorrowsToShadow(t *testing.T) {
	n := freshName("x")
	m := types.M{n: {Borrow: true, Mode: types.Read}}
	out := types.ExitScope(m)
	assert.True(t, out[n].Shadow)
}

func TestConstraintAll_NormalUsesConstrainArrowKind(t *testing.T) {
	n := freshName("x")
	k := types.NewKindVar(0)
	arrowKind := types.NewKindVar(0)
	m := types.M{n: {Kinds: []types.Kind{k}}}
	c := types.ConstraintAll(m, arrowKind)
	_, leqs := types.Conjuncts(c)
	require.Len(t, leqs, 1)
	assert.Equal(t, k, leqs[0].Lower)
	assert.Equal(t, arrowKind, leqs[0].Upper)
}
