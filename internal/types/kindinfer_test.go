package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/types"
)

func TestSynthKind_NullaryTycon(t *testing.T) {
	env := types.NewEnv().ExtendTycon("Int", &types.KindScheme{Result: types.UnGlobal})
	k, c, err := types.SynthKind(env, &types.App{Con: "Int"})
	require.NoError(t, err)
	assert.Equal(t, types.UnGlobal, k)
	assert.IsType(t, types.CTrue{}, c)
}

func TestSynthKind_UnknownTyconErrors(t *testing.T) {
	_, _, err := types.SynthKind(types.NewEnv(), &types.App{Con: "Nope"})
	require.Error(t, err)
}

func TestSynthKind_ArityMismatchErrors(t *testing.T) {
	env := types.NewEnv().ExtendTycon("Box", &types.KindScheme{
		Args:   []types.Kind{types.UnGlobal},
		Result: types.UnGlobal,
	})
	_, _, err := types.SynthKind(env, &types.App{Con: "Box"})
	require.Error(t, err)
}

func TestSynthKind_TupleTakesJoinOfElements(t *testing.T) {
	env := types.NewEnv().ExtendTycon("Int", &types.KindScheme{Result: types.UnGlobal})
	tup := &types.Tuple{Elems: []types.Type{&types.App{Con: "Int"}, &types.App{Con: "Int"}}}
	_, c, err := types.SynthKind(env, tup)
	require.NoError(t, err)
	_, leqs := types.Conjuncts(c)
	assert.Len(t, leqs, 2)
}

func TestInstantiateKindScheme_FreshensEachCall(t *testing.T) {
	g := types.KindGeneric{ID: 0}
	scheme := &types.KindScheme{
		KVars:  []types.KindGeneric{g},
		Args:   []types.Kind{g},
		Result: g,
	}
	a, err := types.InstantiateKindScheme(scheme, 1)
	require.NoError(t, err)
	b, err := types.InstantiateKindScheme(scheme, 1)
	require.NoError(t, err)
	assert.NotSame(t, a.Args[0], b.Args[0])
}
