package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/builtin"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

func TestNewEnv_RegistersNullaryTycons(t *testing.T) {
	env, _ := builtin.NewEnv(names.NewInterner())
	for _, tc := range []string{builtin.Int, builtin.Bool, builtin.String, builtin.Unit} {
		scheme, err := env.LookupTycon(tc)
		require.NoError(t, err)
		assert.Equal(t, types.UnGlobal, scheme.Result)
	}
}

func TestNewEnv_ArithIsUnrestricted(t *testing.T) {
	in := names.NewInterner()
	env, n := builtin.NewEnv(in)
	scheme, err := env.Lookup(n.Plus)
	require.NoError(t, err)

	arrow, ok := scheme.Body.(*types.Arrow)
	require.True(t, ok)
	assert.Equal(t, types.UnNever, arrow.Kind)
}

func TestNewEnv_YCombinatorIsPolymorphic(t *testing.T) {
	in := names.NewInterner()
	env, n := builtin.NewEnv(in)
	scheme, err := env.Lookup(n.Y)
	require.NoError(t, err)
	assert.Len(t, scheme.TVars, 1)
	assert.Len(t, scheme.KVars, 1)
}
