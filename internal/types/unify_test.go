package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/types"
)

func intApp() types.Type { return &types.App{Con: "Int"} }
func boolApp() types.Type { return &types.App{Con: "Bool"} }

// scalarEnv registers the Int and Bool constructors, so that binding a
// variable to one of them can synthesise its kind.
func scalarEnv() *types.Env {
	return types.NewEnv().
		ExtendTycon("Int", &types.KindScheme{Result: types.UnGlobal}).
		ExtendTycon("Bool", &types.KindScheme{Result: types.UnGlobal})
}

func TestUnifyType_SameConst(t *testing.T) {
	c, err := types.UnifyType(types.NewEnv(), intApp(), intApp())
	require.NoError(t, err)
	assert.IsType(t, types.CTrue{}, c)
}

func TestUnifyType_MismatchedConst(t *testing.T) {
	_, err := types.UnifyType(types.NewEnv(), intApp(), boolApp())
	require.Error(t, err)
}

func TestUnifyType_BindsUnboundVar(t *testing.T) {
	v := types.NewTypeVar(0)
	_, err := types.UnifyType(scalarEnv(), v, intApp())
	require.NoError(t, err)
	assert.False(t, v.IsUnbound())
	assert.Equal(t, "Int", types.Shorten(v).String())
}

func TestUnifyType_OccursCheck(t *testing.T) {
	v := types.NewTypeVar(0)
	self := &types.Arrow{Param: v, Kind: types.NewKindVar(0), Result: v}
	_, err := types.UnifyType(types.NewEnv(), v, self)
	require.Error(t, err)
}

func TestUnifyType_ArrowContravariantParam(t *testing.T) {
	p1 := types.NewTypeVar(0)
	a := &types.Arrow{Param: p1, Kind: types.NewKindVar(0), Result: intApp()}
	b := &types.Arrow{Param: boolApp(), Kind: types.NewKindVar(0), Result: intApp()}
	_, err := types.UnifyType(scalarEnv(), a, b)
	require.NoError(t, err)
	assert.Equal(t, "Bool", types.Shorten(p1).String())
}

func TestUnifyType_TupleArityMismatch(t *testing.T) {
	a := &types.Tuple{Elems: []types.Type{intApp()}}
	b := &types.Tuple{Elems: []types.Type{intApp(), boolApp()}}
	_, err := types.UnifyType(types.NewEnv(), a, b)
	require.Error(t, err)
}

func TestUnifyKind_ConstEquality(t *testing.T) {
	err := types.UnifyKind(types.UnGlobal, types.UnGlobal)
	require.NoError(t, err)
	err = types.UnifyKind(types.UnGlobal, types.LinNever)
	require.Error(t, err)
}

func TestUnifyKind_LinksVar(t *testing.T) {
	v := types.NewKindVar(0)
	require.NoError(t, types.UnifyKind(v, types.UnGlobal))
	assert.Equal(t, types.UnGlobal, types.ShortenKind(v))
}
