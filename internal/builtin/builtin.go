// Package builtin provides the precomputed initial environment spec.md
// §6 calls for: primitive schemes plus the fix-point combinator Y.
package builtin

import (
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// Int, Bool, String and Unit are the nullary type constructors with
// predeclared kind schemes, registered on the root Env at construction
// time.
const (
	Int    = "Int"
	Bool   = "Bool"
	String = "String"
	Unit   = "Unit"
)

func nullaryKindScheme() *types.KindScheme {
	return &types.KindScheme{Result: types.UnGlobal}
}

// Names records the interned Name assigned to each primitive NewEnv
// registers, since names.Interner.Fresh mints a new tag on every call
// and the label alone can't be looked back up against the Env later.
type Names struct {
	Plus, Minus, Times, Eq, Not, Y names.Name
}

// NewEnv returns a fresh root Env with Int/Bool/String/Unit registered
// as Un-Global nullary type constructors and a handful of scalar
// primitives plus the Y combinator bound as values, mirroring the
// teacher's NewTypeEnvWithBuiltins. The returned Names lets a caller
// build expressions that reference these bindings.
func NewEnv(interner *names.Interner) (*types.Env, Names) {
	env := types.NewEnv()

	for _, tc := range []string{Int, Bool, String, Unit} {
		env = env.ExtendTycon(tc, nullaryKindScheme())
	}

	var n Names
	n.Plus = interner.Fresh("+")
	n.Minus = interner.Fresh("-")
	n.Times = interner.Fresh("*")
	n.Eq = interner.Fresh("==")
	n.Not = interner.Fresh("not")
	n.Y = interner.Fresh("Y")

	env = env.Extend(n.Plus, arithScheme())
	env = env.Extend(n.Minus, arithScheme())
	env = env.Extend(n.Times, arithScheme())
	env = env.Extend(n.Eq, eqScheme())
	env = env.Extend(n.Not, notScheme())
	env = env.Extend(n.Y, yScheme())

	return env, n
}

func con(name string) types.Type { return &types.App{Con: name} }

// arithScheme gives `+`/`-`/`*` the type Int -> Int -{Un Never}-> Int;
// every argument and the arrow itself are Un Global/Never so arithmetic
// never constrains its operands' usage.
func arithScheme() *types.TypeScheme {
	intT := con(Int)
	return &types.TypeScheme{
		Body: &types.Arrow{
			Param: intT,
			Kind:  types.UnNever,
			Result: &types.Arrow{
				Param:  intT,
				Kind:   types.UnNever,
				Result: intT,
			},
		},
	}
}

func eqScheme() *types.TypeScheme {
	intT := con(Int)
	boolT := con(Bool)
	return &types.TypeScheme{
		Body: &types.Arrow{
			Param: intT,
			Kind:  types.UnNever,
			Result: &types.Arrow{
				Param:  intT,
				Kind:   types.UnNever,
				Result: boolT,
			},
		},
	}
}

func notScheme() *types.TypeScheme {
	boolT := con(Bool)
	return &types.TypeScheme{
		Body: &types.Arrow{Param: boolT, Kind: types.UnNever, Result: boolT},
	}
}

// yScheme is the fix-point combinator's scheme from spec.md §6:
// `(alpha -> alpha) -> alpha` with `alpha : Un`. Both arrows carry
// Un Never kinds since Y itself may be applied and reapplied freely.
func yScheme() *types.TypeScheme {
	alphaKind := types.KindGeneric{ID: 0}
	alpha := &types.GenericVar{ID: 0, Kind: alphaKind}
	selfArrow := &types.Arrow{Param: alpha, Kind: types.UnNever, Result: alpha}
	return &types.TypeScheme{
		KVars: []types.KindGeneric{alphaKind},
		TVars: []types.TypeVarBinding{{Var: alpha, Kind: alphaKind}},
		Constr: types.Leq(alphaKind, types.UnNever),
		Body:   &types.Arrow{Param: selfArrow, Kind: types.UnNever, Result: alpha},
	}
}
