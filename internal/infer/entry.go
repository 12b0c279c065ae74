package infer

import (
	"sort"

	"github.com/affe-lang/affe/internal/ast"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// InferTop is the harness's entry point for one top-level value
// declaration (spec.md §6): infer one level deeper, generalise at
// level 0, check that the residue left by generalisation is still
// solvable, and return that residue with env extended by the new
// binding. The returned environment is not trimmed: it keeps every
// binding env already had.
func InferTop(env *types.Env, recFlag bool, name names.Name, expr ast.Expr) (types.Constraint, *types.Env, *types.TypeScheme, error) {
	inf := New(env)

	var result Result
	var err error
	if recFlag {
		pv := &ast.PVar{Name: name}
		result, err = inf.inferLetRecTop(pv, expr)
	} else {
		inf.enterLevel()
		result, err = inf.Infer(expr)
		inf.exitLevel()
	}
	if err != nil {
		return nil, nil, nil, err
	}

	scheme, outerC := types.Generalize(result.C, 0, IsNonExpansive(expr) || recFlag, result.T)

	// Verify the residue: anything left over after generalisation at
	// level 0 must still be solvable on its own, even though nothing
	// outside this declaration holds its variables free any longer.
	if _, err := types.Normalize(env, outerC, map[*types.KindVar]bool{}); err != nil {
		return nil, nil, nil, err
	}

	env2 := env.Extend(name, scheme)
	return outerC, env2, scheme, nil
}

// inferLetRecTop runs the let-rec driver rule directly on a top-level
// binding, without a body to return into (the harness supplies the
// rest of the program across separate InferTop calls).
func (inf *Inferrer) inferLetRecTop(pv *ast.PVar, value ast.Expr) (Result, error) {
	inf.enterLevel()
	selfTy := types.NewTypeVar(inf.level)
	selfScheme := &types.TypeScheme{Body: selfTy}

	frame := inf.Env.Stash(pv.Name)
	frame.Bind(pv.Name, selfScheme)

	valRes, err := inf.inferRaw(value)
	if err != nil {
		frame.Unstash()
		inf.exitLevel()
		return Result{}, err
	}

	eqC, err := types.UnifyType(inf.Env, selfTy, valRes.T)
	frame.Unstash()
	inf.exitLevel()
	if err != nil {
		return Result{}, err
	}

	kindC := types.Leq(selfTy.Kind, types.UnNever)
	c, err := inf.normalize(types.And(types.And(valRes.C, eqC), kindC))
	if err != nil {
		return Result{}, err
	}
	return Result{M: withoutName(valRes.M, pv.Name), C: c, T: valRes.T}, nil
}

// MakeTypeDecl introduces a new type constructor named con (spec.md
// §6): synthesise kinds for its constructors' payload types and
// collect the constraints that produces, generalise the declaration's
// own residual constraint over the kind variables of kindArgs and
// kind, and return the environment extended with the new type
// constructor alongside its kind scheme. The payload kinds are not
// unified with or bounded by kindArgs or kind.
func MakeTypeDecl(env *types.Env, con string, constr types.Constraint, kindArgs []types.Kind, kind types.Kind, constructorArgTypes [][]types.Type) (*types.Env, *types.KindScheme, error) {
	c := constr
	for _, argTypes := range constructorArgTypes {
		for _, t := range argTypes {
			_, tc, err := types.SynthKind(env, t)
			if err != nil {
				return nil, nil, err
			}
			c = types.And(c, tc)
		}
	}

	freeK := map[*types.KindVar]bool{}
	for _, k := range kindArgs {
		if v, ok := types.ShortenKind(k).(*types.KindVar); ok {
			freeK[v] = true
		}
	}
	if v, ok := types.ShortenKind(kind).(*types.KindVar); ok {
		freeK[v] = true
	}
	_, leqs := types.Conjuncts(c)
	simplified := types.Simplify(leqs, types.VarianceMap{}, freeK)

	// Range over freeK directly and the resulting kvars order would
	// follow Go's randomised map iteration rather than the declaration
	// being checked; sort by minting id first so repeated runs agree.
	freeKList := make([]*types.KindVar, 0, len(freeK))
	for v := range freeK {
		freeKList = append(freeKList, v)
	}
	sort.Slice(freeKList, func(i, j int) bool { return freeKList[i].ID() < freeKList[j].ID() })

	kGenOf := map[*types.KindVar]types.KindGeneric{}
	nextID := 0
	kvars := make([]types.KindGeneric, 0, len(freeK))
	for _, v := range freeKList {
		g := types.KindGeneric{ID: nextID}
		nextID++
		kGenOf[v] = g
		kvars = append(kvars, g)
	}

	genArg := func(k types.Kind) types.Kind {
		if v, ok := types.ShortenKind(k).(*types.KindVar); ok {
			if g, ok := kGenOf[v]; ok {
				return g
			}
		}
		return k
	}

	args := make([]types.Kind, len(kindArgs))
	for i, k := range kindArgs {
		args[i] = genArg(k)
	}
	result := genArg(kind)

	inner := types.Constraint(types.CTrue{})
	for _, ineq := range simplified {
		inner = types.And(inner, types.CKindLeq{Lower: genArg(ineq.Lower), Upper: genArg(ineq.Upper)})
	}

	scheme := &types.KindScheme{KVars: kvars, Constr: inner, Args: args, Result: result}
	return env.ExtendTycon(con, scheme), scheme, nil
}

// MakeTypeScheme computes a closed scheme for a user-written type
// annotation (spec.md §6): synthesise the annotation's own kind (to
// catch malformed annotations early) then generalise fully, since a
// user annotation is never subject to the value restriction.
func MakeTypeScheme(env *types.Env, constr types.Constraint, ty types.Type) (*types.Env, *types.TypeScheme, error) {
	_, tc, err := types.SynthKind(env, ty)
	if err != nil {
		return nil, nil, err
	}
	scheme, _ := types.Generalize(types.And(constr, tc), -1, true, ty)
	return env, scheme, nil
}
