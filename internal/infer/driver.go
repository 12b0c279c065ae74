// Package infer implements the syntax-directed inference driver of
// spec.md §4.7 and the three harness entry points of §6.
package infer

import (
	"github.com/affe-lang/affe/internal/ast"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// Inferrer holds the mutable state a single top-level declaration's
// inference run threads through: the current generalisation level, the
// innermost enclosing region, and the environment being extended. It
// is not safe to share across concurrent declarations (spec.md §5)
// since cells it mints are mutated in place.
type Inferrer struct {
	Env    *types.Env
	level  int
	region names.Region
}

// New starts an Inferrer at level 0 over the given environment, with
// no enclosing region narrower than Global.
func New(env *types.Env) *Inferrer {
	return &Inferrer{Env: env, level: 0, region: names.Global}
}

func (inf *Inferrer) enterLevel() { inf.level++ }
func (inf *Inferrer) exitLevel()  { inf.level-- }

// Result is the (M, C, τ) part of the driver's (M, E, C, τ) tuple; E
// is threaded via inf.Env (and Stash/Unstash frames around pattern
// binders) rather than returned, since only Let and top-level
// declarations actually extend it permanently.
type Result struct {
	M types.M
	C types.Constraint
	T types.Type
}

// Infer dispatches on the expression's dynamic type, implementing each
// rule of spec.md §4.7 in turn, then calls normalize once on the whole
// expression's constraint. Sub-expressions are inferred through
// inferRaw, which does not normalize, so the constraints of inner
// rules are solved only at this outermost call.
func (inf *Inferrer) Infer(e ast.Expr) (Result, error) {
	r, err := inf.inferRaw(e)
	if err != nil {
		return Result{}, err
	}
	c, err := inf.normalize(r.C)
	if err != nil {
		return Result{}, err
	}
	r.C = c
	return r, nil
}

func (inf *Inferrer) inferRaw(e ast.Expr) (Result, error) {
	switch e := e.(type) {
	case *ast.Const:
		return inf.inferConst(e)
	case *ast.Var:
		return inf.inferVar(e)
	case *ast.Borrow:
		return inf.inferBorrow(e)
	case *ast.ReBorrow:
		return inf.inferReBorrow(e)
	case *ast.Lambda:
		return inf.inferLambda(e)
	case *ast.App:
		return inf.inferApp(e)
	case *ast.Tuple:
		return inf.inferTuple(e)
	case *ast.Array:
		return inf.inferArray(e)
	case *ast.Let:
		return inf.inferLet(e)
	case *ast.Match:
		return inf.inferMatch(e)
	case *ast.Region:
		return inf.inferRegion(e)
	default:
		return Result{}, types.NewUnknownNameError("<unhandled expression form>")
	}
}

// normalize unifies pending equalities and solves the kind graph,
// keeping every kind variable free in the enclosing environment (and
// hence not yet eligible for elimination).
func (inf *Inferrer) normalize(c types.Constraint) (types.Constraint, error) {
	keep := map[*types.KindVar]bool{}
	for kv := range inf.Env.FreeKindVars(-1) {
		keep[kv] = true
	}
	return types.Normalize(inf.Env, c, keep)
}

func (inf *Inferrer) inferConst(e *ast.Const) (Result, error) {
	scheme, err := inf.Env.LookupTycon(e.Tycon)
	if err != nil {
		return Result{}, err
	}
	if _, err := types.InstantiateKindScheme(scheme, 0); err != nil {
		return Result{}, err
	}
	return Result{M: types.NewM(), C: types.CTrue{}, T: &types.App{Con: e.Tycon}}, nil
}

func (inf *Inferrer) inferVar(e *ast.Var) (Result, error) {
	scheme, err := inf.Env.Lookup(e.Name)
	if err != nil {
		return Result{}, err
	}
	ty, kind, c := inf.instantiate(scheme)
	m := types.NewM()
	m[e.Name] = types.Use{Kinds: []types.Kind{kind}}
	return Result{M: m, C: c, T: ty}, nil
}

func (inf *Inferrer) inferBorrow(e *ast.Borrow) (Result, error) {
	scheme, err := inf.Env.Lookup(e.Name)
	if err != nil {
		return Result{}, err
	}
	ty, _, c := inf.instantiate(scheme)
	fresh := types.NewKindVar(inf.level)
	m := types.NewM()
	m[e.Name] = types.Use{Borrow: true, Mode: e.Mode, Kinds: []types.Kind{fresh}}
	return Result{M: m, C: c, T: &types.Borrow{Mode: e.Mode, Kind: fresh, Payload: ty}}, nil
}

func (inf *Inferrer) inferReBorrow(e *ast.ReBorrow) (Result, error) {
	scheme, err := inf.Env.Lookup(e.Name)
	if err != nil {
		return Result{}, err
	}
	ty, _, c := inf.instantiate(scheme)

	payload := types.NewTypeVar(inf.level)
	sourceKind := types.NewKindVar(inf.level)
	source := &types.Borrow{Mode: types.Write, Kind: sourceKind, Payload: payload}
	eqC, err := types.UnifyType(inf.Env, ty, source)
	if err != nil {
		return Result{}, err
	}

	fresh := types.NewKindVar(inf.level)
	m := types.NewM()
	m[e.Name] = types.Use{Borrow: true, Mode: e.Mode, Kinds: []types.Kind{fresh}}
	return Result{
		M: m,
		C: types.And(c, eqC),
		T: &types.Borrow{Mode: e.Mode, Kind: fresh, Payload: payload},
	}, nil
}

func (inf *Inferrer) inferLambda(e *ast.Lambda) (Result, error) {
	pvars := ast.PatternVars(e.Param)
	paramTy, binds, bindC, err := inf.bindPattern(e.Param)
	if err != nil {
		return Result{}, err
	}

	frame := inf.Env.Stash(pvars...)
	for _, n := range pvars {
		frame.Bind(n, &types.TypeScheme{Body: binds[n]})
	}

	bodyRes, err := inf.inferRaw(e.Body)
	if err != nil {
		frame.Unstash()
		return Result{}, err
	}
	frame.Unstash()

	arrowKind := types.NewKindVar(inf.level)
	closureC := types.ConstraintAll(bodyRes.M, arrowKind)

	exitC := types.Constraint(types.CTrue{})
	if pv, ok := e.Param.(*ast.PVar); ok {
		paramKind, _, _ := types.SynthKind(inf.Env, paramTy)
		exitC = types.ExitBinder(bodyRes.M, pv.Name, paramKind)
	}

	m := bodyRes.M
	for _, n := range pvars {
		m = withoutName(m, n)
	}

	c := types.And(types.And(types.And(bindC, bodyRes.C), closureC), exitC)
	return Result{
		M: m,
		C: c,
		T: &types.Arrow{Param: paramTy, Kind: arrowKind, Result: bodyRes.T},
	}, nil
}

func (inf *Inferrer) inferApp(e *ast.App) (Result, error) {
	fnRes, err := inf.inferRaw(e.Fn)
	if err != nil {
		return Result{}, err
	}
	m := fnRes.M
	c := fnRes.C
	fnTy := fnRes.T

	for _, argExpr := range e.Args {
		argRes, err := inf.inferRaw(argExpr)
		if err != nil {
			return Result{}, err
		}
		merged, mc, err := types.SeqMerge(m, argRes.M)
		if err != nil {
			return Result{}, err
		}
		m = merged

		retTy := types.NewTypeVar(inf.level)
		arrowKind := types.NewKindVar(inf.level)
		expected := &types.Arrow{Param: argRes.T, Kind: arrowKind, Result: retTy}
		eqC, err := types.UnifyType(inf.Env, fnTy, expected)
		if err != nil {
			return Result{}, err
		}

		c = types.And(types.And(types.And(c, argRes.C), mc), eqC)
		fnTy = retTy
	}

	return Result{M: m, C: c, T: fnTy}, nil
}

func (inf *Inferrer) inferTuple(e *ast.Tuple) (Result, error) {
	m := types.NewM()
	c := types.Constraint(types.CTrue{})
	elems := make([]types.Type, len(e.Elems))
	for i, el := range e.Elems {
		res, err := inf.inferRaw(el)
		if err != nil {
			return Result{}, err
		}
		merged, mc, err := types.SeqMerge(m, res.M)
		if err != nil {
			return Result{}, err
		}
		m = merged
		c = types.And(types.And(c, res.C), mc)
		elems[i] = res.T
	}
	return Result{M: m, C: c, T: &types.Tuple{Elems: elems}}, nil
}

func (inf *Inferrer) inferArray(e *ast.Array) (Result, error) {
	m := types.NewM()
	c := types.Constraint(types.CTrue{})
	elemTy := types.Type(types.NewTypeVar(inf.level))
	for _, el := range e.Elems {
		res, err := inf.inferRaw(el)
		if err != nil {
			return Result{}, err
		}
		merged, mc, err := types.SeqMerge(m, res.M)
		if err != nil {
			return Result{}, err
		}
		m = merged
		eqC, err := types.UnifyType(inf.Env, elemTy, res.T)
		if err != nil {
			return Result{}, err
		}
		c = types.And(types.And(types.And(c, res.C), mc), eqC)
	}
	return Result{M: m, C: c, T: &types.App{Con: "Array", Args: []types.Type{elemTy}}}, nil
}

func (inf *Inferrer) inferLet(e *ast.Let) (Result, error) {
	if e.Rec {
		pv, ok := e.Pattern.(*ast.PVar)
		if !ok {
			return Result{}, types.NewIllegalRecLHSError(e.Pattern.String())
		}
		return inf.inferLetRec(pv, e.Value, e.Body)
	}

	inf.enterLevel()
	valRes, err := inf.inferRaw(e.Value)
	if err != nil {
		inf.exitLevel()
		return Result{}, err
	}
	inf.exitLevel()

	pvars := ast.PatternVars(e.Pattern)
	frame := inf.Env.Stash(pvars...)
	var schemeKinds map[names.Name]types.Kind
	var outerC types.Constraint = types.CTrue{}

	if pv, ok := e.Pattern.(*ast.PVar); ok {
		// the single-variable case gets full let-polymorphism.
		scheme, residual := types.Generalize(valRes.C, inf.level, IsNonExpansive(e.Value), valRes.T)
		outerC = residual
		frame.Bind(pv.Name, scheme)
		schemeKinds = map[names.Name]types.Kind{pv.Name: inf.schemeKind(scheme)}
	} else {
		// compound patterns destructure monomorphically: unify the
		// pattern's shape against the value's inferred type and bind
		// each leaf name to its own component, unquantified.
		patTy, binds, bindC, err := inf.bindPattern(e.Pattern)
		if err != nil {
			frame.Unstash()
			return Result{}, err
		}
		eqC, err := types.UnifyType(inf.Env, valRes.T, patTy)
		if err != nil {
			frame.Unstash()
			return Result{}, err
		}
		outerC = types.And(valRes.C, types.And(bindC, eqC))
		schemeKinds = map[names.Name]types.Kind{}
		for _, n := range pvars {
			frame.Bind(n, &types.TypeScheme{Body: binds[n]})
			k, _, _ := types.SynthKind(inf.Env, binds[n])
			schemeKinds[n] = k
		}
	}

	bodyRes, err := inf.inferRaw(e.Body)
	if err != nil {
		frame.Unstash()
		return Result{}, err
	}
	frame.Unstash()

	exitC := types.Constraint(types.CTrue{})
	for _, n := range pvars {
		exitC = types.And(exitC, types.ExitBinder(bodyRes.M, n, schemeKinds[n]))
	}

	merged, mc, err := types.SeqMerge(valRes.M, bodyRes.M)
	if err != nil {
		return Result{}, err
	}
	for _, n := range pvars {
		merged = withoutName(merged, n)
	}

	c := types.And(types.And(types.And(types.And(outerC, mc), bodyRes.C), exitC), types.CTrue{})
	return Result{M: merged, C: c, T: bodyRes.T}, nil
}

func (inf *Inferrer) inferLetRec(pv *ast.PVar, value ast.Expr, body ast.Expr) (Result, error) {
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
	if err != nil {
		frame.Unstash()
		inf.exitLevel()
		return Result{}, err
	}
	// recursive self-reference is shared: the binder's own kind must be
	// unrestricted.
	kindC := types.Leq(selfTy.Kind, types.UnNever)
	frame.Unstash()
	inf.exitLevel()

	scheme, outerC := types.Generalize(types.And(types.And(valRes.C, eqC), kindC), inf.level, IsNonExpansive(value), valRes.T)

	bodyFrame := inf.Env.Stash(pv.Name)
	bodyFrame.Bind(pv.Name, scheme)
	bodyRes, err := inf.inferRaw(body)
	if err != nil {
		bodyFrame.Unstash()
		return Result{}, err
	}
	bodyFrame.Unstash()

	exitC := types.ExitBinder(bodyRes.M, pv.Name, inf.schemeKind(scheme))
	m := withoutName(bodyRes.M, pv.Name)

	c := types.And(types.And(outerC, bodyRes.C), exitC)
	return Result{M: m, C: c, T: bodyRes.T}, nil
}

func (inf *Inferrer) inferMatch(e *ast.Match) (Result, error) {
	scrutRes, err := inf.inferRaw(e.Scrutinee)
	if err != nil {
		return Result{}, err
	}

	resultTy := types.Type(types.NewTypeVar(inf.level))
	var armM types.M
	c := scrutRes.C

	for i, arm := range e.Arms {
		patTy, binds, bindC, err := inf.bindPattern(arm.Pattern)
		if err != nil {
			return Result{}, err
		}
		scrutExpect := patTy
		if e.Modifier != ast.MatchByValue {
			mode := types.Read
			if e.Modifier == ast.MatchByWriteBorrow {
				mode = types.Write
			}
			// Binding under a borrow wraps only the scrutinee's side of
			// the equation; each arm variable still gets its own
			// unwrapped destructured type, per spec.md §4.7's by-borrow
			// match rule.
			scrutExpect = &types.Borrow{Mode: mode, Kind: types.NewKindVar(inf.level), Payload: patTy}
		}

		eqC, err := types.UnifyType(inf.Env, scrutRes.T, scrutExpect)
		if err != nil {
			return Result{}, err
		}

		pvars := ast.PatternVars(arm.Pattern)
		frame := inf.Env.Stash(pvars...)
		for _, n := range pvars {
			frame.Bind(n, &types.TypeScheme{Body: binds[n]})
		}
		bodyRes, err := inf.inferRaw(arm.Body)
		frame.Unstash()
		if err != nil {
			return Result{}, err
		}

		bodyEqC, err := types.UnifyType(inf.Env, resultTy, bodyRes.T)
		if err != nil {
			return Result{}, err
		}

		exitC := types.Constraint(types.CTrue{})
		if pv, ok := arm.Pattern.(*ast.PVar); ok {
			armKind, _, _ := types.SynthKind(inf.Env, binds[pv.Name])
			exitC = types.ExitBinder(bodyRes.M, pv.Name, armKind)
		}

		armResult := bodyRes.M
		for _, n := range pvars {
			armResult = withoutName(armResult, n)
		}

		if i == 0 {
			armM = armResult
		} else {
			armM, err = types.ParMerge(armM, armResult)
			if err != nil {
				return Result{}, err
			}
		}
		c = types.And(types.And(types.And(types.And(c, bindC), eqC), bodyEqC), exitC)
	}

	merged, mc, err := types.SeqMerge(scrutRes.M, armM)
	if err != nil {
		return Result{}, err
	}
	c = types.And(c, mc)

	return Result{M: merged, C: c, T: resultTy}, nil
}

func (inf *Inferrer) inferRegion(e *ast.Region) (Result, error) {
	outerRegion := inf.region
	inf.region = names.Fresh(outerRegion)
	inf.enterLevel()
	bodyRes, err := inf.inferRaw(e.Body)
	inf.exitLevel()
	ell := inf.region
	inf.region = outerRegion
	if err != nil {
		return Result{}, err
	}

	// exit-region (spec.md §4.4): any borrow still open on a
	// region-local var must have a kind no less restrictive than ell,
	// so it cannot be smuggled out via an outer use of the same name.
	regionC := types.ExitRegion(bodyRes.M, e.Vars, ell)

	m := bodyRes.M
	for _, n := range e.Vars {
		m = types.ExitScope(m)
		m = withoutName(m, n)
	}

	// Region rule (spec.md §4.7): the escaping result must itself be
	// first-class at the outer level — bounded above by Lin(ell).
	resultKind, _, _ := types.SynthKind(inf.Env, bodyRes.T)
	firstClassC := types.Leq(resultKind, types.FirstClass(ell))

	c := types.And(types.And(bodyRes.C, regionC), firstClassC)
	return Result{M: m, C: c, T: bodyRes.T}, nil
}

// instantiate replaces a scheme's quantified variables with fresh
// cells at the current level, returning the instantiated body, a
// synthesised top-level kind for the body (used to record the Var
// rule's Normal use), and the instantiated residual constraint.
func (inf *Inferrer) instantiate(s *types.TypeScheme) (types.Type, types.Kind, types.Constraint) {
	sub := make(map[int]types.Type, len(s.TVars))
	ksub := make(map[int]types.Kind, len(s.KVars))
	for _, kv := range s.KVars {
		ksub[kv.ID] = types.NewKindVar(inf.level)
	}
	for _, tv := range s.TVars {
		ksub2 := instKind(tv.Kind, ksub)
		sub[tv.Var.ID] = types.NewTypeVarLike(inf.level, ksub2)
	}
	body := instType(s.Body, sub, ksub)
	c := instConstraint(s.Constr, ksub)
	kind, _, _ := types.SynthKind(inf.Env, body)
	return body, kind, c
}

func withoutName(m types.M, n names.Name) types.M {
	out := types.NewM()
	for k, v := range m {
		if k.Equals(n) {
			continue
		}
		out[k] = v
	}
	return out
}

func (inf *Inferrer) schemeKind(s *types.TypeScheme) types.Kind {
	kind, _, _ := types.SynthKind(inf.Env, s.Body)
	return kind
}
