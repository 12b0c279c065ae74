package infer

import (
	"github.com/affe-lang/affe/internal/ast"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// bindPattern assigns a (possibly still-unknown) type to a pattern's
// shape, returning the type the scrutinee must unify against, a
// per-bound-name type map (a PTuple binds each leaf name to its own
// destructured sub-type, not the whole pattern's type), and any
// constraint discovered along the way. The caller still does the
// actual Stash/Bind/Unstash dance; bindPattern only computes types.
func (inf *Inferrer) bindPattern(p ast.Pattern) (types.Type, map[names.Name]types.Type, types.Constraint, error) {
	switch p := p.(type) {
	case *ast.PWildcard:
		return types.NewTypeVar(inf.level), nil, types.CTrue{}, nil

	case *ast.PVar:
		ty := types.Type(types.NewTypeVar(inf.level))
		return ty, map[names.Name]types.Type{p.Name: ty}, types.CTrue{}, nil

	case *ast.PTuple:
		elems := make([]types.Type, len(p.Elems))
		c := types.Constraint(types.CTrue{})
		binds := map[names.Name]types.Type{}
		for i, el := range p.Elems {
			ty, sub, ec, err := inf.bindPattern(el)
			if err != nil {
				return nil, nil, nil, err
			}
			elems[i] = ty
			c = types.And(c, ec)
			for n, t := range sub {
				binds[n] = t
			}
		}
		return &types.Tuple{Elems: elems}, binds, c, nil

	default:
		return types.NewTypeVar(inf.level), nil, types.CTrue{}, nil
	}
}
