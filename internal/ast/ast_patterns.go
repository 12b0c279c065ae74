package ast

import (
	"strings"

	"github.com/affe-lang/affe/internal/names"
)

// Pattern is a binding-site pattern: the left-hand side of a Let, a
// Lambda parameter, or one arm of a Match.
type Pattern interface {
	patternNode()
	Position() Pos
	String() string
}

// PWildcard matches and binds nothing.
type PWildcard struct {
	Pos Pos
}

func (*PWildcard) patternNode()      {}
func (p *PWildcard) Position() Pos   { return p.Pos }
func (p *PWildcard) String() string  { return "_" }

// PVar binds the scrutinee to a single name. This is the only pattern
// form legal on the left of `let rec` (spec.md §4.7).
type PVar struct {
	Name names.Name
	Pos  Pos
}

func (*PVar) patternNode()      {}
func (p *PVar) Position() Pos   { return p.Pos }
func (p *PVar) String() string  { return p.Name.String() }

// PTuple destructures a tuple positionally.
type PTuple struct {
	Elems []Pattern
	Pos   Pos
}

func (*PTuple) patternNode()    {}
func (p *PTuple) Position() Pos { return p.Pos }
func (p *PTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// PatternVars returns, in left-to-right order, every name a pattern
// binds — used by the driver to know which names to Stash/exit-binder
// on the way out of the scope the pattern introduces.
func PatternVars(p Pattern) []names.Name {
	switch p := p.(type) {
	case *PWildcard:
		return nil
	case *PVar:
		return []names.Name{p.Name}
	case *PTuple:
		var out []names.Name
		for _, e := range p.Elems {
			out = append(out, PatternVars(e)...)
		}
		return out
	default:
		return nil
	}
}
