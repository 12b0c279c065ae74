package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affe-lang/affe/internal/ast"
	"github.com/affe-lang/affe/internal/names"
)

func TestPatternVars(t *testing.T) {
	in := names.NewInterner()
	a := in.Fresh("a")
	b := in.Fresh("b")
	c := in.Fresh("c")

	p := &ast.PTuple{Elems: []ast.Pattern{
		&ast.PVar{Name: a},
		&ast.PWildcard{},
		&ast.PTuple{Elems: []ast.Pattern{
			&ast.PVar{Name: b},
			&ast.PVar{Name: c},
		}},
	}}

	got := ast.PatternVars(p)
	require := []names.Name{a, b, c}
	assert.Len(t, got, len(require))
	for i, n := range require {
		assert.True(t, n.Equals(got[i]))
	}
}

func TestPatternVars_Wildcard(t *testing.T) {
	assert.Nil(t, ast.PatternVars(&ast.PWildcard{}))
}
