package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affe-lang/affe/internal/names"
)

func TestRegion_GlobalIsLeastNeverIsGreatest(t *testing.T) {
	r := names.Fresh(names.Global)
	assert.True(t, names.Leq(names.Global, r))
	assert.True(t, names.Leq(r, names.Never))
	assert.False(t, names.Leq(names.Never, r))
}

func TestRegion_FreshNestsStrictlyDeeper(t *testing.T) {
	r1 := names.Fresh(names.Global)
	r2 := names.Fresh(r1)
	assert.Equal(t, -1, names.Compare(r1, r2))
	assert.False(t, r1.Equals(r2))
}

func TestRegion_MinMax(t *testing.T) {
	r1 := names.Fresh(names.Global)
	r2 := names.Fresh(r1)
	assert.True(t, names.Min(r1, r2).Equals(r1))
	assert.True(t, names.Max(r1, r2).Equals(r2))
}

func TestName_EqualsIsTagBased(t *testing.T) {
	in := names.NewInterner()
	a := in.Fresh("x")
	b := in.Fresh("x")
	assert.Equal(t, a.Label, b.Label)
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(a))
}
