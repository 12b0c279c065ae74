package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/builtin"
	"github.com/affe-lang/affe/internal/catalogue"
	"github.com/affe-lang/affe/internal/infer"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

// TestCatalogue_EndToEndScenarios runs every spec.md §8 end-to-end
// scenario through InferTop and checks the documented outcome: a
// printed scheme for the samples expected to succeed, an error for the
// two expected to fail (bad_borrow on its conflicting borrows, occurs
// on the occurs-check).
func TestCatalogue_EndToEndScenarios(t *testing.T) {
	wantErr := map[string]bool{
		"bad_borrow": true,
		"occurs":     true,
	}

	for _, sample := range catalogue.All() {
		sample := sample
		t.Run(sample.Name, func(t *testing.T) {
			in := names.NewInterner()
			env, _ := builtin.NewEnv(in)
			n := in.Fresh(sample.Name)
			expr := sample.Build(in)

			_, _, scheme, err := infer.InferTop(env, sample.Rec, n, expr)
			if wantErr[sample.Name] {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, scheme)
		})
	}
}

func TestCatalogue_Id_IsUnrestrictedIdentity(t *testing.T) {
	in := names.NewInterner()
	env, _ := builtin.NewEnv(in)
	var sample catalogue.Sample
	for _, s := range catalogue.All() {
		if s.Name == "id" {
			sample = s
		}
	}
	n := in.Fresh(sample.Name)
	_, _, scheme, err := infer.InferTop(env, sample.Rec, n, sample.Build(in))
	require.NoError(t, err)

	require.Len(t, scheme.TVars, 1)
	assert.Len(t, scheme.KVars, 1, "the kind of id's type variable is quantified with it")
}

func TestCatalogue_Bad_ForcesUnrestrictedParam(t *testing.T) {
	in := names.NewInterner()
	env, _ := builtin.NewEnv(in)
	var sample catalogue.Sample
	for _, s := range catalogue.All() {
		if s.Name == "bad" {
			sample = s
		}
	}
	n := in.Fresh(sample.Name)
	residue, _, scheme, err := infer.InferTop(env, sample.Rec, n, sample.Build(in))
	require.NoError(t, err)
	assert.NotNil(t, scheme)
	// duplicating x inside the tuple forces its kind <= Un Never. The
	// bound's upper end is a constant, not a quantified kind variable,
	// so Generalize leaves it out of the scheme's own constraint and
	// InferTop returns it in the residue.
	_, leqs := types.Conjuncts(residue)
	forced := false
	for _, l := range leqs {
		if l.Upper == types.Kind(types.UnNever) {
			forced = true
		}
	}
	assert.True(t, forced, "expected a <= Un Never bound in the residue")
}
