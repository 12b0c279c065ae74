package catalogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/catalogue"
	"github.com/affe-lang/affe/internal/names"
)

func TestAll_EveryEntryBuildsWithDistinctNames(t *testing.T) {
	in := names.NewInterner()
	seenDescribe := map[string]bool{}
	for _, s := range catalogue.All() {
		require.NotEmpty(t, s.Name)
		require.NotEmpty(t, s.Describe)
		assert.False(t, seenDescribe[s.Name], "duplicate sample name %q", s.Name)
		seenDescribe[s.Name] = true

		expr := s.Build(in)
		require.NotNil(t, expr)
	}
}
