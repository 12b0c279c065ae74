package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affe-lang/affe/internal/config"
	"github.com/affe-lang/affe/internal/names"
)

func TestLoad_ParsesAliasesAndFlag(t *testing.T) {
	cfg, err := config.Load("testdata/harness.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.RegionAliases, 2)
	assert.True(t, cfg.TraceSolver)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := config.Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestRegions_NestsAliasesByDepth(t *testing.T) {
	cfg, err := config.Load("testdata/harness.yaml")
	require.NoError(t, err)

	regions := cfg.Regions()
	assert.True(t, regions["Global"].Equals(names.Global))
	assert.True(t, regions["Never"].Equals(names.Never))

	request, ok := regions["request"]
	require.True(t, ok)
	connection, ok := regions["connection"]
	require.True(t, ok)
	assert.Equal(t, -1, names.Compare(request, connection))
}

func TestDefault_HasNoAliases(t *testing.T) {
	cfg := config.Default()
	regions := cfg.Regions()
	assert.Len(t, regions, 2) // just Global and Never
}
