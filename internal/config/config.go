// Package config loads the CLI harness's ambient configuration: named
// region aliases, which the REPL lists under :regions (`affe check`
// does not use them), and a solver trace flag that is parsed but not
// read anywhere. None of this is read by the core checker
// itself (internal/infer.InferTop takes a bare *types.Env) — it is
// strictly a harness concern, modelled on the teacher's
// internal/eval_harness.BenchmarkSpec/LoadSpec.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/affe-lang/affe/internal/names"
)

// RegionAlias names an intermediate point in the region lattice
// between names.Global and names.Never, ordered by Depth (shallower
// aliases nest outside deeper ones).
type RegionAlias struct {
	Name  string `yaml:"name"`
	Depth int    `yaml:"depth"`
}

// HarnessConfig is the CLI's own state, distinct from anything
// InferTop consumes.
type HarnessConfig struct {
	RegionAliases []RegionAlias `yaml:"region_aliases"`
	TraceSolver   bool          `yaml:"trace_solver"`
}

// Load reads a HarnessConfig from a YAML file.
func Load(path string) (*HarnessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read harness config: %w", err)
	}
	var cfg HarnessConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse harness config: %w", err)
	}
	for _, a := range cfg.RegionAliases {
		if a.Name == "" {
			return nil, fmt.Errorf("harness config: region alias missing name")
		}
	}
	return &cfg, nil
}

// Default returns an empty, valid HarnessConfig (no aliases beyond the
// two lattice extremes, solver tracing off).
func Default() *HarnessConfig {
	return &HarnessConfig{}
}

// Regions mints one names.Region per configured alias, nested in
// ascending Depth order starting from names.Global, plus the two
// lattice extremes under their conventional keys.
func (c *HarnessConfig) Regions() map[string]names.Region {
	aliases := append([]RegionAlias(nil), c.RegionAliases...)
	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Depth < aliases[j].Depth })

	out := map[string]names.Region{
		"Global": names.Global,
		"Never":  names.Never,
	}
	cur := names.Global
	for _, a := range aliases {
		cur = names.Fresh(cur)
		out[a.Name] = cur
	}
	return out
}
