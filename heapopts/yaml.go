package heapopts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// file is the on-disk shape LoadConfig decodes: the allocator Config plus a
// named list of memory regions the CLI can hand to Engine.Create, so a
// test rig can describe its whole heap layout in one file instead of flags.
type file struct {
	Config  Config       `yaml:",inline"`
	Regions []RegionSpec `yaml:"regions"`
}

// RegionSpec names a byte region a config file wants registered as a heap.
// Size is parsed as plain bytes by the loader in cmd/heapctl, which
// understands human-readable suffixes (see its use of go-bytesize); here it
// is kept as a string so heapopts has no CLI-formatting dependency.
type RegionSpec struct {
	Name string `yaml:"name"`
	Size string `yaml:"size"`
}

// LoadConfig reads and validates a Config (plus any named regions) from a
// YAML file, in the same spirit as compileopts reading build options from a
// target JSON file: decode, then Validate before handing it back.
func LoadConfig(path string) (Config, []RegionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("heapopts: reading %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, nil, fmt.Errorf("heapopts: parsing %s: %w", path, err)
	}

	cfg := f.Config.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, fmt.Errorf("heapopts: %s: %w", path, err)
	}
	return cfg, f.Regions, nil
}
