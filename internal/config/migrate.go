package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LegacyConfigFile is the JSON registry written by earlier releases.
const LegacyConfigFile = "omnirepo-config.json"

// LegacyConfigExists checks whether the old JSON registry exists in the given directory.
func LegacyConfigExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, LegacyConfigFile))
	return err == nil
}

// MigrateLegacy reads the old JSON registry and converts it into a Config.
// JSON is a subset of YAML, so the same decoder keeps category order.
// It does NOT delete the old file. The caller should do that after saving
// the migrated registry.
func MigrateLegacy(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, LegacyConfigFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("legacy config not found")
		}
		return nil, fmt.Errorf("reading legacy config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing legacy config: %w", err)
	}
	if err := ValidateConfig(&c); err != nil {
		return nil, fmt.Errorf("legacy config: %w", err)
	}
	return &c, nil
}
