// Package editor maintains the workspace editor settings in
// .vscode/settings.json.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/company/omnirepo/internal/filemanager"
	"github.com/tidwall/jsonc"
)

// SettingsPath is the settings file relative to the workspace root.
var SettingsPath = filepath.Join(".vscode", "settings.json")

// PythonDefaults are the formatter, linter and import settings written by
// init.
func PythonDefaults() map[string]any {
	return map[string]any{
		"python.formatting.provider":   "black",
		"python.formatting.blackArgs":  []any{"--line-length", "102"},
		"python.linting.flake8Enabled": true,
		"python.linting.mypyEnabled":   true,
		"python.linting.enabled":       true,
		"python.sortImports.args":      []any{"--profile=black", "--line-length=102"},
		"editor.formatOnSave":          true,
		"editor.codeActionsOnSave": map[string]any{
			"source.organizeImports": true,
			"source.fixAll":          true,
		},
	}
}

// Settings is a loaded settings file. Comments and trailing commas are
// accepted on load and not written back.
type Settings struct {
	path   string
	values map[string]any
}

// Load reads the settings file below root. A missing file yields empty
// settings.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, SettingsPath)
	s := &Settings{path: path, values: map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &s.values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.values == nil {
		s.values = map[string]any{}
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}

// Get returns a top-level value.
func (s *Settings) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Merge sets every key of values. Object values are merged one level deep
// so existing entries of the same object survive.
func (s *Settings) Merge(values map[string]any) {
	for key, v := range values {
		incoming, isObj := v.(map[string]any)
		existing, hasObj := s.values[key].(map[string]any)
		if isObj && hasObj {
			for k, iv := range incoming {
				existing[k] = iv
			}
			continue
		}
		s.values[key] = v
	}
}

// Save writes the settings with 2-space indentation, creating .vscode if
// needed.
func (s *Settings) Save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	data = append(data, '\n')
	if err := filemanager.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
