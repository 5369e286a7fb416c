// Package config reads and writes the workspace registry file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/company/omnirepo/internal/filemanager"
	"gopkg.in/yaml.v3"
)

const ConfigFile = "omnirepo-config.yml"

// Config is the registry persisted at the workspace root.
type Config struct {
	Workspace string   `yaml:"workspace"`
	Author    string   `yaml:"author"`
	Packages  Packages `yaml:"packages"`
}

// New returns an empty registry for a freshly initialized workspace.
func New(workspace, author string) *Config {
	return &Config{Workspace: workspace, Author: author}
}

// Clone returns a deep copy so a mutation can be staged without touching c.
func (c *Config) Clone() *Config {
	return &Config{
		Workspace: c.Workspace,
		Author:    c.Author,
		Packages:  c.Packages.Clone(),
	}
}

// ConfigExists checks whether the registry file exists in the given directory.
func ConfigExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFile))
	return err == nil
}

// Load reads the registry from dir. The boolean is false, with a nil error,
// when dir has no registry file.
func Load(dir string) (*Config, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading config: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// Parse decodes and validates registry content.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := ValidateConfig(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal renders the registry with two-space indentation. Equal configs
// always render to identical bytes.
func Marshal(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveConfig overwrites the registry file in dir. The new content is written
// to a temporary file and renamed into place.
func SaveConfig(dir string, c *Config) error {
	if err := ValidateConfig(c); err != nil {
		return err
	}
	content, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := filemanager.AtomicWrite(filepath.Join(dir, ConfigFile), content, 0644); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// ValidateConfig checks that a Config has a usable workspace name and no
// duplicate package within a category.
func ValidateConfig(c *Config) error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace name is required")
	}
	if err := filemanager.ValidatePathComponent(c.Workspace, "workspace name"); err != nil {
		return err
	}
	for _, cat := range c.Packages.Categories() {
		names, _ := c.Packages.List(cat)
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			if seen[name] {
				return fmt.Errorf("category %q lists package %q more than once", cat, name)
			}
			seen[name] = true
		}
	}
	return nil
}
