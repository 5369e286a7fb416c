package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/company/omnirepo/internal/config"
)

// ErrNotWorkspace is returned when the root has no registry file.
var ErrNotWorkspace = errors.New("not an omnirepo workspace")

// Context holds the resolved root and loaded registry for a workspace.
type Context struct {
	Root   string
	Config *config.Config

	// Migrated is set when the registry was converted from the legacy JSON file.
	Migrated bool
}

// Open resolves root and loads its registry. A legacy JSON registry is
// migrated to the current format in place. Open returns ErrNotWorkspace
// when neither file exists.
func Open(root string) (*Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	cfg, found, err := config.Load(abs)
	if err != nil {
		return nil, err
	}
	if found {
		return &Context{Root: abs, Config: cfg}, nil
	}

	if !config.LegacyConfigExists(abs) {
		return nil, ErrNotWorkspace
	}

	cfg, err = config.MigrateLegacy(abs)
	if err != nil {
		return nil, err
	}
	if err := config.SaveConfig(abs, cfg); err != nil {
		return nil, err
	}
	os.Remove(filepath.Join(abs, config.LegacyConfigFile))

	return &Context{Root: abs, Config: cfg, Migrated: true}, nil
}

// New returns a context for a registry that has not been saved yet.
func New(root string, cfg *config.Config) (*Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	return &Context{Root: abs, Config: cfg}, nil
}

// IsWorkspace reports whether root holds a registry, current or legacy.
func IsWorkspace(root string) bool {
	return config.ConfigExists(root) || config.LegacyConfigExists(root)
}

// Name returns the workspace name.
func (c *Context) Name() string {
	return c.Config.Workspace
}

// Save persists the registry.
func (c *Context) Save() error {
	return config.SaveConfig(c.Root, c.Config)
}

// Reload re-reads the registry from disk, discarding in-memory state.
func (c *Context) Reload() error {
	cfg, found, err := config.Load(c.Root)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotWorkspace
	}
	c.Config = cfg
	return nil
}

// RelPackageDir returns the package directory relative to the root:
// <category>/<workspace>/<name>.
func (c *Context) RelPackageDir(category, name string) string {
	return filepath.Join(category, c.Config.Workspace, name)
}

// PackageDir returns the absolute package directory.
func (c *Context) PackageDir(category, name string) string {
	return filepath.Join(c.Root, c.RelPackageDir(category, name))
}

// Path joins rel onto the workspace root.
func (c *Context) Path(rel ...string) string {
	return filepath.Join(append([]string{c.Root}, rel...)...)
}
