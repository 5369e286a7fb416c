package filemanager

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathComponent rejects names that cannot be used as a single path
// segment inside the workspace.
func ValidatePathComponent(name, label string) error {
	if name == "" {
		return fmt.Errorf("empty %s", label)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return fmt.Errorf("invalid %s: %q", label, name)
	}
	if filepath.Clean(name) != name {
		return fmt.Errorf("invalid %s: %q", label, name)
	}
	return nil
}

// ValidateRelativePath checks that rel is relative and stays below its base.
func ValidateRelativePath(rel, label string) error {
	if rel == "" {
		return fmt.Errorf("empty %s", label)
	}
	if filepath.IsAbs(rel) {
		return fmt.Errorf("%s: absolute path is not allowed: %s", label, rel)
	}
	cleaned := filepath.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: path must not escape its directory: %s", label, rel)
	}
	return nil
}

// ValidateInsideDir checks that resolved is base or a child of base.
func ValidateInsideDir(base, resolved string) error {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return err
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(absResolved, absBase+string(filepath.Separator)) && absResolved != absBase {
		return fmt.Errorf("path %q escapes base directory %q", resolved, base)
	}
	return nil
}
