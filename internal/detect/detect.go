// Package detect finds package directories on disk, whether or not they are
// registered.
package detect

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestFile marks a directory as a package.
const ManifestFile = "pyproject.toml"

var ignoredDirs = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	"dist":         true,
	"build":        true,
}

// Found is a package directory discovered below a workspace root.
type Found struct {
	Category string
	Name     string
	// Dir is relative to the root.
	Dir string
}

// Packages walks root for <category>/<workspace>/<name> directories that
// contain a package manifest. Unreadable directories are skipped.
func Packages(root, workspace string) ([]Found, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var found []Found
	for _, e := range entries {
		if !e.IsDir() || skip(e.Name()) {
			continue
		}
		category := e.Name()
		base := filepath.Join(root, category, workspace)

		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// missing <category>/<workspace> or a permission error
				return nil
			}
			if path == base || !d.IsDir() {
				return nil
			}
			if skip(d.Name()) {
				return fs.SkipDir
			}
			if _, statErr := os.Stat(filepath.Join(path, ManifestFile)); statErr == nil {
				found = append(found, Found{
					Category: category,
					Name:     d.Name(),
					Dir:      filepath.Join(category, workspace, d.Name()),
				})
			}
			// packages are exactly one level below the workspace directory
			return fs.SkipDir
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Dir < found[j].Dir
	})
	return found, nil
}

// skip dot-folders (.git, .venv, .vscode, ...) and tool output.
func skip(name string) bool {
	return strings.HasPrefix(name, ".") || ignoredDirs[name]
}
