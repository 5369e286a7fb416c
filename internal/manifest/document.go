package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/company/omnirepo/internal/filemanager"
	"github.com/pelletier/go-toml/v2"
)

// File is the manifest file name, both at the workspace root and per package.
const File = "pyproject.toml"

// SyncError means the manifest could not be read, parsed or written.
type SyncError struct {
	Path string
	Op   string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Document is a loaded manifest. The original bytes are kept so a failed
// multi-file update can put the file back.
type Document struct {
	path    string
	tree    map[string]any
	raw     []byte
	existed bool
}

// Load reads the manifest at path. A missing file yields an empty document.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{path: path, tree: map[string]any{}}, nil
		}
		return nil, &SyncError{Path: path, Op: "reading", Err: err}
	}

	tree := map[string]any{}
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return nil, &SyncError{Path: path, Op: "parsing", Err: err}
	}
	return &Document{path: path, tree: tree, raw: raw, existed: true}, nil
}

// LoadWorkspace reads the manifest at the workspace root.
func LoadWorkspace(root string) (*Document, error) {
	return Load(filepath.Join(root, File))
}

// Path returns the manifest location.
func (d *Document) Path() string {
	return d.path
}

// Existed reports whether the file was present when loaded.
func (d *Document) Existed() bool {
	return d.existed
}

// Bytes renders the current tree.
func (d *Document) Bytes() ([]byte, error) {
	data, err := toml.Marshal(d.tree)
	if err != nil {
		return nil, &SyncError{Path: d.path, Op: "encoding", Err: err}
	}
	return data, nil
}

// Save writes the current tree atomically.
func (d *Document) Save() error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := filemanager.AtomicWrite(d.path, data, 0644); err != nil {
		return &SyncError{Path: d.path, Op: "writing", Err: err}
	}
	return nil
}

// Restore puts the file back the way it was when loaded, removing it if it
// did not exist then.
func (d *Document) Restore() error {
	if !d.existed {
		if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &SyncError{Path: d.path, Op: "restoring", Err: err}
		}
		return nil
	}
	if err := filemanager.AtomicWrite(d.path, d.raw, 0644); err != nil {
		return &SyncError{Path: d.path, Op: "restoring", Err: err}
	}
	return nil
}

// table walks keys from the root, creating missing tables when create is set.
// It returns nil when a key is missing (and create is false) or holds a
// non-table value.
func (d *Document) table(create bool, keys ...string) map[string]any {
	current := d.tree
	for _, key := range keys {
		next, ok := current[key]
		if !ok {
			if !create {
				return nil
			}
			t := map[string]any{}
			current[key] = t
			current = t
			continue
		}
		t, ok := next.(map[string]any)
		if !ok {
			return nil
		}
		current = t
	}
	return current
}
