package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/company/omnirepo/internal/filemanager"
	"gopkg.in/yaml.v3"
)

const manifestFile = "templates.yaml"

// Manifest is the parsed templates.yaml of a set.
type Manifest struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Templates   []Entry `yaml:"templates"`
}

// Entry is one template: an output path template and the id of its content file.
type Entry struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// Template is an entry with its content loaded.
type Template struct {
	Entry
	Content string
}

// Set is a fully loaded template set.
type Set struct {
	ID        SetID
	Manifest  Manifest
	Templates []Template
}

// File is a rendered template, ready to be written.
type File struct {
	Path    string
	Content string
}

// Manager loads template sets from a filesystem.
type Manager struct {
	fsys fs.FS
}

// NewManager creates a manager reading sets from fsys.
func NewManager(fsys fs.FS) *Manager {
	return &Manager{fsys: fsys}
}

// NewEmbeddedManager creates a manager over the sets shipped with the binary.
func NewEmbeddedManager() *Manager {
	return NewManager(Embedded())
}

// LoadSet reads the manifest of a set and every template it lists.
func (m *Manager) LoadSet(id SetID) (*Set, error) {
	data, err := fs.ReadFile(m.fsys, path.Join(string(id), manifestFile))
	if err != nil {
		return nil, &AssetMissingError{Set: id, Err: err}
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, &AssetMissingError{Set: id, Err: fmt.Errorf("parsing %s: %w", manifestFile, err)}
	}
	if len(manifest.Templates) == 0 {
		return nil, &AssetMissingError{Set: id, Err: errors.New("no templates listed")}
	}

	set := &Set{ID: id, Manifest: manifest}
	for _, entry := range manifest.Templates {
		if entry.ID == "" || entry.Path == "" {
			return nil, &AssetMissingError{Set: id, ID: entry.ID, Err: errors.New("entry needs both id and path")}
		}
		content, err := fs.ReadFile(m.fsys, path.Join(string(id), entry.ID+".tmpl"))
		if err != nil {
			return nil, &AssetMissingError{Set: id, ID: entry.ID, Err: err}
		}
		set.Templates = append(set.Templates, Template{Entry: entry, Content: string(content)})
	}
	return set, nil
}

// Render substitutes the placeholders into every path and content, in
// manifest order. Nothing is written.
func (s *Set) Render(subs Substitutions) ([]File, error) {
	files := make([]File, 0, len(s.Templates))
	for _, t := range s.Templates {
		rel := subs.Apply(t.Path)
		if err := filemanager.ValidateRelativePath(rel, fmt.Sprintf("template %q path", t.ID)); err != nil {
			return nil, err
		}
		files = append(files, File{Path: filepath.FromSlash(rel), Content: subs.Apply(t.Content)})
	}
	return files, nil
}

// Materialize renders set id and writes it below dest, one file at a time in
// manifest order. An existing file is replaced, never appended to. It returns
// the written paths.
func (m *Manager) Materialize(id SetID, subs Substitutions, dest string) ([]string, error) {
	set, err := m.LoadSet(id)
	if err != nil {
		return nil, err
	}
	files, err := set.Render(subs)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(dest, f.Path)
		if err := filemanager.ValidateInsideDir(dest, target); err != nil {
			return written, err
		}
		if err := filemanager.AtomicWrite(target, []byte(f.Content), 0644); err != nil {
			return written, fmt.Errorf("writing template %s: %w", f.Path, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// ListSets returns the ids of all sets that have a manifest.
func (m *Manager) ListSets() ([]SetID, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, err
	}
	var ids []SetID
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(m.fsys, path.Join(e.Name(), manifestFile)); err == nil {
			ids = append(ids, SetID(e.Name()))
		}
	}
	return ids, nil
}
