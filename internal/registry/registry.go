// Package registry manages package membership of a workspace: creating and
// removing packages keeps the registry file, the package files and the
// workspace manifest in step.
package registry

import (
	"errors"
	"fmt"

	"github.com/company/omnirepo/internal/config"
	"github.com/company/omnirepo/internal/filemanager"
	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/templates"
	"github.com/company/omnirepo/internal/workspace"
)

// DefaultDirectory is the directory token used when none is given.
const DefaultDirectory = "package"

// CategoryFor derives the category from a directory token.
func CategoryFor(directory string) string {
	return directory + "s"
}

// Option configures a Registry.
type Option func(*Registry)

// WithTemplates sets the template manager used to scaffold packages.
func WithTemplates(m *templates.Manager) Option {
	return func(r *Registry) { r.templates = m }
}

// Registry is the package view over a workspace context.
type Registry struct {
	ws        *workspace.Context
	templates *templates.Manager
}

// New creates a registry over ws using the embedded template sets.
func New(ws *workspace.Context, opts ...Option) *Registry {
	r := &Registry{ws: ws, templates: templates.NewEmbeddedManager()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Created describes a package that was just created.
type Created struct {
	Category string
	Name     string
	// Dir is relative to the workspace root.
	Dir   string
	Files []string
	Entry manifest.Entry
	// OtherCategories lists categories that already held the same name.
	OtherCategories []string
}

// Removed describes a package that was just removed.
type Removed struct {
	Category string
	Name     string
	Dir      string
	// ManifestWarning is set when the manifest could not be updated. The
	// package is removed from the registry regardless.
	ManifestWarning error
}

// CreatePackage registers name under category, scaffolds its files and adds
// it to the workspace manifest. On failure the registry, the manifest and
// the package directory are left as they were.
func (r *Registry) CreatePackage(category, name string, buildable bool) (*Created, error) {
	if err := filemanager.ValidatePathComponent(category, "category"); err != nil {
		return nil, err
	}
	if err := filemanager.ValidatePathComponent(name, "package name"); err != nil {
		return nil, err
	}
	if r.ws.Config.Packages.Contains(category, name) {
		return nil, &AlreadyExistsError{Category: category, Name: name}
	}

	doc, err := manifest.LoadWorkspace(r.ws.Root)
	if err != nil {
		return nil, err
	}

	created := &Created{
		Category:        category,
		Name:            name,
		Dir:             r.ws.RelPackageDir(category, name),
		Entry:           manifest.EntryFor(category, r.ws.Name(), name, buildable),
		OtherCategories: r.LocateAll(name),
	}

	dir := r.ws.PackageDir(category, name)
	dirExisted := filemanager.Exists(dir)
	undoFiles := func() {
		if !dirExisted {
			filemanager.RemoveTree(dir)
		}
	}

	subs := templates.Substitutions{WorkspaceName: r.ws.Name(), PackageName: name}
	files, err := r.templates.Materialize(templates.SetFor(buildable), subs, dir)
	if err != nil {
		undoFiles()
		return nil, err
	}
	created.Files = files

	if err := doc.AddPackage(created.Entry); err != nil {
		undoFiles()
		return nil, err
	}
	if err := doc.Save(); err != nil {
		undoFiles()
		return nil, err
	}

	next := r.ws.Config.Clone()
	next.Packages.Add(category, name)
	if err := config.SaveConfig(r.ws.Root, next); err != nil {
		if restoreErr := doc.Restore(); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
		undoFiles()
		return nil, fmt.Errorf("saving registry: %w", err)
	}
	r.ws.Config = next

	return created, nil
}

// RemovePackage unregisters name from category, drops its manifest entry and
// deletes its directory. An unregistered package yields *NotFoundError and
// changes nothing.
func (r *Registry) RemovePackage(category, name string) (*Removed, error) {
	if !r.ws.Config.Packages.Contains(category, name) {
		return nil, &NotFoundError{Category: category, Name: name}
	}

	removed := &Removed{
		Category: category,
		Name:     name,
		Dir:      r.ws.RelPackageDir(category, name),
	}

	next := r.ws.Config.Clone()
	next.Packages.Remove(category, name)
	if err := config.SaveConfig(r.ws.Root, next); err != nil {
		return nil, fmt.Errorf("saving registry: %w", err)
	}
	r.ws.Config = next

	removed.ManifestWarning = r.dropManifestEntry(category, name)

	if err := filemanager.RemoveTree(r.ws.PackageDir(category, name)); err != nil {
		return removed, err
	}
	return removed, nil
}

func (r *Registry) dropManifestEntry(category, name string) error {
	doc, err := manifest.LoadWorkspace(r.ws.Root)
	if err != nil {
		return err
	}
	if !doc.RemovePackage(category, r.ws.Name(), name) {
		return fmt.Errorf("no entry for %s in %s", name, doc.Path())
	}
	return doc.Save()
}

// LocateCategory returns the first category, in insertion order, that
// contains name.
func (r *Registry) LocateCategory(name string) (string, bool) {
	for _, category := range r.ws.Config.Packages.Categories() {
		if r.ws.Config.Packages.Contains(category, name) {
			return category, true
		}
	}
	return "", false
}

// LocateAll returns every category containing name, in insertion order.
func (r *Registry) LocateAll(name string) []string {
	var found []string
	for _, category := range r.ws.Config.Packages.Categories() {
		if r.ws.Config.Packages.Contains(category, name) {
			found = append(found, category)
		}
	}
	return found
}

// Package is one registered package.
type Package struct {
	Category string
	Name     string
	Dir      string
}

// Packages lists every registered package, grouped by category in
// insertion order.
func (r *Registry) Packages() []Package {
	var pkgs []Package
	for _, category := range r.ws.Config.Packages.Categories() {
		names, _ := r.ws.Config.Packages.List(category)
		for _, name := range names {
			pkgs = append(pkgs, Package{
				Category: category,
				Name:     name,
				Dir:      r.ws.RelPackageDir(category, name),
			})
		}
	}
	return pkgs
}
