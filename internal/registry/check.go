package registry

import (
	"fmt"
	"strings"

	"github.com/company/omnirepo/internal/detect"
	"github.com/company/omnirepo/internal/filemanager"
	"github.com/company/omnirepo/internal/manifest"
)

// IssueKind classifies a consistency problem.
type IssueKind string

const (
	IssueMissingDir       IssueKind = "missing-dir"
	IssueMissingEntry     IssueKind = "missing-entry"
	IssueOrphanEntry      IssueKind = "orphan-entry"
	IssueAmbiguousName    IssueKind = "ambiguous-name"
	IssueManifestUnusable IssueKind = "manifest-unusable"
	IssueUntrackedDir     IssueKind = "untracked-dir"
)

// Issue is one inconsistency between the registry, the package directories
// and the workspace manifest.
type Issue struct {
	Kind    IssueKind
	Message string
}

// Check compares the registry against the filesystem and the workspace
// manifest. An empty result means everything agrees.
func (r *Registry) Check() []Issue {
	var issues []Issue

	pkgs := r.Packages()
	for _, p := range pkgs {
		if !filemanager.IsDir(r.ws.Path(p.Dir)) {
			issues = append(issues, Issue{
				Kind:    IssueMissingDir,
				Message: fmt.Sprintf("%s/%s: directory %s does not exist", p.Category, p.Name, p.Dir),
			})
		}
	}

	seen := make(map[string]bool)
	for _, p := range pkgs {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		if cats := r.LocateAll(p.Name); len(cats) > 1 {
			issues = append(issues, Issue{
				Kind: IssueAmbiguousName,
				Message: fmt.Sprintf("%s is registered in %s; run resolves it to %s",
					p.Name, strings.Join(cats, ", "), cats[0]),
			})
		}
	}

	if found, err := detect.Packages(r.ws.Root, r.ws.Name()); err == nil {
		for _, f := range found {
			if !r.ws.Config.Packages.Contains(f.Category, f.Name) {
				issues = append(issues, Issue{
					Kind:    IssueUntrackedDir,
					Message: fmt.Sprintf("%s looks like a package but is not registered", f.Dir),
				})
			}
		}
	}

	doc, err := manifest.LoadWorkspace(r.ws.Root)
	if err != nil {
		return append(issues, Issue{Kind: IssueManifestUnusable, Message: err.Error()})
	}

	known := make(map[manifest.Entry]bool)
	for _, p := range pkgs {
		standard := manifest.EntryFor(p.Category, r.ws.Name(), p.Name, false)
		buildable := manifest.EntryFor(p.Category, r.ws.Name(), p.Name, true)
		known[standard] = true
		known[buildable] = true
		if !doc.HasPackage(standard) && !doc.HasPackage(buildable) {
			issues = append(issues, Issue{
				Kind:    IssueMissingEntry,
				Message: fmt.Sprintf("%s/%s has no entry in %s", p.Category, p.Name, manifest.File),
			})
		}
	}

	for _, e := range doc.Packages() {
		if !known[e] && r.looksManaged(e) {
			issues = append(issues, Issue{
				Kind:    IssueOrphanEntry,
				Message: fmt.Sprintf("%s entry {include = %q, from = %q} has no registered package", manifest.File, e.Include, e.From),
			})
		}
	}

	return issues
}

// looksManaged reports whether a manifest entry has one of the shapes
// created for this workspace. Hand-written entries are left alone.
func (r *Registry) looksManaged(e manifest.Entry) bool {
	prefix := r.ws.Name() + "/"
	if strings.HasPrefix(e.Include, prefix) && !strings.Contains(e.From, "/") {
		return true
	}
	parts := strings.Split(e.From, "/")
	return len(parts) == 3 && parts[1] == r.ws.Name() && parts[2] == e.Include
}
