package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/company/omnirepo/internal/manifest"
)

func issueKinds(issues []Issue) map[IssueKind]int {
	kinds := make(map[IssueKind]int)
	for _, i := range issues {
		kinds[i.Kind]++
	}
	return kinds
}

func TestCheckCleanWorkspace(t *testing.T) {
	ws := newTestWorkspace(t)
	reg := New(ws)
	if _, err := reg.CreatePackage("packages", "widgets", false); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.CreatePackage("libs", "core", true); err != nil {
		t.Fatal(err)
	}

	if issues := reg.Check(); len(issues) != 0 {
		t.Errorf("Check() = %v, want no issues", issues)
	}
}

func TestCheckFindsInconsistencies(t *testing.T) {
	ws := newTestWorkspace(t)
	reg := New(ws)
	if _, err := reg.CreatePackage("packages", "widgets", false); err != nil {
		t.Fatal(err)
	}

	// Registered by hand: no directory, no manifest entry, and a name clash.
	ws.Config.Packages.Add("libs", "widgets")

	doc, err := manifest.LoadWorkspace(ws.Root)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.AddPackage(manifest.EntryFor("packages", "acme", "ghost", false)); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddPackage(manifest.Entry{Include: "vendored", From: "third_party"}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatal(err)
	}

	kinds := issueKinds(reg.Check())
	want := map[IssueKind]int{
		IssueMissingDir:    1,
		IssueAmbiguousName: 1,
		IssueOrphanEntry:   1,
	}
	for kind, n := range want {
		if kinds[kind] != n {
			t.Errorf("%s issues = %d, want %d (all: %v)", kind, kinds[kind], n, kinds)
		}
	}
}

func TestCheckMissingEntry(t *testing.T) {
	ws := newTestWorkspace(t)
	reg := New(ws)
	if _, err := reg.CreatePackage("packages", "widgets", false); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(ws.Path(manifest.File)); err != nil {
		t.Fatal(err)
	}

	kinds := issueKinds(reg.Check())
	if kinds[IssueMissingEntry] != 1 {
		t.Errorf("missing-entry issues = %d, want 1 (all: %v)", kinds[IssueMissingEntry], kinds)
	}
}

func TestCheckUnusableManifest(t *testing.T) {
	ws := newTestWorkspace(t)
	if err := os.WriteFile(ws.Path(manifest.File), []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}

	kinds := issueKinds(New(ws).Check())
	if kinds[IssueManifestUnusable] != 1 {
		t.Errorf("manifest-unusable issues = %d, want 1", kinds[IssueManifestUnusable])
	}
}

func TestCheckUntrackedDir(t *testing.T) {
	ws := newTestWorkspace(t)
	reg := New(ws)
	if _, err := reg.CreatePackage("packages", "widgets", false); err != nil {
		t.Fatal(err)
	}
	stray := ws.PackageDir("packages", "stray")
	if err := os.MkdirAll(stray, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stray, manifest.File), []byte("[tool.poetry]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	kinds := issueKinds(reg.Check())
	if kinds[IssueUntrackedDir] != 1 {
		t.Errorf("untracked-dir issues = %d, want 1 (all: %v)", kinds[IssueUntrackedDir], kinds)
	}
}
