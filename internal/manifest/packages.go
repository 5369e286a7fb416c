package manifest

import (
	"fmt"
	"path"
)

// Entry is one item of [tool.poetry] packages.
type Entry struct {
	Include string
	From    string
}

// EntryFor returns the manifest entry of a package. A buildable package is
// included by its own name from inside its directory; a standard package is
// included as <workspace>/<name> from its category.
func EntryFor(category, workspace, name string, buildable bool) Entry {
	if buildable {
		return Entry{Include: name, From: path.Join(category, workspace, name)}
	}
	return Entry{Include: path.Join(workspace, name), From: category}
}

// packageList returns tool.poetry.packages, or nil when absent.
func (d *Document) packageList() []any {
	poetry := d.table(false, "tool", "poetry")
	if poetry == nil {
		return nil
	}
	list, _ := poetry["packages"].([]any)
	return list
}

// Packages returns the include/from entries of the package list. Entries of
// another shape are skipped.
func (d *Document) Packages() []Entry {
	var entries []Entry
	for _, item := range d.packageList() {
		if e, ok := entryOf(item); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// HasPackage reports whether e is in the package list.
func (d *Document) HasPackage(e Entry) bool {
	for _, existing := range d.Packages() {
		if existing == e {
			return true
		}
	}
	return false
}

// AddPackage appends e to tool.poetry.packages. It fails when tool or
// tool.poetry exists but is not a table.
func (d *Document) AddPackage(e Entry) error {
	poetry := d.table(true, "tool", "poetry")
	if poetry == nil {
		return &SyncError{Path: d.path, Op: "updating", Err: fmt.Errorf("[tool.poetry] is not a table")}
	}
	if d.HasPackage(e) {
		return nil
	}
	list, _ := poetry["packages"].([]any)
	poetry["packages"] = append(list, map[string]any{"include": e.Include, "from": e.From})
	return nil
}

// RemovePackage deletes the first package entry matching either the
// buildable or the standard shape for the package. It reports whether an
// entry was removed.
func (d *Document) RemovePackage(category, workspace, name string) bool {
	candidates := []Entry{
		EntryFor(category, workspace, name, false),
		EntryFor(category, workspace, name, true),
	}

	list := d.packageList()
	for i, item := range list {
		e, ok := entryOf(item)
		if !ok {
			continue
		}
		for _, c := range candidates {
			if e == c {
				poetry := d.table(false, "tool", "poetry")
				poetry["packages"] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

func entryOf(item any) (Entry, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return Entry{}, false
	}
	include, _ := m["include"].(string)
	from, _ := m["from"].(string)
	if include == "" {
		return Entry{}, false
	}
	return Entry{Include: include, From: from}, true
}
