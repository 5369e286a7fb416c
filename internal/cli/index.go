package cli

import (
	"github.com/company/omnirepo/internal/injector"
	"github.com/company/omnirepo/internal/registry"
)

func indexEntries(reg *registry.Registry) []injector.Entry {
	pkgs := reg.Packages()
	entries := make([]injector.Entry, 0, len(pkgs))
	for _, p := range pkgs {
		entries = append(entries, injector.Entry{Category: p.Category, Name: p.Name, Dir: p.Dir})
	}
	return entries
}

// refreshIndex rewrites the README package index. Failures only warn: the
// index is derived from the registry.
func (a *App) refreshIndex(reg *registry.Registry) {
	if err := injector.Update(a.ws.Root, a.ws.Name(), indexEntries(reg)); err != nil {
		a.output.Warning("Could not update package index: %v", err)
	}
}
