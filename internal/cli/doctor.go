package cli

import (
	"slices"

	"github.com/company/omnirepo/internal/config"
	"github.com/company/omnirepo/internal/editor"
	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/injector"
	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/registry"
	"github.com/company/omnirepo/internal/templates"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues",
		Long:  "Checks that the registry, the package directories, pyproject.toml and the package index agree.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor()
		},
	}
}

func (a *App) runDoctor() error {
	allOK := true

	// 1. Registry
	if err := config.ValidateConfig(a.ws.Config); err != nil {
		a.output.Error("%s invalid: %v", config.ConfigFile, err)
		allOK = false
	} else {
		a.output.Success("%s valid (%d packages)", config.ConfigFile, a.ws.Config.Packages.Len())
	}

	// 2. Bundled templates
	sets, err := a.templates.ListSets()
	if err != nil {
		a.output.Error("Template sets unreadable: %v", err)
		allOK = false
	}
	for _, id := range []templates.SetID{templates.SetDefault, templates.SetBuildable} {
		if !slices.Contains(sets, id) {
			a.output.Error("Template set %s missing", id)
			allOK = false
		}
	}
	for _, id := range sets {
		if _, err := a.templates.LoadSet(id); err != nil {
			a.output.Error("Template set %s unusable: %v", id, err)
			allOK = false
		}
	}

	// 3. Workspace tasks
	if doc, err := manifest.LoadWorkspace(a.ws.Root); err == nil {
		if len(doc.Tasks()) == 0 {
			a.output.Warning("%s declares no [tool.taskipy.tasks]; top-level run falls through to poetry", manifest.File)
		}
	}

	// 4. Editor settings
	if _, err := editor.Load(a.ws.Root); err != nil {
		a.output.Warning("Editor settings unreadable: %v", err)
	}

	// 5. Consistency
	reg := registry.New(a.ws, registry.WithTemplates(a.templates))
	issues := reg.Check()
	for _, issue := range issues {
		a.output.Error("%s: %s", issue.Kind, issue.Message)
	}
	if len(issues) > 0 {
		allOK = false
	} else {
		a.output.Success("Registry, package directories and %s agree", manifest.File)
	}

	// 6. Package index
	result := injector.Verify(a.ws.Root, a.ws.Name(), indexEntries(reg))
	switch {
	case !result.Exists || !result.HasBlock:
		a.output.Warning("%s has no package index; it is written on the next create or remove", injector.IndexFile)
	case !result.Current:
		a.output.Warning("%s package index is out of date", injector.IndexFile)
	default:
		a.output.Success("%s package index is current", injector.IndexFile)
	}

	if !allOK {
		return &ExitError{Code: exitcodes.ConfigError, Message: "doctor found problems"}
	}
	a.output.Println("")
	a.output.Success("Everything looks good!")
	return nil
}
