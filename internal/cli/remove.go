package cli

import (
	"errors"
	"fmt"

	"github.com/company/omnirepo/internal/registry"
	"github.com/company/omnirepo/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newRemoveCmd() *cobra.Command {
	var (
		name string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "remove [directory]",
		Short: "Remove a package from the workspace",
		Long:  "Unregisters the package, drops it from pyproject.toml and deletes its directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := registry.DefaultDirectory
			if len(args) == 1 {
				directory = args[0]
			}
			return a.runRemove(directory, name, yes)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "package name")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *App) runRemove(directory, name string, yes bool) error {
	name, err := a.packageName(name)
	if err != nil {
		return err
	}
	category := registry.CategoryFor(directory)

	if !a.ws.Config.Packages.Contains(category, name) {
		a.output.Warning("%v", &registry.NotFoundError{Category: category, Name: name})
		return nil
	}

	if !yes && a.interactive() {
		ok, err := ui.Confirm(fmt.Sprintf("Remove %s and delete %s?", name, a.ws.RelPackageDir(category, name)))
		if err != nil {
			return err
		}
		if !ok {
			a.output.Info("Aborted")
			return nil
		}
	}

	a.output.Info("Removing %s from %s...", name, category)

	var removed *registry.Removed
	err = a.withLock(a.ws.Root, func() error {
		reg := registry.New(a.ws, registry.WithTemplates(a.templates))
		var removeErr error
		removed, removeErr = reg.RemovePackage(category, name)
		if removed != nil {
			a.refreshIndex(reg)
		}
		return removeErr
	})
	if err != nil {
		var notFound *registry.NotFoundError
		if errors.As(err, &notFound) {
			a.output.Warning("%v", notFound)
			return nil
		}
		if removed == nil {
			return err
		}
		a.output.Warning("%v", err)
	}

	if removed.ManifestWarning != nil {
		a.output.Warning("Package was not removed from pyproject.toml: %v", removed.ManifestWarning)
	}
	a.output.Success("Removed %s", removed.Dir)
	return nil
}
