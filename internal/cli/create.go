package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/registry"
	"github.com/company/omnirepo/internal/resolver"
	"github.com/company/omnirepo/internal/ui"
	"github.com/spf13/cobra"
)

func (a *App) newCreateCmd() *cobra.Command {
	var (
		name      string
		buildable bool
		noInstall bool
	)

	cmd := &cobra.Command{
		Use:   "create [directory]",
		Short: "Create a package from a template",
		Long: "Creates <directory>s/<workspace>/<name> from the default or buildable template set,\n" +
			"registers it and adds it to pyproject.toml. The directory defaults to \"" + registry.DefaultDirectory + "\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := registry.DefaultDirectory
			if len(args) == 1 {
				directory = args[0]
			}
			return a.runCreate(cmd.Context(), directory, name, buildable, noInstall)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "package name")
	cmd.Flags().BoolVar(&buildable, "buildable", false, "lay the package out for standalone builds")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "skip 'poetry install' after creating")
	return cmd
}

func (a *App) runCreate(ctx context.Context, directory, name string, buildable, noInstall bool) error {
	name, err := a.packageName(name)
	if err != nil {
		return err
	}
	category := registry.CategoryFor(directory)

	kind := "package"
	if buildable {
		kind = "buildable package"
	}
	a.output.Info("Adding %s %s to %s...", kind, name, category)

	var created *registry.Created
	err = a.withLock(a.ws.Root, func() error {
		reg := registry.New(a.ws, registry.WithTemplates(a.templates))
		var createErr error
		created, createErr = reg.CreatePackage(category, name, buildable)
		if createErr != nil {
			return createErr
		}
		a.refreshIndex(reg)
		return nil
	})
	if err != nil {
		var exists *registry.AlreadyExistsError
		if errors.As(err, &exists) {
			a.output.Warning("%v", exists)
			return nil
		}
		return err
	}

	for _, f := range created.Files {
		a.debugf("wrote %s", f)
	}
	if len(created.OtherCategories) > 0 {
		a.output.Warning("%s is also registered in %s; 'omnirepo run %s' resolves to %s",
			name, strings.Join(created.OtherCategories, ", "), name, created.OtherCategories[0])
	}
	a.output.Success("Created %s (%d files)", created.Dir, len(created.Files))

	if noInstall {
		return nil
	}
	install := resolver.Poetry.Install()
	err = ui.WithSpinner("Running "+strings.Join(install, " ")+"...", func() error {
		code, err := a.launcher.Launch(ctx, a.ws.Root, install)
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("exit code %d", code)
		}
		return nil
	})
	if err != nil {
		a.output.Warning("%s failed: %v", strings.Join(install, " "), err)
	}
	return nil
}

// packageName returns the flag value or prompts for it.
func (a *App) packageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		return name, nil
	}
	if !a.interactive() {
		return "", &ExitError{Code: exitcodes.UsageError, Message: "package name required: pass --name"}
	}
	return ui.PromptText("Package name", "widgets")
}
