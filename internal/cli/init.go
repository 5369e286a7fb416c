package cli

import (
	"fmt"
	"strings"

	"github.com/company/omnirepo/internal/config"
	"github.com/company/omnirepo/internal/editor"
	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/filemanager"
	"github.com/company/omnirepo/internal/injector"
	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/ui"
	"github.com/company/omnirepo/internal/workspace"
	"github.com/spf13/cobra"
)

func (a *App) newInitCmd() *cobra.Command {
	var name, author string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Initialize an omnirepo workspace",
		Long:        "Creates " + config.ConfigFile + " and adds the test, lint, format and check tasks and their tools to pyproject.toml.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoWorkspace: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(name, author)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "workspace name")
	cmd.Flags().StringVarP(&author, "author", "a", "", "author name")
	return cmd
}

func (a *App) runInit(name, author string) error {
	if workspace.IsWorkspace(a.rootDir) {
		return &ExitError{
			Code:    exitcodes.ConfigError,
			Message: fmt.Sprintf("%s is already an omnirepo workspace", a.rootDir),
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		if !a.interactive() {
			return &ExitError{Code: exitcodes.UsageError, Message: "workspace name required: pass --name"}
		}
		var err error
		if name, err = ui.PromptText("Workspace name", "acme"); err != nil {
			return err
		}
	}
	if err := filemanager.ValidatePathComponent(name, "workspace name"); err != nil {
		return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	}

	ws, err := workspace.New(a.rootDir, config.New(name, author))
	if err != nil {
		return err
	}

	return a.withLock(ws.Root, func() error {
		a.output.Info("Creating workspace %s...", name)

		doc, err := manifest.LoadWorkspace(ws.Root)
		if err != nil {
			return err
		}
		if err := doc.ConfigureWorkspace(name, author); err != nil {
			return err
		}

		settings, err := editor.Load(ws.Root)
		if err != nil {
			return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
		}
		settings.Merge(editor.PythonDefaults())

		verb := "updated"
		if !doc.Existed() {
			verb = "created"
		}
		if err := doc.Save(); err != nil {
			return err
		}
		a.debugf("%s %s", verb, doc.Path())

		if err := settings.Save(); err != nil {
			a.output.Warning("Could not update editor settings: %v", err)
		} else {
			a.debugf("updated %s", settings.Path())
		}

		if err := ws.Save(); err != nil {
			if restoreErr := doc.Restore(); restoreErr != nil {
				a.output.Warning("Could not restore %s: %v", manifest.File, restoreErr)
			}
			return fmt.Errorf("saving registry: %w", err)
		}

		if err := injector.Update(ws.Root, name, nil); err != nil {
			a.output.Warning("Could not write package index: %v", err)
		}

		a.ws = ws
		a.output.Success("Initialized workspace %s in %s", name, ws.Root)
		return nil
	})
}
