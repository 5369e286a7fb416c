package cli

import (
	"context"
	"errors"

	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/launcher"
	"github.com/company/omnirepo/internal/registry"
	"github.com/company/omnirepo/internal/resolver"
	"github.com/spf13/cobra"
)

func (a *App) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command>",
		Short: "Run a package, a package task or a workspace task",
		Long: "<package>        launch the package (its [tool.omnirepo] run-command, or python <dir>/<package>)\n" +
			"<package>:<task> install the package and run one of its tasks in its directory\n" +
			"<task>           run a task of the workspace pyproject.toml",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRun(cmd.Context(), args[0])
		},
	}
}

func (a *App) runRun(ctx context.Context, token string) error {
	reg := registry.New(a.ws, registry.WithTemplates(a.templates))
	plan, err := resolver.New(a.ws, reg).Resolve(token)
	if err != nil {
		var resErr *resolver.ResolutionError
		if errors.As(err, &resErr) {
			a.output.Error("No project found with name %q", resErr.Project)
			return &ExitError{Code: exitcodes.NotFound}
		}
		return err
	}

	switch plan.Kind {
	case resolver.KindTopLevelTask:
		a.output.Info("No package named %q, running top-level task...", token)
	default:
		a.output.Info("Running %s...", token)
	}
	if plan.Warning != nil {
		a.output.Warning("Ignoring [tool.omnirepo] of %s: %v", plan.Package, plan.Warning)
	}
	if a.output.DebugEnabled() {
		for _, inv := range plan.Invocations {
			dir := inv.Dir
			if dir == "" {
				dir = "."
			}
			a.output.Debug("%s: %s", dir, inv)
		}
	}

	return launcher.Run(ctx, a.launcher, a.ws.Root, plan)
}
