package cli

import (
	"context"
	"errors"
	"os"

	"github.com/company/omnirepo/internal/config"
	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/launcher"
	"github.com/company/omnirepo/internal/templates"
	"github.com/company/omnirepo/internal/ui"
	"github.com/company/omnirepo/internal/workspace"
	"github.com/spf13/cobra"
)

// annotationNoWorkspace marks commands that run without a registry.
const annotationNoWorkspace = "omnirepo/no-workspace"

// App is the dependency container for all CLI commands.
type App struct {
	rootCmd *cobra.Command
	version string
	commit  string
	date    string
	output  *ui.Output
	rootDir string
	debug   bool

	ws          *workspace.Context
	launcher    launcher.Launcher
	templates   *templates.Manager
	interactive func() bool
}

// NewApp creates the root command and registers all subcommands.
func NewApp(version, commit, date string) *App {
	app := &App{
		version:     version,
		commit:      commit,
		date:        date,
		output:      ui.NewOutput(),
		launcher:    &launcher.Exec{},
		templates:   templates.NewEmbeddedManager(),
		interactive: ui.IsInteractive,
	}

	root := &cobra.Command{
		Use:   "omnirepo",
		Short: "Monorepo workspace manager for Python packages",
		Long:  "Creates, removes and runs packages of a poetry monorepo without hand-editing pyproject.toml.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("OMNIREPO_DEBUG") != "" {
				app.debug = true
			}
			app.output.SetDebug(app.debug)
			if os.Getenv("OMNIREPO_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
				app.output.SetNoColor(true)
			}

			if !needsWorkspace(cmd) {
				return nil
			}
			return app.RequireWorkspace()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	})

	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&app.rootDir, "dir", ".", "workspace root directory")

	root.AddCommand(
		app.newInitCmd(),
		app.newCreateCmd(),
		app.newRemoveCmd(),
		app.newRunCmd(),
		app.newListCmd(),
		app.newDoctorCmd(),
		app.newVersionCmd(),
	)

	app.rootCmd = root
	return app
}

// Execute runs the root command and converts failures to *ExitError.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func (a *App) ExecuteContext(ctx context.Context) error {
	if err := a.rootCmd.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

// RequireWorkspace opens the workspace at the root directory once.
func (a *App) RequireWorkspace() error {
	if a.ws != nil {
		return nil
	}
	ws, err := workspace.Open(a.rootDir)
	if err != nil {
		if errors.Is(err, workspace.ErrNotWorkspace) {
			return &ExitError{
				Code:    exitcodes.ConfigError,
				Message: "not an omnirepo workspace: no " + config.ConfigFile + " in " + a.rootDir + ", run 'omnirepo init' first",
			}
		}
		return &ExitError{Code: exitcodes.ConfigError, Message: "loading workspace: " + err.Error()}
	}
	if ws.Migrated {
		a.output.Info("Migrated %s to %s", config.LegacyConfigFile, config.ConfigFile)
	}
	a.debugf("workspace %q at %s", ws.Name(), ws.Root)
	a.ws = ws
	return nil
}

// needsWorkspace reports whether cmd runs against a registry. cobra's own
// help and completion commands never do.
func needsWorkspace(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoWorkspace] == "true" {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// withLock runs fn holding the workspace lock. An open workspace is
// re-read first, so fn never saves a registry another process has since
// replaced.
func (a *App) withLock(root string, fn func() error) error {
	lock, err := workspace.AcquireLock(root)
	if err != nil {
		if errors.Is(err, workspace.ErrLocked) {
			return &ExitError{Code: exitcodes.GeneralError, Message: err.Error()}
		}
		return err
	}
	defer lock.Release()

	if a.ws != nil {
		if err := a.ws.Reload(); err != nil {
			return &ExitError{Code: exitcodes.ConfigError, Message: "reloading workspace: " + err.Error()}
		}
	}
	return fn()
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationNoWorkspace: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			a.output.Info("omnirepo %s (commit: %s, built: %s)", a.version, a.commit, a.date)
		},
	}
}

// debugf prints a debug message if debug mode is enabled.
func (a *App) debugf(format string, args ...interface{}) {
	if a.debug {
		a.output.Debug(format, args...)
	}
}
