// Package resolver turns a run token into the commands to launch and the
// directories to launch them in.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/workspace"
	"github.com/kballard/go-shellquote"
)

// Separator splits a qualified token into project and task.
const Separator = ":"

// MainPathPlaceholder is replaced in a run-command override by the package
// entry point path.
const MainPathPlaceholder = "%MAIN_PATH%"

// ErrEmptyCommand is returned for an empty token or a qualified token with
// an empty task.
var ErrEmptyCommand = errors.New("empty command")

// ResolutionError means a qualified token names a project that is not
// registered.
type ResolutionError struct {
	Project string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no project found: %s", e.Project)
}

// Kind is the branch a token resolved through.
type Kind int

const (
	// KindQualified is project:task, run inside the package directory.
	KindQualified Kind = iota
	// KindTopLevelTask is a bare token that is not a package, run at the root.
	KindTopLevelTask
	// KindPackageLaunch is a bare package name.
	KindPackageLaunch
)

func (k Kind) String() string {
	switch k {
	case KindQualified:
		return "qualified task"
	case KindTopLevelTask:
		return "top-level task"
	case KindPackageLaunch:
		return "package launch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Invocation is one process to launch.
type Invocation struct {
	// Dir is relative to the workspace root; empty means the root.
	Dir  string
	Argv []string
}

func (i Invocation) String() string {
	return shellquote.Join(i.Argv...)
}

// Plan is the resolved form of a token. Invocations run in order and stop
// at the first failure.
type Plan struct {
	Kind     Kind
	Token    string
	Category string
	Package  string
	Task     string

	Invocations []Invocation

	// Override is the launch override found for a package launch.
	Override manifest.Override
	// Warning is set when a declared override could not be used and the
	// default launch was chosen instead.
	Warning error
}

// Locator finds the category of a package name.
type Locator interface {
	LocateCategory(name string) (string, bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTaskRunner replaces the poetry task runner.
func WithTaskRunner(t TaskRunner) Option {
	return func(r *Resolver) { r.runner = t }
}

// Resolver resolves run tokens for one workspace.
type Resolver struct {
	ws      *workspace.Context
	locator Locator
	runner  TaskRunner
}

// New creates a resolver for ws, looking packages up through locator.
func New(ws *workspace.Context, locator Locator, opts ...Option) *Resolver {
	r := &Resolver{ws: ws, locator: locator, runner: Poetry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve turns token into a plan:
//
//   - "project:task" runs task inside the project's directory after
//     installing its dependencies. An unknown project is a *ResolutionError.
//   - a bare registered package name launches the package, through its
//     [tool.omnirepo] override when one is declared.
//   - any other bare token runs as a task of the workspace root.
func (r *Resolver) Resolve(token string) (*Plan, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyCommand
	}

	if project, task, ok := strings.Cut(token, Separator); ok {
		return r.resolveQualified(token, project, task)
	}

	category, found := r.locator.LocateCategory(token)
	if !found {
		return &Plan{
			Kind:        KindTopLevelTask,
			Token:       token,
			Task:        token,
			Invocations: []Invocation{{Argv: r.runner.Task(token)}},
		}, nil
	}
	return r.resolveLaunch(token, category), nil
}

func (r *Resolver) resolveQualified(token, project, task string) (*Plan, error) {
	if task == "" {
		return nil, fmt.Errorf("%w: %q names no task", ErrEmptyCommand, token)
	}

	category, found := r.locator.LocateCategory(project)
	if !found {
		return nil, &ResolutionError{Project: project}
	}

	dir := r.ws.RelPackageDir(category, project)
	return &Plan{
		Kind:     KindQualified,
		Token:    token,
		Category: category,
		Package:  project,
		Task:     task,
		Invocations: []Invocation{
			{Dir: dir, Argv: r.runner.Install()},
			{Dir: dir, Argv: r.runner.Task(task)},
		},
	}, nil
}

func (r *Resolver) resolveLaunch(name, category string) *Plan {
	dir := r.ws.RelPackageDir(category, name)
	plan := &Plan{
		Kind:     KindPackageLaunch,
		Token:    name,
		Category: category,
		Package:  name,
		Override: manifest.ReadOverride(r.ws.Path(dir)),
	}

	switch plan.Override.State {
	case manifest.OverrideDeclared:
		argv, err := overrideArgv(plan.Override, dir)
		if err == nil {
			plan.Invocations = []Invocation{{Argv: argv}}
			return plan
		}
		plan.Warning = err
	case manifest.OverrideMalformed:
		plan.Warning = plan.Override.Reason
	}

	plan.Invocations = []Invocation{{Argv: r.runner.Python(filepath.Join(dir, name))}}
	return plan
}

// overrideArgv substitutes the main path into the run-command and hands the
// result to the platform shell as a single command. The command must still
// tokenize under shell quoting rules, so an unbalanced quote is reported
// here instead of by the shell at launch time.
func overrideArgv(o manifest.Override, dir string) ([]string, error) {
	words, err := shellquote.Split(o.RunCommand)
	if err != nil {
		return nil, fmt.Errorf("run-command %q: %w", o.RunCommand, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("run-command %q is empty", o.RunCommand)
	}

	mainPath := filepath.Join(append([]string{dir}, o.MainPath...)...)
	return ShellCommand(strings.ReplaceAll(o.RunCommand, MainPathPlaceholder, mainPath)), nil
}
