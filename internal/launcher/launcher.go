// Package launcher runs resolved invocations as child processes.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/company/omnirepo/internal/resolver"
	"github.com/kballard/go-shellquote"
)

// Launcher starts one command in dir and waits for it. It returns the exit
// code of the process; err is set only when the process could not be run.
type Launcher interface {
	Launch(ctx context.Context, dir string, argv []string) (int, error)
}

// ProcessError means an invocation exited with a non-zero code.
type ProcessError struct {
	Argv     []string
	ExitCode int
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d", shellquote.Join(e.Argv...), e.ExitCode)
}

// Exec launches processes with os/exec. No shell is involved. Output streams
// go to the configured writers, defaulting to the process's own.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launch implements Launcher.
func (l *Exec) Launch(ctx context.Context, dir string, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = orReader(l.Stdin, os.Stdin)
	cmd.Stdout = orWriter(l.Stdout, os.Stdout)
	cmd.Stderr = orWriter(l.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr), nil
	}
	return -1, fmt.Errorf("running %s: %w", argv[0], err)
}

// exitCode returns the code a shell would report: 128+signo for a child
// killed by a signal, the exit status otherwise.
func exitCode(err *exec.ExitError) int {
	if status, ok := err.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

// Run launches the invocations of plan in order below root. It stops at the
// first one that cannot start or exits non-zero.
func Run(ctx context.Context, l Launcher, root string, plan *resolver.Plan) error {
	for _, inv := range plan.Invocations {
		dir := root
		if inv.Dir != "" {
			dir = filepath.Join(root, inv.Dir)
		}
		code, err := l.Launch(ctx, dir, inv.Argv)
		if err != nil {
			return err
		}
		if code != 0 {
			return &ProcessError{Argv: inv.Argv, ExitCode: code}
		}
	}
	return nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
