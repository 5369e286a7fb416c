package cli

import (
	"errors"
	"fmt"

	"github.com/company/omnirepo/internal/exitcodes"
	"github.com/company/omnirepo/internal/launcher"
	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/resolver"
	"github.com/company/omnirepo/internal/templates"
	"github.com/company/omnirepo/internal/workspace"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// toExitError maps errors from the core packages to exit codes.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var (
		assetErr   *templates.AssetMissingError
		syncErr    *manifest.SyncError
		resolveErr *resolver.ResolutionError
		procErr    *launcher.ProcessError
	)
	switch {
	case errors.As(err, &procErr):
		return &ExitError{Code: procErr.ExitCode, Message: err.Error()}
	case errors.As(err, &resolveErr):
		return &ExitError{Code: exitcodes.NotFound, Message: err.Error()}
	case errors.As(err, &syncErr):
		return &ExitError{Code: exitcodes.ManifestError, Message: err.Error()}
	case errors.As(err, &assetErr):
		return &ExitError{Code: exitcodes.GeneralError, Message: fmt.Sprintf("broken installation: %v", err)}
	case errors.Is(err, resolver.ErrEmptyCommand):
		return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	case errors.Is(err, workspace.ErrNotWorkspace):
		return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}
	return &ExitError{Code: exitcodes.GeneralError, Message: err.Error()}
}
