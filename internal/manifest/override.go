package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/company/omnirepo/internal/filemanager"
	"github.com/pelletier/go-toml/v2"
)

// OverrideState tells whether a package declares a custom launch command.
type OverrideState int

const (
	// OverrideNotDeclared: no manifest, or no [tool.omnirepo] section.
	OverrideNotDeclared OverrideState = iota
	// OverrideDeclared: main-path and run-command are both present and valid.
	OverrideDeclared
	// OverrideMalformed: the manifest or the section cannot be used.
	OverrideMalformed
)

func (s OverrideState) String() string {
	switch s {
	case OverrideNotDeclared:
		return "not declared"
	case OverrideDeclared:
		return "declared"
	case OverrideMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("OverrideState(%d)", int(s))
	}
}

// Override is the [tool.omnirepo] section of a package manifest.
type Override struct {
	State      OverrideState
	MainPath   []string
	RunCommand string
	// Reason explains a malformed override.
	Reason error
}

type packageFile struct {
	Tool struct {
		Omnirepo *overrideSection `toml:"omnirepo"`
	} `toml:"tool"`
}

type overrideSection struct {
	MainPath   []string `toml:"main-path"`
	RunCommand *string  `toml:"run-command"`
}

// ReadOverride reads the launch override of the package in packageDir.
// It never returns an error: problems are reported as OverrideMalformed.
func ReadOverride(packageDir string) Override {
	path := filepath.Join(packageDir, File)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Override{State: OverrideNotDeclared}
		}
		return malformed(&SyncError{Path: path, Op: "reading", Err: err})
	}
	return ParseOverride(data)
}

// ParseOverride extracts the launch override from package manifest content.
func ParseOverride(data []byte) Override {
	var pf packageFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return malformed(fmt.Errorf("parsing package manifest: %w", err))
	}

	section := pf.Tool.Omnirepo
	if section == nil {
		return Override{State: OverrideNotDeclared}
	}
	if len(section.MainPath) == 0 {
		return malformed(errors.New("[tool.omnirepo] main-path is missing or empty"))
	}
	if section.RunCommand == nil || *section.RunCommand == "" {
		return malformed(errors.New("[tool.omnirepo] run-command is missing or empty"))
	}
	if err := filemanager.ValidateRelativePath(filepath.Join(section.MainPath...), "[tool.omnirepo] main-path"); err != nil {
		return malformed(err)
	}

	return Override{
		State:      OverrideDeclared,
		MainPath:   section.MainPath,
		RunCommand: *section.RunCommand,
	}
}

func malformed(reason error) Override {
	return Override{State: OverrideMalformed, Reason: reason}
}
