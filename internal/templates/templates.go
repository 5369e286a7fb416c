// Package templates materializes the scaffolding of a new package from an
// ordered template set.
//
// A template set is a directory holding templates.yaml and one <id>.tmpl
// content file per entry. Both the output path and the content of each
// entry may contain %WORKSPACE_NAME% and %PACKAGE_NAME%, which are replaced
// literally. The sets shipped with the binary are embedded under sets/.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed sets
var setsFS embed.FS

const (
	WorkspacePlaceholder = "%WORKSPACE_NAME%"
	PackagePlaceholder   = "%PACKAGE_NAME%"
)

// SetID names a template set.
type SetID string

const (
	SetDefault   SetID = "default"
	SetBuildable SetID = "buildable"
)

// SetFor returns the template set used for a package.
func SetFor(buildable bool) SetID {
	if buildable {
		return SetBuildable
	}
	return SetDefault
}

// Substitutions are the placeholder values for one package.
type Substitutions struct {
	WorkspaceName string
	PackageName   string
}

// Apply replaces both placeholders in text. Replacement is a single pass:
// values that themselves contain a placeholder are not expanded again.
func (s Substitutions) Apply(text string) string {
	return strings.NewReplacer(
		WorkspacePlaceholder, s.WorkspaceName,
		PackagePlaceholder, s.PackageName,
	).Replace(text)
}

// AssetMissingError means a template set or template file shipped with the
// program could not be loaded. It indicates a broken installation.
type AssetMissingError struct {
	Set SetID
	ID  string
	Err error
}

func (e *AssetMissingError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("template set %q: %v", e.Set, e.Err)
	}
	return fmt.Sprintf("template %q in set %q: %v", e.ID, e.Set, e.Err)
}

func (e *AssetMissingError) Unwrap() error {
	return e.Err
}

// Embedded returns the template sets compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(setsFS, "sets")
	if err != nil {
		panic(fmt.Sprintf("embedded template sets: %v", err))
	}
	return sub
}
