// Package injector keeps a managed package index inside the workspace
// README. Everything outside the markers belongs to the user.
package injector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/company/omnirepo/internal/filemanager"
)

const (
	MarkerStart = "<!-- OMNIREPO:START managed by omnirepo, do not edit -->"
	MarkerEnd   = "<!-- OMNIREPO:END -->"
)

// IndexFile is the file holding the managed block, relative to the root.
const IndexFile = "README.md"

// Entry is one package listed in the index.
type Entry struct {
	Category string
	Name     string
	Dir      string
}

// BuildBlock generates the managed content block.
func BuildBlock(workspace string, entries []Entry) string {
	var b strings.Builder

	b.WriteString(MarkerStart)
	b.WriteString("\n")
	fmt.Fprintf(&b, "## %s packages\n\n", workspace)

	if len(entries) == 0 {
		b.WriteString("No packages yet. Create one with `omnirepo create`.\n")
	} else {
		current := ""
		for _, e := range entries {
			if e.Category != current {
				if current != "" {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "### %s\n\n", e.Category)
				current = e.Category
			}
			fmt.Fprintf(&b, "- [%s](%s)\n", e.Name, filepath.ToSlash(e.Dir))
		}
	}

	b.WriteString(MarkerEnd)
	return b.String()
}

// Update writes the index for entries into the README below root.
func Update(root, workspace string, entries []Entry) error {
	path := filepath.Join(root, IndexFile)
	if err := injectIntoFile(path, BuildBlock(workspace, entries)); err != nil {
		return fmt.Errorf("updating %s: %w", IndexFile, err)
	}
	return nil
}

// VerifyResult contains the verification result for the index file.
type VerifyResult struct {
	Exists   bool
	HasBlock bool
	// Current is set when the block matches the expected content.
	Current bool
}

// Verify checks the README below root against the expected index.
func Verify(root, workspace string, entries []Entry) VerifyResult {
	data, err := os.ReadFile(filepath.Join(root, IndexFile))
	if err != nil {
		return VerifyResult{}
	}
	content := string(data)
	start := strings.Index(content, MarkerStart)
	end := strings.Index(content, MarkerEnd)
	if start < 0 || end < start {
		return VerifyResult{Exists: true}
	}
	block := content[start : end+len(MarkerEnd)]
	return VerifyResult{
		Exists:   true,
		HasBlock: true,
		Current:  block == BuildBlock(workspace, entries),
	}
}

// injectIntoFile creates or updates the managed block in a file.
func injectIntoFile(path, block string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filemanager.AtomicWrite(path, []byte(block+"\n"), 0644)
		}
		return err
	}

	content := string(data)

	startIdx := strings.Index(content, MarkerStart)
	endIdx := strings.Index(content, MarkerEnd)

	var newContent string
	if startIdx >= 0 && endIdx >= 0 && endIdx > startIdx {
		// Both markers found in correct order: replace between them (inclusive)
		endIdx += len(MarkerEnd)
		newContent = content[:startIdx] + block + content[endIdx:]
	} else if startIdx >= 0 || endIdx >= 0 {
		// Malformed: one marker without the other, strip it and append
		cleaned := strings.Replace(content, MarkerStart, "", 1)
		cleaned = strings.Replace(cleaned, MarkerEnd, "", 1)
		newContent = strings.TrimRight(cleaned, "\n") + "\n\n" + block + "\n"
	} else if strings.TrimSpace(content) == "" {
		newContent = block + "\n"
	} else {
		newContent = strings.TrimRight(content, "\n") + "\n\n" + block + "\n"
	}

	return filemanager.AtomicWrite(path, []byte(newContent), 0644)
}
