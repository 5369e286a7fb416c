package filemanager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathComponent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "widgets", wantErr: false},
		{name: "dashes and dots", input: "my-pkg.v2", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "dotdot", input: "..", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "absolute", input: "/etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathComponent(tt.input, "name")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathComponent(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"pkg/__init__.py", false},
		{"tests/test_pkg.py", false},
		{"a/../b", false},
		{"../escape", true},
		{"a/../../escape", true},
		{"/abs/path", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateRelativePath(tt.input, "path")
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestAtomicWriteReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	if err := AtomicWrite(path, []byte("first version, rather long"), 0644); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}
	if err := AtomicWrite(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", string(data), "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestRemoveTreeMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	if err := RemoveTree(filepath.Join(dir, "does-not-exist")); err != nil {
		t.Errorf("RemoveTree() error: %v", err)
	}
}

func TestRemoveTree(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "packages", "acme", "widgets")
	if err := os.MkdirAll(filepath.Join(target, "widgets"), 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(target, "widgets", "__init__.py"), []byte(""), 0644)

	if err := RemoveTree(target); err != nil {
		t.Fatalf("RemoveTree() error: %v", err)
	}
	if Exists(target) {
		t.Error("target should be removed")
	}
	if !IsDir(filepath.Join(dir, "packages", "acme")) {
		t.Error("parent should be kept")
	}
}
