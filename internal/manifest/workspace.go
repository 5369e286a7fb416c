package manifest

import "fmt"

// Tooling dependencies added to the workspace by init.
var workspaceDependencies = []struct{ name, version string }{
	{"taskipy", "^1.12.2"},
	{"pytest", "^8.2.0"},
	{"mypy", "^1.10.0"},
	{"flake8", "^7.0.0"},
	{"black", "^24.4.2"},
}

// ConfigureWorkspace prepares the root manifest of a new workspace: poetry
// metadata when the file is new, the tooling dependencies, the top-level
// taskipy tasks and black/mypy settings. Other sections are left alone.
func (d *Document) ConfigureWorkspace(name, author string) error {
	tool := d.table(true, "tool")
	if tool == nil {
		return &SyncError{Path: d.path, Op: "updating", Err: fmt.Errorf("[tool] is not a table")}
	}

	poetry := d.table(true, "tool", "poetry")
	if poetry == nil {
		return &SyncError{Path: d.path, Op: "updating", Err: fmt.Errorf("[tool.poetry] is not a table")}
	}
	if _, ok := poetry["name"]; !ok {
		poetry["name"] = name
		poetry["version"] = "0.1.0"
		poetry["description"] = ""
		authors := []any{}
		if author != "" {
			authors = append(authors, author)
		}
		poetry["authors"] = authors
	}

	deps := d.table(true, "tool", "poetry", "dependencies")
	if deps == nil {
		return &SyncError{Path: d.path, Op: "updating", Err: fmt.Errorf("[tool.poetry.dependencies] is not a table")}
	}
	if _, ok := deps["python"]; !ok {
		deps["python"] = "^3.12"
	}
	for _, dep := range workspaceDependencies {
		deps[dep.name] = dep.version
	}

	tool["taskipy"] = map[string]any{
		"tasks": map[string]any{
			"test":   "poetry run pytest",
			"lint":   "poetry run flake8",
			"format": "poetry run black .",
			"check":  "poetry run mypy .",
		},
	}
	tool["black"] = map[string]any{
		"line-length": int64(100),
	}
	tool["mypy"] = map[string]any{
		"show_error_context":     true,
		"show_column_numbers":    true,
		"ignore_missing_imports": true,
		"disallow_untyped_defs":  true,
		"no_implicit_optional":   true,
		"warn_return_any":        true,
		"warn_unused_ignores":    true,
		"warn_redundant_casts":   true,
	}

	if _, ok := d.tree["build-system"]; !ok && !d.existed {
		d.tree["build-system"] = map[string]any{
			"requires":      []any{"poetry-core"},
			"build-backend": "poetry.core.masonry.api",
		}
	}
	return nil
}

// Tasks returns the names of the taskipy tasks declared in the manifest.
func (d *Document) Tasks() []string {
	tasks := d.table(false, "tool", "taskipy", "tasks")
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	return names
}
