package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/company/omnirepo/internal/config"
	"github.com/company/omnirepo/internal/manifest"
	"github.com/company/omnirepo/internal/workspace"
)

type mapLocator map[string]string

func (m mapLocator) LocateCategory(name string) (string, bool) {
	cat, ok := m[name]
	return cat, ok
}

func newTestResolver(t *testing.T, packages map[string]string) (*Resolver, *workspace.Context) {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), config.New("acme", ""))
	if err != nil {
		t.Fatal(err)
	}
	return New(ws, mapLocator(packages)), ws
}

func writePackageManifest(t *testing.T, ws *workspace.Context, category, name, content string) {
	t.Helper()
	dir := ws.PackageDir(category, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifest.File), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	widgetsDir := filepath.Join("packages", "acme", "widgets")

	tests := []struct {
		name     string
		token    string
		wantKind Kind
		want     []Invocation
	}{
		{
			name:     "registered package launches",
			token:    "widgets",
			wantKind: KindPackageLaunch,
			want: []Invocation{
				{Argv: []string{"poetry", "run", "python", filepath.Join(widgetsDir, "widgets")}},
			},
		},
		{
			name:     "unknown bare token is a top-level task",
			token:    "nonexistentthing",
			wantKind: KindTopLevelTask,
			want: []Invocation{
				{Argv: []string{"poetry", "run", "task", "nonexistentthing"}},
			},
		},
		{
			name:     "qualified task runs in the package directory",
			token:    "widgets:test",
			wantKind: KindQualified,
			want: []Invocation{
				{Dir: widgetsDir, Argv: []string{"poetry", "install"}},
				{Dir: widgetsDir, Argv: []string{"poetry", "run", "task", "test"}},
			},
		},
		{
			name:     "qualified task splits on the first separator",
			token:    "widgets:db:migrate",
			wantKind: KindQualified,
			want: []Invocation{
				{Dir: widgetsDir, Argv: []string{"poetry", "install"}},
				{Dir: widgetsDir, Argv: []string{"poetry", "run", "task", "db:migrate"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(t, map[string]string{"widgets": "packages"})

			plan, err := r.Resolve(tt.token)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.token, err)
			}
			if plan.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", plan.Kind, tt.wantKind)
			}
			if !reflect.DeepEqual(plan.Invocations, tt.want) {
				t.Errorf("Invocations = %+v, want %+v", plan.Invocations, tt.want)
			}
		})
	}
}

func TestResolveQualifiedUnknownProject(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	plan, err := r.Resolve("widgets:test")
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Resolve() error = %v, want *ResolutionError", err)
	}
	if resErr.Project != "widgets" {
		t.Errorf("Project = %q, want widgets", resErr.Project)
	}
	if plan != nil {
		t.Errorf("plan = %+v, want nil", plan)
	}
}

func TestResolveEmpty(t *testing.T) {
	r, _ := newTestResolver(t, map[string]string{"widgets": "packages"})

	for _, token := range []string{"", "  ", "widgets:", ":"} {
		if _, err := r.Resolve(token); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Resolve(%q) error = %v, want ErrEmptyCommand", token, err)
		}
	}
}

func TestResolveEmptyProjectIsUnknown(t *testing.T) {
	r, _ := newTestResolver(t, map[string]string{"widgets": "packages"})

	_, err := r.Resolve(":test")
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Resolve(%q) error = %v, want *ResolutionError", ":test", err)
	}
	if resErr.Project != "" {
		t.Errorf("Project = %q, want empty", resErr.Project)
	}
}

func TestResolveLaunchOverride(t *testing.T) {
	r, ws := newTestResolver(t, map[string]string{"widgets": "packages"})
	writePackageManifest(t, ws, "packages", "widgets", `[tool.omnirepo]
main-path = ["widgets", "app.py"]
run-command = "poetry run python '%MAIN_PATH%' --verbose"
`)

	plan, err := r.Resolve("widgets")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if plan.Override.State != manifest.OverrideDeclared {
		t.Fatalf("Override.State = %v, want declared", plan.Override.State)
	}
	mainPath := filepath.Join("packages", "acme", "widgets", "widgets", "app.py")
	want := []Invocation{{Argv: ShellCommand("poetry run python '" + mainPath + "' --verbose")}}
	if !reflect.DeepEqual(plan.Invocations, want) {
		t.Errorf("Invocations = %+v, want %+v", plan.Invocations, want)
	}
	if plan.Warning != nil {
		t.Errorf("Warning = %v, want nil", plan.Warning)
	}
}

func TestResolveLaunchOverrideKeepsShellSyntax(t *testing.T) {
	r, ws := newTestResolver(t, map[string]string{"widgets": "packages"})
	writePackageManifest(t, ws, "packages", "widgets", `[tool.omnirepo]
main-path = ["app"]
run-command = "cd %MAIN_PATH% && PYTHONPATH=. python main.py | tee run.log"
`)

	plan, err := r.Resolve("widgets")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(plan.Invocations) != 1 {
		t.Fatalf("Invocations = %+v, want one shell invocation", plan.Invocations)
	}
	mainPath := filepath.Join("packages", "acme", "widgets", "app")
	want := ShellCommand("cd " + mainPath + " && PYTHONPATH=. python main.py | tee run.log")
	if got := plan.Invocations[0].Argv; !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %q, want %q", got, want)
	}
}

func TestShellCommand(t *testing.T) {
	argv := ShellCommand("echo hi")
	if len(argv) != 3 || argv[2] != "echo hi" {
		t.Errorf("ShellCommand() = %q, want the command as the single last argument", argv)
	}
	want := "sh"
	if runtime.GOOS == "windows" {
		want = "cmd"
	}
	if argv[0] != want {
		t.Errorf("shell = %q, want %q", argv[0], want)
	}
}

func TestResolveLaunchFallsBack(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantWarning bool
	}{
		{"no section", "[tool.poetry]\nname = \"widgets\"\n", false},
		{"missing run-command", "[tool.omnirepo]\nmain-path = [\"widgets\"]\n", true},
		{"unparseable manifest", "[tool.omnirepo\n", true},
		{"unbalanced quote", "[tool.omnirepo]\nmain-path = [\"widgets\"]\nrun-command = \"python '%MAIN_PATH%\"\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ws := newTestResolver(t, map[string]string{"widgets": "packages"})
			writePackageManifest(t, ws, "packages", "widgets", tt.content)

			plan, err := r.Resolve("widgets")
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			want := []string{"poetry", "run", "python", filepath.Join("packages", "acme", "widgets", "widgets")}
			if len(plan.Invocations) != 1 || !reflect.DeepEqual(plan.Invocations[0].Argv, want) {
				t.Errorf("Invocations = %+v, want default launch %v", plan.Invocations, want)
			}
			if (plan.Warning != nil) != tt.wantWarning {
				t.Errorf("Warning = %v, want warning: %v", plan.Warning, tt.wantWarning)
			}
		})
	}
}

func TestWithTaskRunner(t *testing.T) {
	ws, err := workspace.New(t.TempDir(), config.New("acme", ""))
	if err != nil {
		t.Fatal(err)
	}
	r := New(ws, mapLocator{}, WithTaskRunner(TaskRunner{Tool: "uv"}))

	plan, err := r.Resolve("lint")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"uv", "run", "task", "lint"}
	if !reflect.DeepEqual(plan.Invocations[0].Argv, want) {
		t.Errorf("Argv = %v, want %v", plan.Invocations[0].Argv, want)
	}
}
