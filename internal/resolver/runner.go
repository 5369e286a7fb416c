package resolver

import "runtime"

// TaskRunner builds the argv of the external package and task tools.
type TaskRunner struct {
	// Tool is the package manager executable.
	Tool string
}

// Poetry runs tasks through poetry and taskipy.
var Poetry = TaskRunner{Tool: "poetry"}

// Install installs the dependencies of the project in the working directory.
func (t TaskRunner) Install() []string {
	return []string{t.Tool, "install"}
}

// Task runs a named task of the project in the working directory.
func (t TaskRunner) Task(name string) []string {
	return []string{t.Tool, "run", "task", name}
}

// Python runs path with the project's interpreter.
func (t TaskRunner) Python(path string) []string {
	return []string{t.Tool, "run", "python", path}
}

// ShellCommand returns the argv that runs command through the platform
// shell: sh -c on unix, cmd /C on windows.
func ShellCommand(command string) []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", command}
	}
	return []string{"sh", "-c", command}
}
