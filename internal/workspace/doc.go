// Package workspace binds a workspace root directory to its loaded registry.
//
// Every operation takes a *Context instead of reading the process working
// directory, so tests can run against isolated temporary roots.
//
// Mutating commands hold an exclusive advisory lock on the workspace for
// their whole duration. The lock only guards against two omnirepo processes
// writing the same registry; single-process behavior is unchanged.
package workspace
