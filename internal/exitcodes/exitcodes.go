// Package exitcodes defines the process exit codes returned by the omnirepo binary.
package exitcodes

const (
	Success      = 0
	GeneralError = 1
	UsageError   = 2
	ConfigError  = 3
	NotFound     = 4
	// ManifestError means the build manifest could not be read or written.
	ManifestError = 5
)
