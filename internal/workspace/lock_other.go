//go:build !unix

package workspace

import "os"

// Advisory locking is only implemented on unix; elsewhere the lock file is
// created but not enforced.
func lockFile(f *os.File) error { return nil }

func unlockFile(f *os.File) error { return nil }
