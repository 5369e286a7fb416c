package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LockFile is created at the workspace root while a mutating command runs.
const LockFile = ".omnirepo.lock"

// ErrLocked is returned when another process holds the workspace lock.
var ErrLocked = errors.New("workspace is locked by another omnirepo process")

// Lock is an exclusive advisory lock on a workspace root.
type Lock struct {
	file *os.File
}

// AcquireLock takes the workspace lock without blocking. It returns
// ErrLocked when another process already holds it.
func AcquireLock(root string) (*Lock, error) {
	path := filepath.Join(root, LockFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}
	return &Lock{file: f}, nil
}

// Release drops the lock. The lock file itself stays on disk.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
