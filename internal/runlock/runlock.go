// Package runlock serializes mutating runs against a single music directory.
// Destructive resolution and relocation take the lock; dry runs do not.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = ".curator.lock"

// Lock guards a directory against concurrent mutating curator runs.
type Lock struct {
	path string
	lock *flock.Flock
}

// New builds a lock scoped to the given directory.
func New(dir string) *Lock {
	path := filepath.Join(dir, lockName)
	return &Lock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. A held lock means another curator
// run is mutating the same directory.
func (l *Lock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return errors.New("another curator run is already modifying this directory")
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
