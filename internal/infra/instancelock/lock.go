// Package instancelock keeps two houndup processes from driving the same workspace.
package instancelock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// FileName is created next to the logs under <root>/.houndup.
const FileName = "houndup.lock"

type Lock struct {
	path string
	fl   *flock.Flock
}

var _ ports.InstanceLock = (*Lock)(nil)

func New(path string) *Lock {
	return &Lock{path: path, fl: flock.New(path)}
}

// ForRoot returns the lock for a workspace root.
func ForRoot(root string) *Lock {
	return New(filepath.Join(root, ".houndup", FileName))
}

func (l *Lock) Path() string { return l.path }

// TryLock reports false without blocking when another process holds the lock.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, &domain.OpError{
			Op:   "instancelock.mkdir",
			Kind: domain.KindExecution,
			Path: l.path,
			Err:  err,
		}
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, &domain.OpError{
			Op:   "instancelock.trylock",
			Kind: domain.KindExecution,
			Path: l.path,
			Err:  err,
		}
	}
	return ok, nil
}

func (l *Lock) Unlock() error {
	if err := l.fl.Unlock(); err != nil {
		return &domain.OpError{
			Op:   "instancelock.unlock",
			Kind: domain.KindExecution,
			Path: l.path,
			Err:  err,
		}
	}
	return nil
}
