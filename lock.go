package tst

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/blake2b-simd"
)

// lockPathFor derives the advisory lock file name for path: a sibling file
// named from a short BLAKE2b digest of the absolute path, so a relative
// and an absolute spelling of the same path map to the same lock file.
// Symlinks are not resolved, so a path reached through a symlink gets a
// different lock file.
func lockPathFor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	digest := blake2b.Sum256([]byte(abs))
	return fmt.Sprintf("%s.lock-%x", path, digest[:8]), nil
}

// advisoryLock is a best-effort single-writer lock taken at Open and
// released at Close. It is advisory only: nothing stops a second
// process from opening the same file directly, which produces undefined
// behavior for both.
type advisoryLock struct {
	path string
}

func acquireLock(path string) (*advisoryLock, error) {
	lockPath, err := lockPathFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	f.Close()
	return &advisoryLock{path: lockPath}, nil
}

func (l *advisoryLock) release() error {
	if l == nil {
		return nil
	}
	return os.Remove(l.path)
}
