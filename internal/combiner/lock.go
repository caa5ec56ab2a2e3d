package combiner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".eventkit-combine.lock"

// ErrLocked reports that another combine run owns the output directory.
var ErrLocked = errors.New("another combine run is writing to the output directory")

type dirLock struct {
	lock *flock.Flock
}

// lockOutputDir creates dir if needed and takes an exclusive, non-blocking
// lock on it.
func lockOutputDir(dir string) (*dirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return &dirLock{lock: lock}, nil
}

func (l *dirLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
