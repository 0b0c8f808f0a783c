package store

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked means another reconciliation pass holds the store lock.
var ErrLocked = errors.New("store is locked by another run")

// AcquireRunLock enforces the one-pass-per-store rule. The caller must
// Unlock on every exit path.
func AcquireRunLock(storePath string) (*flock.Flock, error) {
	fl := flock.New(storePath + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl, nil
}
