package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is how often a blocked lock attempt is retried.
const lockRetryInterval = 25 * time.Millisecond

// FileLock is an advisory inter-process lock.
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock with retries
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock
	Unlock() error
}

// newFileLock returns a flock-backed lock on path.
func newFileLock(path string) FileLock {
	return flock.New(path)
}

// withLock runs fn while holding l.
func withLock(ctx context.Context, l FileLock, fn func() error) error {
	ok, err := l.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return err
	}
	if !ok {
		return context.Cause(ctx)
	}
	defer l.Unlock()
	return fn()
}
