// Package lock provides keyed mutual exclusion used to serialize budget
// mutations per contract.
package lock

import (
	"context"
	"errors"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker grants exclusive leases on string keys. Leases on different keys
// never block each other.
type Locker interface {
	Acquire(ctx context.Context, key string) (Lease, error)
}

// Lease is held until Release is called.
type Lease interface {
	Release(ctx context.Context) error
}
