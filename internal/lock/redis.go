package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisOptions tunes how long a lease lives and how hard Acquire retries.
type RedisOptions struct {
	Prefix        string
	TTL           time.Duration
	RetryInterval time.Duration
	MaxRetries    int
}

// Redis serializes across processes using bsm/redislock. A lease expires after
// TTL even if never released, so TTL must exceed the longest critical section.
type Redis struct {
	client *redislock.Client
	opts   RedisOptions
}

func NewRedis(rdb *redis.Client, opts RedisOptions) *Redis {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}

	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 50 * time.Millisecond
	}

	return &Redis{
		client: redislock.New(rdb),
		opts:   opts,
	}
}

func (r *Redis) Acquire(ctx context.Context, key string) (Lease, error) {
	strategy := redislock.LimitRetry(redislock.LinearBackoff(r.opts.RetryInterval), r.opts.MaxRetries)

	l, err := r.client.Obtain(ctx, r.opts.Prefix+key, r.opts.TTL, &redislock.Options{RetryStrategy: strategy})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		return nil, fmt.Errorf("obtaining redis lock %s: %w", key, err)
	}

	return &redisLease{lock: l}, nil
}

type redisLease struct {
	lock *redislock.Lock
}

func (rl *redisLease) Release(ctx context.Context) error {
	err := rl.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return fmt.Errorf("releasing redis lock: %w", err)
	}

	return nil
}
