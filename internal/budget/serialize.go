package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
)

// serializer runs budget mutations for one contract as a single unit: the
// contract lease is held for the whole transaction and the commit is guarded
// by the contract version. Optimistic conflicts and lease timeouts are retried
// up to Options.MaxRetries times.
//
// Extra leases are taken after the contract lease, in the order given. No
// caller holds an extra lease while waiting for a contract lease.
type serializer struct {
	store  Store
	locker lock.Locker
	opts   Options
}

func (s *serializer) run(ctx context.Context, contractID uuid.UUID, fn func(ctx context.Context, tx Tx) error, extra ...string) error {
	attempts := s.opts.MaxRetries + 1

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.once(ctx, contractID, fn, extra)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}

		lastErr = err
		s.opts.Logger.Warn("contract update conflict",
			"contract_id", contractID,
			"attempt", attempt,
			"error", err,
		)
	}

	return &Rejection{
		Kind:    KindConcurrentUpdateConflict,
		Details: ConflictDetails{ContractID: contractID, Attempts: attempts},
		Err:     lastErr,
	}
}

func (s *serializer) once(ctx context.Context, contractID uuid.UUID, fn func(ctx context.Context, tx Tx) error, extra []string) error {
	for _, key := range append([]string{contractID.String()}, extra...) {
		lease, err := s.locker.Acquire(ctx, key)
		if err != nil {
			return fmt.Errorf("acquiring lease %s: %w", key, err)
		}

		defer func() {
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				s.opts.Logger.Error("failed to release lease", "contract_id", contractID, "key", key, "error", err)
			}
		}()
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// patientKey is disjoint from contract keys, which are bare UUIDs.
func patientKey(id uuid.UUID) string {
	return "patient:" + id.String()
}

func retryable(err error) bool {
	return errors.Is(err, contract.ErrVersionConflict) || errors.Is(err, lock.ErrNotAcquired)
}
