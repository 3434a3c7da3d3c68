package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

// Aggregator is the single recomputation path for a contract's consumed value.
// Recompute is idempotent: with no intervening writes it always stores the same sum.
type Aggregator struct {
	store  Store
	serial *serializer
	opts   Options
}

func NewAggregator(store Store, locker lock.Locker, opts Options) *Aggregator {
	return newAggregator(store, locker, opts.withDefaults())
}

func newAggregator(store Store, locker lock.Locker, opts Options) *Aggregator {
	return &Aggregator{
		store:  store,
		serial: &serializer{store: store, locker: locker, opts: opts},
		opts:   opts,
	}
}

// Recompute sums the contract's non-voided records, writes the result and
// returns the fresh budget state. It holds the contract lease like any other
// writer, so it waits behind in-flight admissions instead of invalidating them.
// On a failed read the cached value is left untouched and an
// AGGREGATION_FAILURE rejection is returned.
func (a *Aggregator) Recompute(ctx context.Context, contractID uuid.UUID) (State, error) {
	var st State

	err := a.serial.run(ctx, contractID, func(ctx context.Context, tx Tx) error {
		var err error
		_, st, err = a.recompute(ctx, tx, contractID)

		return err
	})
	if err != nil {
		return State{}, err
	}

	return st, nil
}

// Snapshot computes the fresh state without writing it back.
func (a *Aggregator) Snapshot(ctx context.Context, contractID uuid.UUID) (*contract.Contract, State, error) {
	c, err := a.contract(ctx, a.store, contractID)
	if err != nil {
		return nil, State{}, err
	}

	consumed, err := a.sum(ctx, a.store, contractID)
	if err != nil {
		return nil, State{}, err
	}

	c.ConsumedValue = consumed

	return c, NewState(c, a.opts.thresholdsFor(c)), nil
}

// recompute runs inside q, which is usually a transaction owned by the caller.
func (a *Aggregator) recompute(ctx context.Context, q Queries, contractID uuid.UUID) (*contract.Contract, State, error) {
	c, err := a.contract(ctx, q, contractID)
	if err != nil {
		return nil, State{}, err
	}

	consumed, err := a.sum(ctx, q, contractID)
	if err != nil {
		return nil, State{}, err
	}

	now := a.opts.now()
	if err := q.UpdateConsumed(ctx, contractID, consumed, now, c.Version); err != nil {
		return nil, State{}, fmt.Errorf("updating consumed value: %w", err)
	}

	c.ConsumedValue = consumed
	c.LastRecomputedAt = &now
	c.Version++

	return c, NewState(c, a.opts.thresholdsFor(c)), nil
}

func (a *Aggregator) contract(ctx context.Context, q Queries, contractID uuid.UUID) (*contract.Contract, error) {
	c, err := q.GetContract(ctx, contractID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, &Rejection{
				Kind:    KindContractNotFound,
				Details: ContractDetails{ContractID: contractID},
				Err:     err,
			}
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (a *Aggregator) sum(ctx context.Context, q Queries, contractID uuid.UUID) (decimal.Decimal, error) {
	total, err := q.SumRecords(ctx, record.Criteria{ContractID: &contractID})
	if err != nil {
		return decimal.Zero, &Rejection{
			Kind:    KindAggregationFailure,
			Details: AggregationDetails{ContractID: contractID},
			Err:     err,
		}
	}

	return total, nil
}
