package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/lock"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

// Service is the entry point used by the transport layer.
type Service struct {
	store      Store
	aggregator *Aggregator
	gate       *Gate
	forecaster *Forecaster
	alerts     *AlertFeed
	serial     *serializer
	opts       Options
}

func NewService(store Store, locker lock.Locker, opts Options) *Service {
	opts = opts.withDefaults()

	return &Service{
		store:      store,
		aggregator: newAggregator(store, locker, opts),
		gate:       NewGate(store, locker, opts),
		forecaster: NewForecaster(store, opts),
		alerts:     NewAlertFeed(store, locker, opts),
		serial:     &serializer{store: store, locker: locker, opts: opts},
		opts:       opts,
	}
}

func (s *Service) TryAdmit(ctx context.Context, in Intent) (*Admission, error) {
	return s.gate.TryAdmit(ctx, in)
}

// GetBudgetState recomputes the contract before answering.
func (s *Service) GetBudgetState(ctx context.Context, contractID uuid.UUID) (State, error) {
	return s.aggregator.Recompute(ctx, contractID)
}

func (s *Service) ListAtRisk(ctx context.Context, filter AlertFilter) ([]AlertEntry, error) {
	return s.alerts.ListAtRisk(ctx, filter)
}

func (s *Service) Forecast(ctx context.Context, contractID uuid.UUID, windowDays int) (*Forecast, error) {
	return s.forecaster.Forecast(ctx, contractID, windowDays)
}

// SetCeiling changes the contract ceiling. A ceiling below the current
// consumption is rejected with CEILING_BELOW_CONSUMED.
func (s *Service) SetCeiling(ctx context.Context, contractID uuid.UUID, hasCeiling bool, ceiling decimal.Decimal) (State, error) {
	if hasCeiling && ceiling.IsNegative() {
		return State{}, fmt.Errorf("%w: ceiling must not be negative", ErrInvalidCeiling)
	}

	if !hasCeiling {
		ceiling = decimal.Zero
	}

	var st State

	err := s.serial.run(ctx, contractID, func(ctx context.Context, tx Tx) error {
		c, err := s.aggregator.contract(ctx, tx, contractID)
		if err != nil {
			return err
		}

		consumed, err := s.aggregator.sum(ctx, tx, contractID)
		if err != nil {
			return err
		}

		if hasCeiling && ceiling.LessThan(consumed) {
			return &Rejection{
				Kind:    KindCeilingBelowConsumed,
				Details: CeilingDetails{ProposedCeiling: ceiling, ConsumedValue: consumed},
			}
		}

		if err := tx.UpdateCeiling(ctx, contractID, hasCeiling, ceiling, c.Version); err != nil {
			return fmt.Errorf("updating ceiling: %w", err)
		}

		_, st, err = s.aggregator.recompute(ctx, tx, contractID)

		return err
	})
	if err != nil {
		return State{}, err
	}

	s.opts.Logger.Info("contract ceiling updated",
		"contract_id", contractID,
		"has_ceiling", hasCeiling,
		"ceiling", ceiling.String(),
		"risk", st.Risk.String(),
	)

	return st, nil
}

// VoidRecord voids a service record and recomputes its contract under the
// same serialization as admissions. It returns nil state for records that are
// not attributed to a contract. Voiding an already voided record is a no-op.
func (s *Service) VoidRecord(ctx context.Context, recordID uuid.UUID) (*State, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("getting service record: %w", err)
	}

	if rec.ContractID == nil {
		if rec.Status == record.StatusVoided {
			return nil, nil
		}

		if err := s.store.VoidRecord(ctx, recordID); err != nil {
			return nil, fmt.Errorf("voiding service record: %w", err)
		}

		return nil, nil
	}

	contractID := *rec.ContractID

	var st State

	err = s.serial.run(ctx, contractID, func(ctx context.Context, tx Tx) error {
		current, err := tx.GetRecord(ctx, recordID)
		if err != nil {
			return fmt.Errorf("getting service record: %w", err)
		}

		if current.Status != record.StatusVoided {
			if err := tx.VoidRecord(ctx, recordID); err != nil {
				return fmt.Errorf("voiding service record: %w", err)
			}
		}

		_, st, err = s.aggregator.recompute(ctx, tx, contractID)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.opts.Logger.Info("service record voided",
		"record_id", recordID,
		"contract_id", contractID,
		"consumed", st.ConsumedValue.String(),
	)

	return &st, nil
}
