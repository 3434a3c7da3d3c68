package budget

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
)

type AlertFilter struct {
	CompanyID   *uuid.UUID
	OnlyInForce bool
}

type AlertEntry struct {
	ContractID      uuid.UUID
	ContractName    string
	CompanyID       uuid.UUID
	CompanyName     string
	PercentExecuted decimal.Decimal
	Available       decimal.Decimal
	CeilingValue    decimal.Decimal
	ConsumedValue   decimal.Decimal
	Risk            Risk
}

// AlertFeed lists contracts in alert or critical state. Every contract is
// recomputed before it is classified.
type AlertFeed struct {
	agg   *Aggregator
	store Store
	opts  Options
}

func NewAlertFeed(store Store, locker lock.Locker, opts Options) *AlertFeed {
	opts = opts.withDefaults()

	return &AlertFeed{agg: newAggregator(store, locker, opts), store: store, opts: opts}
}

// ListAtRisk orders entries critical first, then by percent executed descending.
func (f *AlertFeed) ListAtRisk(ctx context.Context, filter AlertFilter) ([]AlertEntry, error) {
	contracts, err := f.store.ListContracts(ctx, contract.ListFilter{
		CompanyID:   filter.CompanyID,
		OnlyCeiling: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	now := f.opts.now()

	candidates := make([]*contract.Contract, 0, len(contracts))
	for _, c := range contracts {
		if filter.OnlyInForce && !c.InForce(now) {
			continue
		}

		candidates = append(candidates, c)
	}

	states := make([]State, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.AlertConcurrency)

	for i, c := range candidates {
		g.Go(func() error {
			st, err := f.agg.Recompute(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("recomputing contract %s: %w", c.ID, err)
			}

			states[i] = st

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]AlertEntry, 0)

	for i, c := range candidates {
		st := states[i]
		if st.Risk < RiskAlert {
			continue
		}

		entries = append(entries, AlertEntry{
			ContractID:      c.ID,
			ContractName:    c.Name,
			CompanyID:       c.Company.ID,
			CompanyName:     c.Company.Name,
			PercentExecuted: st.PercentExecuted,
			Available:       st.Available,
			CeilingValue:    st.CeilingValue,
			ConsumedValue:   st.ConsumedValue,
			Risk:            st.Risk,
		})
	}

	slices.SortStableFunc(entries, compareAlerts)

	return entries, nil
}

func compareAlerts(a, b AlertEntry) int {
	if c := cmp.Compare(b.Risk, a.Risk); c != 0 {
		return c
	}

	if c := b.PercentExecuted.Cmp(a.PercentExecuted); c != 0 {
		return c
	}

	return cmp.Compare(a.ContractName, b.ContractName)
}
