package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/record"
)

// Forecast projects how long the remaining budget lasts at the trailing
// consumption rate. It is advisory only and never feeds admission decisions.
type Forecast struct {
	ContractID          uuid.UUID
	WindowDays          int
	WindowStart         time.Time
	WindowEnd           time.Time
	TotalInWindow       decimal.Decimal
	AvgDailyConsumption decimal.Decimal
	HasCeiling          bool
	Available           decimal.Decimal
	// DaysToExhaustion is nil when there is no estimate: no ceiling or no
	// consumption in the window.
	DaysToExhaustion *int64
	ExhaustionDate   *time.Time
	Advisory         bool
}

type Forecaster struct {
	agg  *Aggregator
	opts Options
}

func NewForecaster(store Store, opts Options) *Forecaster {
	opts = opts.withDefaults()

	return &Forecaster{agg: &Aggregator{store: store, opts: opts}, opts: opts}
}

// Forecast uses windowDays when positive, otherwise the contract or global default.
func (f *Forecaster) Forecast(ctx context.Context, contractID uuid.UUID, windowDays int) (*Forecast, error) {
	c, st, err := f.agg.Snapshot(ctx, contractID)
	if err != nil {
		return nil, err
	}

	window := f.opts.windowFor(c, windowDays)
	end := f.opts.now()
	start := end.AddDate(0, 0, -window)

	total, err := f.agg.store.SumRecords(ctx, record.Criteria{
		ContractID: &contractID,
		From:       &start,
		To:         &end,
	})
	if err != nil {
		return nil, &Rejection{
			Kind:    KindAggregationFailure,
			Details: AggregationDetails{ContractID: contractID},
			Err:     fmt.Errorf("summing forecast window: %w", err),
		}
	}

	fc := &Forecast{
		ContractID:          contractID,
		WindowDays:          window,
		WindowStart:         start,
		WindowEnd:           end,
		TotalInWindow:       total,
		AvgDailyConsumption: total.Div(decimal.NewFromInt(int64(window))),
		HasCeiling:          st.HasCeiling,
		Available:           st.Available,
		Advisory:            true,
	}

	if days, ok := daysToExhaustion(st, fc.AvgDailyConsumption); ok {
		fc.DaysToExhaustion = &days
		fc.ExhaustionDate = new(end.AddDate(0, 0, int(days)))
	}

	return fc, nil
}

func daysToExhaustion(st State, avg decimal.Decimal) (int64, bool) {
	if !st.HasCeiling || !avg.IsPositive() {
		return 0, false
	}

	if !st.Available.IsPositive() {
		return 0, true
	}

	return st.Available.Div(avg).Ceil().IntPart(), true
}
