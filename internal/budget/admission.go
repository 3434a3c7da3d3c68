package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

// Intent is a proposed billable service that has not been recorded yet.
type Intent struct {
	ContractID    uuid.UUID
	PatientID     uuid.UUID
	ProcedureCode string
	ServiceDate   time.Time
	Value         decimal.Decimal
}

func (i Intent) validate() error {
	switch {
	case i.ContractID == uuid.Nil:
		return fmt.Errorf("%w: contract id is required", ErrInvalidIntent)
	case i.PatientID == uuid.Nil:
		return fmt.Errorf("%w: patient id is required", ErrInvalidIntent)
	case strings.TrimSpace(i.ProcedureCode) == "":
		return fmt.Errorf("%w: procedure code is required", ErrInvalidIntent)
	case i.ServiceDate.IsZero():
		return fmt.Errorf("%w: service date is required", ErrInvalidIntent)
	case i.Value.IsNegative():
		return fmt.Errorf("%w: value must not be negative", ErrInvalidIntent)
	}

	return nil
}

// Admission is the outcome of a successful TryAdmit.
type Admission struct {
	Record   *record.Record
	State    State
	Attempts int
}

// Gate decides whether a service intent may be recorded against its contract.
// The capacity check and the write of the new consumed value happen in one
// unit per contract; admissions on different contracts do not block each other.
type Gate struct {
	agg    *Aggregator
	serial *serializer
	opts   Options
}

func NewGate(store Store, locker lock.Locker, opts Options) *Gate {
	opts = opts.withDefaults()

	agg := newAggregator(store, locker, opts)

	return &Gate{agg: agg, serial: agg.serial, opts: opts}
}

// TryAdmit runs the duplicate, validity, capacity and daily-rate checks in that
// order and persists the record only when all of them pass. Rejections are
// returned as *Rejection. Besides the contract lease, the patient lease is held
// so the patient-wide daily count cannot be raced from another contract.
func (g *Gate) TryAdmit(ctx context.Context, in Intent) (*Admission, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	in.ProcedureCode = strings.TrimSpace(in.ProcedureCode)
	in.ServiceDate = record.Day(in.ServiceDate)

	var (
		adm      Admission
		attempts int
	)

	err := g.serial.run(ctx, in.ContractID, func(ctx context.Context, tx Tx) error {
		attempts++

		rec, st, err := g.admit(ctx, tx, in)
		if err != nil {
			return err
		}

		adm = Admission{Record: rec, State: st}

		return nil
	}, patientKey(in.PatientID))
	if err != nil {
		kind := KindOf(err)
		if kind == "" {
			g.opts.Logger.Error("failed to admit service", "contract_id", in.ContractID, "error", err)

			return nil, err
		}

		g.opts.Logger.Info("service rejected",
			"contract_id", in.ContractID,
			"patient_id", in.PatientID,
			"procedure_code", in.ProcedureCode,
			"kind", kind,
		)

		return nil, err
	}

	adm.Attempts = attempts

	g.opts.Logger.Debug("service admitted",
		"contract_id", in.ContractID,
		"record_id", adm.Record.ID,
		"value", in.Value.String(),
		"available", adm.State.Available.String(),
		"risk", adm.State.Risk.String(),
	)

	return &adm, nil
}

func (g *Gate) admit(ctx context.Context, tx Tx, in Intent) (*record.Record, State, error) {
	dayStart, dayEnd := record.DayRange(in.ServiceDate)

	if err := g.checkDuplicate(ctx, tx, in, dayStart, dayEnd); err != nil {
		return nil, State{}, err
	}

	c, err := g.checkValidity(ctx, tx, in.ContractID)
	if err != nil {
		return nil, State{}, err
	}

	if err := g.checkCapacity(ctx, tx, c, in.Value); err != nil {
		return nil, State{}, err
	}

	if err := g.checkDailyRate(ctx, tx, c, in.PatientID, dayStart, dayEnd); err != nil {
		return nil, State{}, err
	}

	now := g.opts.now()
	rec := &record.Record{
		ID:            uuid.New(),
		PatientID:     in.PatientID,
		ProcedureCode: in.ProcedureCode,
		ServiceDate:   in.ServiceDate,
		Value:         in.Value,
		Status:        record.StatusPending,
		ContractID:    new(in.ContractID),
		CreatedAt:     now,
	}

	if err := tx.CreateRecord(ctx, rec); err != nil {
		return nil, State{}, fmt.Errorf("creating service record: %w", err)
	}

	updated, st, err := g.agg.recompute(ctx, tx, in.ContractID)
	if err != nil {
		return nil, State{}, err
	}

	// Another writer slipped past the lease. Let the version check decide again.
	if updated.HasCeiling && updated.ConsumedValue.GreaterThan(updated.CeilingValue) {
		return nil, State{}, fmt.Errorf("consumed value exceeds ceiling after admission: %w", contract.ErrVersionConflict)
	}

	return rec, st, nil
}

func (g *Gate) checkDuplicate(ctx context.Context, q Queries, in Intent, from, to time.Time) error {
	existing, err := q.FindRecords(ctx, record.Criteria{
		ContractID:    &in.ContractID,
		PatientID:     &in.PatientID,
		ProcedureCode: in.ProcedureCode,
		From:          &from,
		To:            &to,
	})
	if err != nil {
		return fmt.Errorf("finding duplicate services: %w", err)
	}

	if len(existing) == 0 {
		return nil
	}

	return &Rejection{
		Kind: KindDuplicateService,
		Details: DuplicateDetails{
			RecordID:    existing[0].ID,
			ServiceDate: existing[0].ServiceDate,
		},
	}
}

func (g *Gate) checkValidity(ctx context.Context, q Queries, contractID uuid.UUID) (*contract.Contract, error) {
	c, err := g.agg.contract(ctx, q, contractID)
	if err != nil {
		return nil, err
	}

	if !c.InForce(g.opts.now()) {
		return nil, &Rejection{
			Kind: KindContractExpired,
			Details: ContractDetails{
				ContractID: c.ID,
				ValidFrom:  new(c.ValidFrom),
				ValidTo:    new(c.ValidTo),
			},
		}
	}

	return c, nil
}

// checkCapacity compares against a fresh sum, not the cached consumed value.
func (g *Gate) checkCapacity(ctx context.Context, q Queries, c *contract.Contract, value decimal.Decimal) error {
	if !c.HasCeiling {
		return nil
	}

	consumed, err := g.agg.sum(ctx, q, c.ID)
	if err != nil {
		return err
	}

	fresh := c.Clone()
	fresh.ConsumedValue = consumed
	st := NewState(fresh, g.opts.thresholdsFor(fresh))

	if value.LessThanOrEqual(st.Available) {
		return nil
	}

	return &Rejection{
		Kind: KindInsufficientBudget,
		Details: BudgetDetails{
			ProposedValue:   value,
			Available:       st.Available,
			CeilingValue:    st.CeilingValue,
			ConsumedValue:   st.ConsumedValue,
			PercentExecuted: st.PercentExecuted,
		},
	}
}

// checkDailyRate counts the patient's services for the day across all contracts.
func (g *Gate) checkDailyRate(ctx context.Context, q Queries, c *contract.Contract, patientID uuid.UUID, from, to time.Time) error {
	count, err := q.CountRecords(ctx, record.Criteria{
		PatientID: &patientID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		return fmt.Errorf("counting daily services: %w", err)
	}

	limit := g.opts.dailyLimitFor(c)
	if count < limit {
		return nil
	}

	return &Rejection{
		Kind:    KindDailyLimitExceeded,
		Details: DailyLimitDetails{CountToday: count, Limit: limit},
	}
}
