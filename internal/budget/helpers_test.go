package budget_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/budget/memory"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testOptions() budget.Options {
	opts := budget.DefaultOptions()
	opts.Clock = func() time.Time { return now }
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	return opts
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newContract(ceiling int64) *contract.Contract {
	return &contract.Contract{
		ID:           uuid.New(),
		Company:      contract.Company{ID: uuid.New(), Name: "Salud Norte"},
		Name:         "EPS Norte 2025",
		ValidFrom:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		HasCeiling:   ceiling >= 0,
		CeilingValue: money(max(ceiling, 0)),
		Version:      1,
	}
}

func newRecord(contractID uuid.UUID, value int64, date time.Time) *record.Record {
	return &record.Record{
		ID:            uuid.New(),
		PatientID:     uuid.New(),
		ProcedureCode: "890201",
		ServiceDate:   date,
		Value:         money(value),
		Status:        record.StatusPending,
		ContractID:    new(contractID),
		CreatedAt:     date,
	}
}

func intent(contractID uuid.UUID, value int64) budget.Intent {
	return budget.Intent{
		ContractID:    contractID,
		PatientID:     uuid.New(),
		ProcedureCode: "890201",
		ServiceDate:   now,
		Value:         money(value),
	}
}

func requireKind(t *testing.T, err error, want budget.Kind) *budget.Rejection {
	t.Helper()

	var rej *budget.Rejection
	require.ErrorAs(t, err, &rej)
	require.Equal(t, want, rej.Kind)

	return rej
}

// seeded returns a memory store holding c and one record per value.
func seeded(c *contract.Contract, values ...int64) *memory.Store {
	s := memory.New()
	s.AddContract(c)

	for _, v := range values {
		s.AddRecord(newRecord(c.ID, v, now.AddDate(0, 0, -1)))
	}

	return s
}

// unlocked grants every lease immediately so only the version check serializes writers.
type unlocked struct{}

func (unlocked) Acquire(context.Context, string) (lock.Lease, error) { return unlocked{}, nil }
func (unlocked) Release(context.Context) error                       { return nil }

// hookedStore runs onSum and onCount inside transactions before the query.
type hookedStore struct {
	budget.Store
	onSum   func()
	onCount func()
}

func (s *hookedStore) Begin(ctx context.Context) (budget.Tx, error) {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &hookedTx{Tx: tx, store: s}, nil
}

type hookedTx struct {
	budget.Tx
	store *hookedStore
}

func (t *hookedTx) SumRecords(ctx context.Context, criteria record.Criteria) (decimal.Decimal, error) {
	if t.store.onSum != nil {
		t.store.onSum()
	}

	return t.Tx.SumRecords(ctx, criteria)
}

func (t *hookedTx) CountRecords(ctx context.Context, criteria record.Criteria) (int, error) {
	if t.store.onCount != nil {
		t.store.onCount()
	}

	return t.Tx.CountRecords(ctx, criteria)
}

// watchedLocker reports each key before waiting for its lease.
type watchedLocker struct {
	lock.Locker
	acquiring chan string
}

func newWatchedLocker() watchedLocker {
	return watchedLocker{Locker: lock.NewLocal(), acquiring: make(chan string, 64)}
}

func (l watchedLocker) Acquire(ctx context.Context, key string) (lock.Lease, error) {
	l.acquiring <- key
	return l.Locker.Acquire(ctx, key)
}

func awaitLease(t *testing.T, l watchedLocker, key string) {
	t.Helper()

	timeout := time.After(2 * time.Second)

	for {
		select {
		case got := <-l.acquiring:
			if got == key {
				return
			}
		case <-timeout:
			t.Fatalf("no lease requested for %s", key)
		}
	}
}
