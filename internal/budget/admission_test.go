package budget_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

func TestGate_TryAdmit(t *testing.T) {
	t.Run("admits and returns fresh state", func(t *testing.T) {
		c := newContract(1_000_000)
		store := seeded(c, 800_000)
		gate := budget.NewGate(store, lock.NewLocal(), testOptions())

		adm, err := gate.TryAdmit(context.Background(), intent(c.ID, 100_000))
		require.NoError(t, err)

		assert.Equal(t, record.StatusPending, adm.Record.Status)
		assert.Equal(t, 1, adm.Attempts)
		assert.True(t, adm.State.ConsumedValue.Equal(money(900_000)))
		assert.True(t, adm.State.Available.Equal(money(100_000)))
		assert.Equal(t, budget.RiskAlert, adm.State.Risk)

		stored, err := store.GetRecord(context.Background(), adm.Record.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, *stored.ContractID)
	})

	t.Run("insufficient budget reports numeric context", func(t *testing.T) {
		c := newContract(1_000_000)
		store := seeded(c, 850_000)
		gate := budget.NewGate(store, lock.NewLocal(), testOptions())

		_, err := gate.TryAdmit(context.Background(), intent(c.ID, 200_000))

		rej := requireKind(t, err, budget.KindInsufficientBudget)
		details, ok := rej.Details.(budget.BudgetDetails)
		require.True(t, ok)
		assert.True(t, details.Available.Equal(money(150_000)))
		assert.True(t, details.ProposedValue.Equal(money(200_000)))
		assert.True(t, details.CeilingValue.Equal(money(1_000_000)))
		assert.True(t, details.ConsumedValue.Equal(money(850_000)))
		assert.True(t, details.PercentExecuted.Equal(money(85)))
		assert.False(t, rej.Transient())
	})

	t.Run("value equal to available is admitted", func(t *testing.T) {
		c := newContract(1_000_000)
		gate := budget.NewGate(seeded(c, 850_000), lock.NewLocal(), testOptions())

		adm, err := gate.TryAdmit(context.Background(), intent(c.ID, 150_000))
		require.NoError(t, err)
		assert.True(t, adm.State.Available.IsZero())
		assert.Equal(t, budget.RiskCritical, adm.State.Risk)
	})

	t.Run("no ceiling skips capacity check", func(t *testing.T) {
		c := newContract(-1)
		gate := budget.NewGate(seeded(c, 5_000_000), lock.NewLocal(), testOptions())

		adm, err := gate.TryAdmit(context.Background(), intent(c.ID, 9_000_000))
		require.NoError(t, err)
		assert.Equal(t, budget.RiskNormal, adm.State.Risk)
	})

	t.Run("daily limit counts patient services across contracts", func(t *testing.T) {
		c := newContract(1_000_000)
		other := newContract(1_000_000)
		store := seeded(c)
		store.AddContract(other)

		in := intent(c.ID, 1_000)

		for i := range 5 {
			contractID := c.ID
			if i%2 == 1 {
				contractID = other.ID
			}

			r := newRecord(contractID, 1_000, now.Add(-time.Duration(i)*time.Hour))
			r.PatientID = in.PatientID
			r.ProcedureCode = "P" + string(rune('A'+i))
			store.AddRecord(r)
		}

		voided := newRecord(c.ID, 1_000, now)
		voided.PatientID = in.PatientID
		voided.ProcedureCode = "VOID"
		voided.Status = record.StatusVoided
		store.AddRecord(voided)

		_, err := budget.NewGate(store, lock.NewLocal(), testOptions()).TryAdmit(context.Background(), in)

		rej := requireKind(t, err, budget.KindDailyLimitExceeded)
		assert.Equal(t, budget.DailyLimitDetails{CountToday: 5, Limit: 5}, rej.Details)
	})

	t.Run("contract daily limit override", func(t *testing.T) {
		c := newContract(1_000_000)
		c.MaxServicesPerDay = new(1)
		store := seeded(c)

		in := intent(c.ID, 1_000)

		r := newRecord(c.ID, 1_000, now)
		r.PatientID = in.PatientID
		r.ProcedureCode = "OTHER"
		store.AddRecord(r)

		_, err := budget.NewGate(store, lock.NewLocal(), testOptions()).TryAdmit(context.Background(), in)

		rej := requireKind(t, err, budget.KindDailyLimitExceeded)
		assert.Equal(t, budget.DailyLimitDetails{CountToday: 1, Limit: 1}, rej.Details)
	})

	t.Run("duplicate service", func(t *testing.T) {
		c := newContract(1_000_000)
		store := seeded(c)

		in := intent(c.ID, 1_000)

		existing := newRecord(c.ID, 1_000, now.Add(-3*time.Hour))
		existing.PatientID = in.PatientID
		store.AddRecord(existing)

		_, err := budget.NewGate(store, lock.NewLocal(), testOptions()).TryAdmit(context.Background(), in)

		rej := requireKind(t, err, budget.KindDuplicateService)
		assert.Equal(t, budget.DuplicateDetails{RecordID: existing.ID, ServiceDate: existing.ServiceDate}, rej.Details)
	})

	t.Run("voided duplicate does not block", func(t *testing.T) {
		c := newContract(1_000_000)
		store := seeded(c)

		in := intent(c.ID, 1_000)

		existing := newRecord(c.ID, 1_000, now)
		existing.PatientID = in.PatientID
		existing.Status = record.StatusVoided
		store.AddRecord(existing)

		_, err := budget.NewGate(store, lock.NewLocal(), testOptions()).TryAdmit(context.Background(), in)
		assert.NoError(t, err)
	})

	t.Run("unknown contract", func(t *testing.T) {
		missing := uuid.New()

		_, err := budget.NewGate(seeded(newContract(10)), lock.NewLocal(), testOptions()).
			TryAdmit(context.Background(), intent(missing, 1))

		rej := requireKind(t, err, budget.KindContractNotFound)
		assert.Equal(t, budget.ContractDetails{ContractID: missing}, rej.Details)
	})

	t.Run("expired contract", func(t *testing.T) {
		c := newContract(1_000_000)
		c.ValidTo = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

		_, err := budget.NewGate(seeded(c), lock.NewLocal(), testOptions()).
			TryAdmit(context.Background(), intent(c.ID, 1))

		requireKind(t, err, budget.KindContractExpired)
	})

	t.Run("contract in force through its last day", func(t *testing.T) {
		c := newContract(1_000_000)
		c.ValidTo = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

		_, err := budget.NewGate(seeded(c), lock.NewLocal(), testOptions()).
			TryAdmit(context.Background(), intent(c.ID, 1))

		assert.NoError(t, err)
	})

	t.Run("invalid intent", func(t *testing.T) {
		in := intent(uuid.New(), 1)
		in.ProcedureCode = " "

		_, err := budget.NewGate(seeded(newContract(10)), lock.NewLocal(), testOptions()).TryAdmit(context.Background(), in)
		assert.ErrorIs(t, err, budget.ErrInvalidIntent)
	})
}

func TestGate_ChecksRunInOrder(t *testing.T) {
	// An expired contract that is also over budget reports expiry, and a
	// duplicate on it reports the duplicate first.
	c := newContract(100)
	c.ValidTo = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	store := seeded(c, 100)

	in := intent(c.ID, 500)
	gate := budget.NewGate(store, lock.NewLocal(), testOptions())

	_, err := gate.TryAdmit(context.Background(), in)
	requireKind(t, err, budget.KindContractExpired)

	dup := newRecord(c.ID, 1, now)
	dup.PatientID = in.PatientID
	store.AddRecord(dup)

	_, err = gate.TryAdmit(context.Background(), in)
	requireKind(t, err, budget.KindDuplicateService)
}

func TestGate_ConcurrentAdmissionsNeverOvershoot(t *testing.T) {
	lockers := map[string]lock.Locker{
		"keyed lock":      lock.NewLocal(),
		"optimistic only": unlocked{},
	}

	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			c := newContract(1_000_000)
			store := seeded(c, 850_000)
			gate := budget.NewGate(store, locker, testOptions())

			const proposals = 8

			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				admitted int
				kinds    []budget.Kind
			)

			for range proposals {
				wg.Add(1)

				go func() {
					defer wg.Done()

					_, err := gate.TryAdmit(context.Background(), intent(c.ID, 100_000))

					mu.Lock()
					defer mu.Unlock()

					if err == nil {
						admitted++
						return
					}

					kinds = append(kinds, budget.KindOf(err))
				}()
			}

			wg.Wait()

			assert.Equal(t, 1, admitted)

			for _, k := range kinds {
				assert.Contains(t, []budget.Kind{budget.KindInsufficientBudget, budget.KindConcurrentUpdateConflict}, k)
			}

			st, err := budget.NewAggregator(store, lock.NewLocal(), testOptions()).Recompute(context.Background(), c.ID)
			require.NoError(t, err)
			assert.True(t, st.ConsumedValue.Equal(money(950_000)))
			assert.True(t, st.ConsumedValue.LessThanOrEqual(st.CeilingValue))
		})
	}
}

func TestGate_DifferentContractsDoNotBlock(t *testing.T) {
	a := newContract(1_000)
	b := newContract(1_000)
	store := seeded(a)
	store.AddContract(b)

	locker := lock.NewLocal()

	held, err := locker.Acquire(context.Background(), a.ID.String())
	require.NoError(t, err)
	defer held.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = budget.NewGate(store, locker, testOptions()).TryAdmit(ctx, intent(b.ID, 10))
	assert.NoError(t, err)
}

func TestGate_FailsClosed(t *testing.T) {
	c := newContract(1_000_000)
	in := intent(c.ID, 1)
	dbErr := errors.New("read timeout")

	type testCase struct {
		name      string
		setupMock func(s *budget.MockStore, tx *budget.MockTx)
		wantKind  budget.Kind
	}

	tests := []testCase{
		{
			name: "aggregation failure",
			setupMock: func(s *budget.MockStore, tx *budget.MockTx) {
				s.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().FindRecords(gomock.Any(), gomock.Any()).Return(nil, nil)
				tx.EXPECT().GetContract(gomock.Any(), c.ID).Return(c.Clone(), nil)
				tx.EXPECT().SumRecords(gomock.Any(), gomock.Any()).Return(money(0), dbErr)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantKind: budget.KindAggregationFailure,
		},
		{
			name: "conflicts exhaust retries",
			setupMock: func(s *budget.MockStore, tx *budget.MockTx) {
				s.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
				tx.EXPECT().FindRecords(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
				tx.EXPECT().GetContract(gomock.Any(), c.ID).Return(c.Clone(), nil).Times(4)
				tx.EXPECT().SumRecords(gomock.Any(), gomock.Any()).Return(money(0), nil).Times(4)
				tx.EXPECT().CountRecords(gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
				tx.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				tx.EXPECT().
					UpdateConsumed(gomock.Any(), c.ID, gomock.Any(), now, c.Version).
					Return(contract.ErrVersionConflict).
					Times(2)
				tx.EXPECT().Rollback().Return(nil).Times(2)
			},
			wantKind: budget.KindConcurrentUpdateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := budget.NewMockStore(ctrl)
			tx := budget.NewMockTx(ctrl)
			tt.setupMock(store, tx)

			opts := testOptions()
			opts.MaxRetries = 1

			adm, err := budget.NewGate(store, lock.NewLocal(), opts).TryAdmit(context.Background(), in)

			assert.Nil(t, adm)
			requireKind(t, err, tt.wantKind)
		})
	}
}

func TestGate_RecomputeWaitsForInFlightAdmission(t *testing.T) {
	c := newContract(1_000_000)
	store := &hookedStore{Store: seeded(c, 500_000)}
	locker := newWatchedLocker()
	svc := budget.NewService(store, locker, testOptions())

	type result struct {
		state budget.State
		err   error
	}

	var once sync.Once

	done := make(chan result, 1)

	// Mid-admission, a budget read on the same contract arrives.
	store.onSum = func() {
		once.Do(func() {
			awaitLease(t, locker, c.ID.String())

			go func() {
				st, err := svc.GetBudgetState(context.Background(), c.ID)
				done <- result{state: st, err: err}
			}()

			awaitLease(t, locker, c.ID.String())
		})
	}

	adm, err := svc.TryAdmit(context.Background(), intent(c.ID, 100_000))
	require.NoError(t, err)
	assert.Equal(t, 1, adm.Attempts)

	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.state.ConsumedValue.Equal(money(600_000)))
}

func TestGate_DailyLimitHoldsAcrossConcurrentContracts(t *testing.T) {
	a := newContract(1_000_000)
	b := newContract(1_000_000)
	patientID := uuid.New()

	base := seeded(a)
	base.AddContract(b)

	for i := range 4 {
		r := newRecord(a.ID, 1_000, now)
		r.PatientID = patientID
		r.ProcedureCode = fmt.Sprintf("P%d", i)
		base.AddRecord(r)
	}

	store := &hookedStore{Store: base}
	locker := newWatchedLocker()
	gate := budget.NewGate(store, locker, testOptions())

	var once sync.Once

	counting := make(chan struct{})
	proceed := make(chan struct{})

	store.onCount = func() {
		once.Do(func() {
			close(counting)
			<-proceed
		})
	}

	errs := make(chan error, 2)
	admit := func(contractID uuid.UUID) {
		in := intent(contractID, 1_000)
		in.PatientID = patientID

		_, err := gate.TryAdmit(context.Background(), in)
		errs <- err
	}

	go admit(a.ID)

	select {
	case <-counting:
	case <-time.After(2 * time.Second):
		t.Fatal("first admission never reached the daily count")
	}

	go admit(b.ID)

	patientLease := "patient:" + patientID.String()
	awaitLease(t, locker, patientLease)
	awaitLease(t, locker, patientLease)
	close(proceed)

	kinds := []budget.Kind{budget.KindOf(<-errs), budget.KindOf(<-errs)}
	assert.ElementsMatch(t, []budget.Kind{"", budget.KindDailyLimitExceeded}, kinds)

	from, to := record.DayRange(now)
	count, err := base.CountRecords(context.Background(), record.Criteria{PatientID: &patientID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestGate_ServiceDateOffsetsShareCalendarDay(t *testing.T) {
	c := newContract(1_000_000)
	store := seeded(c)

	existing := newRecord(c.ID, 1_000, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	store.AddRecord(existing)

	bogota := time.FixedZone("COT", -5*60*60)
	gate := budget.NewGate(store, lock.NewLocal(), testOptions())

	t.Run("late local time matches a date-only record", func(t *testing.T) {
		in := intent(c.ID, 1_000)
		in.PatientID = existing.PatientID
		in.ServiceDate = time.Date(2025, 6, 15, 20, 0, 0, 0, bogota)

		_, err := gate.TryAdmit(context.Background(), in)
		requireKind(t, err, budget.KindDuplicateService)
	})

	t.Run("admitted record is stored as its calendar day", func(t *testing.T) {
		in := intent(c.ID, 1_000)
		in.ServiceDate = time.Date(2025, 6, 15, 20, 0, 0, 0, bogota)

		adm, err := gate.TryAdmit(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), adm.Record.ServiceDate)
	})
}
