package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/techo/internal/budget/memory"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

func seed() (*memory.Store, *contract.Contract) {
	s := memory.New()
	c := &contract.Contract{
		ID:           uuid.New(),
		Name:         "Plan Basico",
		HasCeiling:   true,
		CeilingValue: decimal.NewFromInt(1_000),
	}
	s.AddContract(c)

	return s, c
}

func TestTx_CommitDetectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	s, c := seed()

	first, err := s.Begin(ctx)
	require.NoError(t, err)

	second, err := s.Begin(ctx)
	require.NoError(t, err)

	a, err := first.GetContract(ctx, c.ID)
	require.NoError(t, err)

	b, err := second.GetContract(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.Version)

	require.NoError(t, first.UpdateConsumed(ctx, c.ID, decimal.NewFromInt(10), time.Now(), a.Version))
	require.NoError(t, second.UpdateConsumed(ctx, c.ID, decimal.NewFromInt(20), time.Now(), b.Version))

	require.NoError(t, first.Commit())
	assert.ErrorIs(t, second.Commit(), contract.ErrVersionConflict)

	got, err := s.GetContract(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.ConsumedValue.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(2), got.Version)
}

func TestTx_UpdateRejectsWrongVersion(t *testing.T) {
	s, c := seed()

	err := s.UpdateCeiling(context.Background(), c.ID, true, decimal.NewFromInt(5), 9)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)

	err = s.UpdateCeiling(context.Background(), uuid.New(), true, decimal.NewFromInt(5), 1)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s, c := seed()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	r := &record.Record{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		ServiceDate: time.Now(),
		Value:       decimal.NewFromInt(40),
		Status:      record.StatusPending,
		ContractID:  &c.ID,
	}
	require.NoError(t, tx.CreateRecord(ctx, r))

	sum, err := tx.SumRecords(ctx, record.Criteria{ContractID: &c.ID})
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(40)))

	require.NoError(t, tx.Rollback())

	_, err = s.GetRecord(ctx, r.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestTx_VoidIsVisibleBeforeCommit(t *testing.T) {
	ctx := context.Background()
	s, c := seed()

	r := &record.Record{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		ServiceDate: time.Now(),
		Value:       decimal.NewFromInt(40),
		Status:      record.StatusBilled,
		ContractID:  &c.ID,
	}
	s.AddRecord(r)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.VoidRecord(ctx, r.ID))

	n, err := tx.CountRecords(ctx, record.Criteria{ContractID: &c.ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.CountRecords(ctx, record.Criteria{ContractID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, tx.Commit())

	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, record.StatusVoided, got.Status)
	assert.NotNil(t, got.UpdatedAt)

	assert.ErrorIs(t, s.VoidRecord(ctx, uuid.New()), record.ErrNotFound)
}

func TestStore_ListContracts(t *testing.T) {
	s, c := seed()
	s.AddContract(&contract.Contract{ID: uuid.New(), Name: "Abierto"})

	all, err := s.ListContracts(context.Background(), contract.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Abierto", all[0].Name)

	capped, err := s.ListContracts(context.Background(), contract.ListFilter{OnlyCeiling: true})
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, c.ID, capped[0].ID)
}
