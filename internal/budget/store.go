package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=budget

// Queries is the read/write surface shared by a Store and its transactions.
type Queries interface {
	GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	// UpdateConsumed writes the cached aggregate and bumps the contract version.
	// It fails with contract.ErrVersionConflict when the stored version differs.
	UpdateConsumed(ctx context.Context, id uuid.UUID, consumed decimal.Decimal, at time.Time, version int64) error
	UpdateCeiling(ctx context.Context, id uuid.UUID, hasCeiling bool, ceiling decimal.Decimal, version int64) error

	GetRecord(ctx context.Context, id uuid.UUID) (*record.Record, error)
	FindRecords(ctx context.Context, criteria record.Criteria) ([]*record.Record, error)
	CountRecords(ctx context.Context, criteria record.Criteria) (int, error)
	SumRecords(ctx context.Context, criteria record.Criteria) (decimal.Decimal, error)
	CreateRecord(ctx context.Context, r *record.Record) error
	VoidRecord(ctx context.Context, id uuid.UUID) error
}

type Store interface {
	Queries

	ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error)
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Queries

	Commit() error
	Rollback() error
}
