// Package memory is an in-process budget store. Transactions stage their
// writes and apply them on Commit, failing with contract.ErrVersionConflict if
// a contract they changed was committed by someone else in the meantime.
package memory

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

var (
	_ budget.Store = (*Store)(nil)
	_ budget.Tx    = (*Tx)(nil)
)

type Store struct {
	mu        sync.RWMutex
	contracts map[uuid.UUID]*contract.Contract
	records   map[uuid.UUID]*record.Record
	// insertion order, so scans are deterministic
	recordIDs []uuid.UUID
	clock     func() time.Time
}

func New() *Store {
	return &Store{
		contracts: make(map[uuid.UUID]*contract.Contract),
		records:   make(map[uuid.UUID]*record.Record),
		clock:     time.Now,
	}
}

// AddContract seeds a contract. Existing contracts with the same id are replaced.
func (s *Store) AddContract(c *contract.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := c.Clone()
	if cp.Version == 0 {
		cp.Version = 1
	}

	s.contracts[cp.ID] = cp
}

// AddRecord seeds a service record without touching contract aggregates.
func (s *Store) AddRecord(r *record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[r.ID]; !ok {
		s.recordIDs = append(s.recordIDs, r.ID)
	}

	s.records[r.ID] = r.Clone()
}

func (s *Store) Begin(ctx context.Context) (budget.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.begin(), nil
}

func (s *Store) begin() *Tx {
	return &Tx{
		store:     s,
		contracts: make(map[uuid.UUID]*staged),
		voided:    make(map[uuid.UUID]struct{}),
	}
}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*contract.Contract, 0, len(s.contracts))

	for _, c := range s.contracts {
		if filter.CompanyID != nil && c.Company.ID != *filter.CompanyID {
			continue
		}

		if filter.OnlyCeiling && !c.HasCeiling {
			continue
		}

		out = append(out, c.Clone())
	}

	slices.SortFunc(out, func(a, b *contract.Contract) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	return out, nil
}

// Store-level queries behave like single-statement transactions.

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	return s.begin().GetContract(ctx, id)
}

func (s *Store) UpdateConsumed(ctx context.Context, id uuid.UUID, consumed decimal.Decimal, at time.Time, version int64) error {
	return s.autocommit(func(tx *Tx) error {
		return tx.UpdateConsumed(ctx, id, consumed, at, version)
	})
}

func (s *Store) UpdateCeiling(ctx context.Context, id uuid.UUID, hasCeiling bool, ceiling decimal.Decimal, version int64) error {
	return s.autocommit(func(tx *Tx) error {
		return tx.UpdateCeiling(ctx, id, hasCeiling, ceiling, version)
	})
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	return s.begin().GetRecord(ctx, id)
}

func (s *Store) FindRecords(ctx context.Context, criteria record.Criteria) ([]*record.Record, error) {
	return s.begin().FindRecords(ctx, criteria)
}

func (s *Store) CountRecords(ctx context.Context, criteria record.Criteria) (int, error) {
	return s.begin().CountRecords(ctx, criteria)
}

func (s *Store) SumRecords(ctx context.Context, criteria record.Criteria) (decimal.Decimal, error) {
	return s.begin().SumRecords(ctx, criteria)
}

func (s *Store) CreateRecord(ctx context.Context, r *record.Record) error {
	return s.autocommit(func(tx *Tx) error {
		return tx.CreateRecord(ctx, r)
	})
}

func (s *Store) VoidRecord(ctx context.Context, id uuid.UUID) error {
	return s.autocommit(func(tx *Tx) error {
		return tx.VoidRecord(ctx, id)
	})
}

func (s *Store) autocommit(fn func(tx *Tx) error) error {
	tx := s.begin()
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

type staged struct {
	c     *contract.Contract
	base  int64
	dirty bool
}

// Tx is a unit of work against a Store. It is not safe for concurrent use.
type Tx struct {
	store     *Store
	contracts map[uuid.UUID]*staged
	created   []*record.Record
	voided    map[uuid.UUID]struct{}
	done      bool
}

func (tx *Tx) stage(id uuid.UUID) (*staged, error) {
	if st, ok := tx.contracts[id]; ok {
		return st, nil
	}

	tx.store.mu.RLock()
	c, ok := tx.store.contracts[id]
	tx.store.mu.RUnlock()

	if !ok {
		return nil, contract.ErrNotFound
	}

	st := &staged{c: c.Clone(), base: c.Version}
	tx.contracts[id] = st

	return st, nil
}

func (tx *Tx) GetContract(_ context.Context, id uuid.UUID) (*contract.Contract, error) {
	if tx.done {
		return nil, sql.ErrTxDone
	}

	st, err := tx.stage(id)
	if err != nil {
		return nil, err
	}

	return st.c.Clone(), nil
}

func (tx *Tx) UpdateConsumed(_ context.Context, id uuid.UUID, consumed decimal.Decimal, at time.Time, version int64) error {
	return tx.update(id, version, func(c *contract.Contract) {
		c.ConsumedValue = consumed
		c.LastRecomputedAt = &at
	})
}

func (tx *Tx) UpdateCeiling(_ context.Context, id uuid.UUID, hasCeiling bool, ceiling decimal.Decimal, version int64) error {
	return tx.update(id, version, func(c *contract.Contract) {
		c.HasCeiling = hasCeiling
		c.CeilingValue = ceiling
	})
}

func (tx *Tx) update(id uuid.UUID, version int64, apply func(c *contract.Contract)) error {
	if tx.done {
		return sql.ErrTxDone
	}

	st, err := tx.stage(id)
	if err != nil {
		return err
	}

	if st.c.Version != version {
		return contract.ErrVersionConflict
	}

	apply(st.c)

	now := tx.store.clock()
	st.c.UpdatedAt = &now
	st.c.Version++
	st.dirty = true

	return nil
}

// view returns committed records overlaid with this transaction's writes.
func (tx *Tx) view() []*record.Record {
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()

	out := make([]*record.Record, 0, len(tx.store.recordIDs)+len(tx.created))

	for _, id := range tx.store.recordIDs {
		r := tx.store.records[id]
		if _, ok := tx.voided[id]; ok {
			r = r.Clone()
			r.Status = record.StatusVoided
		}

		out = append(out, r)
	}

	for _, r := range tx.created {
		if _, ok := tx.voided[r.ID]; ok {
			r = r.Clone()
			r.Status = record.StatusVoided
		}

		out = append(out, r)
	}

	return out
}

func (tx *Tx) GetRecord(_ context.Context, id uuid.UUID) (*record.Record, error) {
	if tx.done {
		return nil, sql.ErrTxDone
	}

	for _, r := range tx.view() {
		if r.ID == id {
			return r.Clone(), nil
		}
	}

	return nil, record.ErrNotFound
}

func (tx *Tx) FindRecords(_ context.Context, criteria record.Criteria) ([]*record.Record, error) {
	if tx.done {
		return nil, sql.ErrTxDone
	}

	var out []*record.Record

	for _, r := range tx.view() {
		if criteria.Matches(r) {
			out = append(out, r.Clone())
		}
	}

	slices.SortStableFunc(out, func(a, b *record.Record) int {
		return a.ServiceDate.Compare(b.ServiceDate)
	})

	return out, nil
}

func (tx *Tx) CountRecords(_ context.Context, criteria record.Criteria) (int, error) {
	if tx.done {
		return 0, sql.ErrTxDone
	}

	n := 0

	for _, r := range tx.view() {
		if criteria.Matches(r) {
			n++
		}
	}

	return n, nil
}

func (tx *Tx) SumRecords(_ context.Context, criteria record.Criteria) (decimal.Decimal, error) {
	if tx.done {
		return decimal.Zero, sql.ErrTxDone
	}

	total := decimal.Zero

	for _, r := range tx.view() {
		if criteria.Matches(r) {
			total = total.Add(r.Value)
		}
	}

	return total, nil
}

func (tx *Tx) CreateRecord(_ context.Context, r *record.Record) error {
	if tx.done {
		return sql.ErrTxDone
	}

	for _, existing := range tx.view() {
		if existing.ID == r.ID {
			return fmt.Errorf("service record %s already exists", r.ID)
		}
	}

	tx.created = append(tx.created, r.Clone())

	return nil
}

func (tx *Tx) VoidRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := tx.GetRecord(ctx, id); err != nil {
		return err
	}

	tx.voided[id] = struct{}{}

	return nil
}

func (tx *Tx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}

	tx.done = true

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range tx.contracts {
		if !st.dirty {
			continue
		}

		if current, ok := s.contracts[id]; !ok || current.Version != st.base {
			return contract.ErrVersionConflict
		}
	}

	for id, st := range tx.contracts {
		if st.dirty {
			s.contracts[id] = st.c
		}
	}

	for _, r := range tx.created {
		s.records[r.ID] = r
		s.recordIDs = append(s.recordIDs, r.ID)
	}

	now := s.clock()

	for id := range tx.voided {
		if r, ok := s.records[id]; ok {
			cp := r.Clone()
			cp.Status = record.StatusVoided
			cp.UpdatedAt = &now
			s.records[id] = cp
		}
	}

	return nil
}

// Rollback discards staged writes. It is a no-op after Commit.
func (tx *Tx) Rollback() error {
	tx.done = true

	return nil
}
