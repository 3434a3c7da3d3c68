package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

var (
	_ budget.Store = (*Store)(nil)
	_ budget.Tx    = (*txStore)(nil)
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	q querier
}

type Store struct {
	queries
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

type txStore struct {
	queries
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (budget.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning budget tx: %w", err)
	}

	return &txStore{queries: queries{q: tx}, tx: tx}, nil
}

func (t *txStore) Commit() error { return t.tx.Commit() }

// Rollback is safe to defer after Commit.
func (t *txStore) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectContractColumns = `
	c.id, c.name, c.valid_from, c.valid_to, c.has_ceiling, c.ceiling_value, c.consumed_value,
	c.last_recomputed_at, c.alert_percent, c.critical_percent, c.max_services_per_day,
	c.forecast_window_days, c.version, c.created_at, c.updated_at, co.id, co.name
`

// scanContract expects the column order of selectContractColumns.
func scanContract(s scanner) (*contract.Contract, error) {
	var c contract.Contract

	var (
		alert, critical       decimal.NullDecimal
		maxPerDay, windowDays sql.NullInt64
	)

	if err := s.Scan(
		&c.ID, &c.Name, &c.ValidFrom, &c.ValidTo, &c.HasCeiling, &c.CeilingValue, &c.ConsumedValue,
		&c.LastRecomputedAt, &alert, &critical, &maxPerDay,
		&windowDays, &c.Version, &c.CreatedAt, &c.UpdatedAt, &c.Company.ID, &c.Company.Name,
	); err != nil {
		return nil, err
	}

	if alert.Valid {
		c.AlertPercent = new(alert.Decimal)
	}

	if critical.Valid {
		c.CriticalPercent = new(critical.Decimal)
	}

	if maxPerDay.Valid {
		c.MaxServicesPerDay = new(int(maxPerDay.Int64))
	}

	if windowDays.Valid {
		c.ForecastWindowDays = new(int(windowDays.Int64))
	}

	return &c, nil
}

const selectRecordColumns = `
	r.id, r.patient_id, r.procedure_code, r.service_date, r.value, r.status, r.contract_id,
	r.created_at, r.updated_at
`

func scanRecord(s scanner) (*record.Record, error) {
	var (
		r      record.Record
		status string
	)

	if err := s.Scan(
		&r.ID, &r.PatientID, &r.ProcedureCode, &r.ServiceDate, &r.Value, &status, &r.ContractID,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = record.Status(status)

	return &r, nil
}

func (q queries) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		JOIN companies co ON c.company_id = co.id
		WHERE c.id = $1`

	c, err := scanContract(q.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		JOIN companies co ON c.company_id = co.id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.CompanyID != nil {
		query += fmt.Sprintf(" AND c.company_id = $%d", argIdx)

		args = append(args, *filter.CompanyID)
		argIdx++
	}

	if filter.OnlyCeiling {
		query += " AND c.has_ceiling"
	}

	query += " ORDER BY c.name ASC, c.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*contract.Contract

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		contracts = append(contracts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract rows: %w", err)
	}

	return contracts, nil
}

func (q queries) UpdateConsumed(ctx context.Context, id uuid.UUID, consumed decimal.Decimal, at time.Time, version int64) error {
	query := `
		UPDATE contracts
		SET consumed_value = $1, last_recomputed_at = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`

	res, err := q.q.ExecContext(ctx, query, consumed, at, id, version)
	if err != nil {
		return fmt.Errorf("updating consumed value: %w", err)
	}

	return versioned(res)
}

func (q queries) UpdateCeiling(ctx context.Context, id uuid.UUID, hasCeiling bool, ceiling decimal.Decimal, version int64) error {
	query := `
		UPDATE contracts
		SET has_ceiling = $1, ceiling_value = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`

	res, err := q.q.ExecContext(ctx, query, hasCeiling, ceiling, id, version)
	if err != nil {
		return fmt.Errorf("updating ceiling: %w", err)
	}

	return versioned(res)
}

// versioned turns a zero-row optimistic update into contract.ErrVersionConflict.
func versioned(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return contract.ErrVersionConflict
	}

	return nil
}

func (q queries) GetRecord(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM service_records r
		WHERE r.id = $1`

	r, err := scanRecord(q.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting service record: %w", err)
	}

	return r, nil
}

// where renders criteria as a WHERE clause starting at placeholder $1.
func where(c record.Criteria) (string, []any) {
	clause := " WHERE TRUE"

	var args []any

	argIdx := 1

	if !c.IncludeVoided {
		clause += fmt.Sprintf(" AND r.status <> $%d", argIdx)

		args = append(args, record.StatusVoided)
		argIdx++
	}

	if c.ContractID != nil {
		clause += fmt.Sprintf(" AND r.contract_id = $%d", argIdx)

		args = append(args, *c.ContractID)
		argIdx++
	}

	if c.PatientID != nil {
		clause += fmt.Sprintf(" AND r.patient_id = $%d", argIdx)

		args = append(args, *c.PatientID)
		argIdx++
	}

	if c.ProcedureCode != "" {
		clause += fmt.Sprintf(" AND r.procedure_code = $%d", argIdx)

		args = append(args, c.ProcedureCode)
		argIdx++
	}

	if c.From != nil {
		clause += fmt.Sprintf(" AND r.service_date >= $%d", argIdx)

		args = append(args, *c.From)
		argIdx++
	}

	if c.To != nil {
		clause += fmt.Sprintf(" AND r.service_date <= $%d", argIdx)

		args = append(args, *c.To)
	}

	return clause, args
}

func (q queries) FindRecords(ctx context.Context, criteria record.Criteria) ([]*record.Record, error) {
	clause, args := where(criteria)
	query := `SELECT ` + selectRecordColumns + ` FROM service_records r` + clause + ` ORDER BY r.service_date ASC, r.created_at ASC`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding service records: %w", err)
	}
	defer rows.Close()

	var records []*record.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service record rows: %w", err)
	}

	return records, nil
}

func (q queries) CountRecords(ctx context.Context, criteria record.Criteria) (int, error) {
	clause, args := where(criteria)
	query := `SELECT COUNT(*) FROM service_records r` + clause

	var n int
	if err := q.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting service records: %w", err)
	}

	return n, nil
}

func (q queries) SumRecords(ctx context.Context, criteria record.Criteria) (decimal.Decimal, error) {
	clause, args := where(criteria)
	query := `SELECT COALESCE(SUM(r.value), 0) FROM service_records r` + clause

	var total decimal.Decimal
	if err := q.q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing service records: %w", err)
	}

	return total, nil
}

func (q queries) CreateRecord(ctx context.Context, r *record.Record) error {
	query := `
		INSERT INTO service_records (id, patient_id, procedure_code, service_date, value, status, contract_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := q.q.QueryRowContext(ctx, query,
		r.ID,
		r.PatientID,
		r.ProcedureCode,
		r.ServiceDate,
		r.Value,
		r.Status,
		r.ContractID,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating service record: %w", err)
	}

	return nil
}

func (q queries) VoidRecord(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE service_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := q.q.ExecContext(ctx, query, record.StatusVoided, id)
	if err != nil {
		return fmt.Errorf("voiding service record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return record.ErrNotFound
	}

	return nil
}
