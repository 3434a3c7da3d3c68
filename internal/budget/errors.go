package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIntent  = errors.New("invalid service intent")
	ErrInvalidCeiling = errors.New("invalid ceiling")
)

// Kind is the machine-readable reason attached to a Rejection.
type Kind string

const (
	KindDuplicateService         Kind = "DUPLICATE_SERVICE"
	KindContractNotFound         Kind = "CONTRACT_NOT_FOUND"
	KindContractExpired          Kind = "CONTRACT_EXPIRED"
	KindInsufficientBudget       Kind = "INSUFFICIENT_BUDGET"
	KindDailyLimitExceeded       Kind = "DAILY_LIMIT_EXCEEDED"
	KindAggregationFailure       Kind = "AGGREGATION_FAILURE"
	KindConcurrentUpdateConflict Kind = "CONCURRENT_UPDATE_CONFLICT"
	KindCeilingBelowConsumed     Kind = "CEILING_BELOW_CONSUMED"
)

// Rejection is a per-request failure carrying enough detail for the caller to
// act on it. Details holds one of the *Details types below.
type Rejection struct {
	Kind    Kind
	Details any
	Err     error
}

func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Kind, r.Err)
	}

	return string(r.Kind)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Transient reports whether retrying the same request later may succeed
// without the caller changing anything.
func (r *Rejection) Transient() bool {
	return r.Kind == KindAggregationFailure || r.Kind == KindConcurrentUpdateConflict
}

// KindOf returns the rejection kind wrapped in err, or "" when err is not a Rejection.
func KindOf(err error) Kind {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Kind
	}

	return ""
}

type DuplicateDetails struct {
	RecordID    uuid.UUID `json:"record_id"`
	ServiceDate time.Time `json:"service_date"`
}

type ContractDetails struct {
	ContractID uuid.UUID  `json:"contract_id"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidTo    *time.Time `json:"valid_to,omitempty"`
}

type BudgetDetails struct {
	ProposedValue   decimal.Decimal `json:"proposed_value"`
	Available       decimal.Decimal `json:"available"`
	CeilingValue    decimal.Decimal `json:"ceiling_value"`
	ConsumedValue   decimal.Decimal `json:"consumed_value"`
	PercentExecuted decimal.Decimal `json:"percent_executed"`
}

type DailyLimitDetails struct {
	CountToday int `json:"count_today"`
	Limit      int `json:"limit"`
}

type AggregationDetails struct {
	ContractID uuid.UUID `json:"contract_id"`
}

type ConflictDetails struct {
	ContractID uuid.UUID `json:"contract_id"`
	Attempts   int       `json:"attempts"`
}

type CeilingDetails struct {
	ProposedCeiling decimal.Decimal `json:"proposed_ceiling"`
	ConsumedValue   decimal.Decimal `json:"consumed_value"`
}
