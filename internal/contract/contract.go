package contract

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("contract not found")
	// ErrVersionConflict is returned when an optimistic update finds the row
	// at a different version than the one the caller read.
	ErrVersionConflict = errors.New("contract version conflict")
)

// Company owns one or more contracts.
type Company struct {
	ID   uuid.UUID
	Name string
}

// Contract is a billing agreement with a company, optionally capped by a ceiling ("techo").
type Contract struct {
	ID      uuid.UUID
	Company Company
	Name    string

	// Validity window, both ends inclusive at day granularity.
	ValidFrom time.Time
	ValidTo   time.Time

	HasCeiling       bool
	CeilingValue     decimal.Decimal
	ConsumedValue    decimal.Decimal // cached aggregate, written by the budget aggregator only
	LastRecomputedAt *time.Time

	// Per-contract overrides. Nil means the global default applies.
	AlertPercent       *decimal.Decimal
	CriticalPercent    *decimal.Decimal
	MaxServicesPerDay  *int
	ForecastWindowDays *int

	Version   int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// InForce reports whether now lies within [ValidFrom, ValidTo]. ValidTo covers
// its whole calendar day.
func (c *Contract) InForce(now time.Time) bool {
	if now.Before(c.ValidFrom) {
		return false
	}

	end := time.Date(c.ValidTo.Year(), c.ValidTo.Month(), c.ValidTo.Day(), 0, 0, 0, 0, c.ValidTo.Location()).AddDate(0, 0, 1)

	return now.Before(end)
}

// Clone returns a deep copy so callers can mutate it without aliasing stored state.
func (c *Contract) Clone() *Contract {
	cp := *c

	if c.LastRecomputedAt != nil {
		cp.LastRecomputedAt = new(*c.LastRecomputedAt)
	}

	if c.AlertPercent != nil {
		cp.AlertPercent = new(*c.AlertPercent)
	}

	if c.CriticalPercent != nil {
		cp.CriticalPercent = new(*c.CriticalPercent)
	}

	if c.MaxServicesPerDay != nil {
		cp.MaxServicesPerDay = new(*c.MaxServicesPerDay)
	}

	if c.ForecastWindowDays != nil {
		cp.ForecastWindowDays = new(*c.ForecastWindowDays)
	}

	if c.UpdatedAt != nil {
		cp.UpdatedAt = new(*c.UpdatedAt)
	}

	return &cp
}

// ListFilter narrows ListContracts.
type ListFilter struct {
	CompanyID   *uuid.UUID
	OnlyCeiling bool
}
