package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("service record not found")

// Status represents the billing lifecycle of a service record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPrebilled Status = "prebilled"
	StatusBilled    Status = "billed"
	StatusVoided    Status = "voided"
)

// Record is one billable clinical event.
type Record struct {
	ID            uuid.UUID
	PatientID     uuid.UUID
	ProcedureCode string
	ServiceDate   time.Time
	Value         decimal.Decimal
	Status        Status
	ContractID    *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Counts reports whether the record contributes to its contract's consumption.
func (r *Record) Counts() bool {
	return r.Status != StatusVoided && r.ContractID != nil
}

func (r *Record) Clone() *Record {
	cp := *r

	if r.ContractID != nil {
		cp.ContractID = new(*r.ContractID)
	}

	if r.UpdatedAt != nil {
		cp.UpdatedAt = new(*r.UpdatedAt)
	}

	return &cp
}

// Criteria selects service records for find, count and sum queries.
// Voided records are excluded unless IncludeVoided is set. From and To bound
// the service date inclusively.
type Criteria struct {
	ContractID    *uuid.UUID
	PatientID     *uuid.UUID
	ProcedureCode string
	From          *time.Time
	To            *time.Time
	IncludeVoided bool
}

// Matches applies the criteria to a single record.
func (c Criteria) Matches(r *Record) bool {
	if !c.IncludeVoided && r.Status == StatusVoided {
		return false
	}

	if c.ContractID != nil && (r.ContractID == nil || *r.ContractID != *c.ContractID) {
		return false
	}

	if c.PatientID != nil && r.PatientID != *c.PatientID {
		return false
	}

	if c.ProcedureCode != "" && r.ProcedureCode != c.ProcedureCode {
		return false
	}

	if c.From != nil && r.ServiceDate.Before(*c.From) {
		return false
	}

	if c.To != nil && r.ServiceDate.After(*c.To) {
		return false
	}

	return true
}

// Day returns the calendar date of t, as read in t's own location, at UTC
// midnight. Service dates are stored in this form so dates sent with
// different offsets compare on the same calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange returns the first and last UTC instant of Day(t).
func DayRange(t time.Time) (time.Time, time.Time) {
	start := Day(t)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return start, end
}
