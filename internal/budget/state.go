package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/contract"
)

var hundred = decimal.NewFromInt(100)

// Risk classifies how much of a ceiling has been executed. Higher is worse.
type Risk int

const (
	RiskNormal Risk = iota
	RiskAlert
	RiskCritical
)

func (r Risk) String() string {
	switch r {
	case RiskAlert:
		return "alert"
	case RiskCritical:
		return "critical"
	default:
		return "normal"
	}
}

func (r Risk) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Thresholds are percentages of the ceiling.
type Thresholds struct {
	AlertPercent    decimal.Decimal
	CriticalPercent decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AlertPercent:    decimal.NewFromInt(80),
		CriticalPercent: decimal.NewFromInt(95),
	}
}

// State is the derived budget position of a contract. It is never persisted.
type State struct {
	ContractID       uuid.UUID
	HasCeiling       bool
	CeilingValue     decimal.Decimal
	ConsumedValue    decimal.Decimal
	Available        decimal.Decimal
	PercentExecuted  decimal.Decimal
	Risk             Risk
	Thresholds       Thresholds
	LastRecomputedAt *time.Time
}

// NewState derives the budget position from the contract's cached consumption.
// A zero ceiling counts as fully executed.
func NewState(c *contract.Contract, th Thresholds) State {
	s := State{
		ContractID:       c.ID,
		HasCeiling:       c.HasCeiling,
		ConsumedValue:    c.ConsumedValue,
		Thresholds:       th,
		LastRecomputedAt: c.LastRecomputedAt,
	}

	if c.HasCeiling {
		s.CeilingValue = c.CeilingValue
		s.Available = c.CeilingValue.Sub(c.ConsumedValue)

		if c.CeilingValue.IsZero() {
			s.PercentExecuted = hundred
		} else {
			s.PercentExecuted = c.ConsumedValue.Mul(hundred).Div(c.CeilingValue)
		}
	}

	s.Risk = Classify(s, th)

	return s
}

// Classify maps a budget state onto a risk tier. Contracts without a ceiling
// are always normal.
func Classify(s State, th Thresholds) Risk {
	if !s.HasCeiling {
		return RiskNormal
	}

	switch {
	case s.PercentExecuted.GreaterThanOrEqual(th.CriticalPercent):
		return RiskCritical
	case s.PercentExecuted.GreaterThanOrEqual(th.AlertPercent):
		return RiskAlert
	default:
		return RiskNormal
	}
}
