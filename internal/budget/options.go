package budget

import (
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/techo/internal/contract"
)

// Options holds the global defaults; contracts may override most of them.
type Options struct {
	MaxServicesPerDay  int
	Thresholds         Thresholds
	ForecastWindowDays int
	// MaxRetries bounds how many times an optimistic conflict is retried
	// before CONCURRENT_UPDATE_CONFLICT surfaces.
	MaxRetries       int
	AlertConcurrency int
	Clock            func() time.Time
	Logger           *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxServicesPerDay:  5,
		Thresholds:         DefaultThresholds(),
		ForecastWindowDays: 30,
		MaxRetries:         3,
		AlertConcurrency:   8,
		Clock:              time.Now,
		Logger:             slog.Default(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()

	if o.MaxServicesPerDay <= 0 {
		o.MaxServicesPerDay = d.MaxServicesPerDay
	}

	if o.Thresholds.AlertPercent.IsZero() && o.Thresholds.CriticalPercent.IsZero() {
		o.Thresholds = d.Thresholds
	}

	if o.ForecastWindowDays <= 0 {
		o.ForecastWindowDays = d.ForecastWindowDays
	}

	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}

	if o.AlertConcurrency <= 0 {
		o.AlertConcurrency = d.AlertConcurrency
	}

	if o.Clock == nil {
		o.Clock = d.Clock
	}

	if o.Logger == nil {
		o.Logger = d.Logger
	}

	return o
}

func (o Options) now() time.Time {
	return o.Clock()
}

func (o Options) thresholdsFor(c *contract.Contract) Thresholds {
	th := o.Thresholds

	if c.AlertPercent != nil {
		th.AlertPercent = *c.AlertPercent
	}

	if c.CriticalPercent != nil {
		th.CriticalPercent = *c.CriticalPercent
	}

	return th
}

func (o Options) dailyLimitFor(c *contract.Contract) int {
	if c.MaxServicesPerDay != nil && *c.MaxServicesPerDay > 0 {
		return *c.MaxServicesPerDay
	}

	return o.MaxServicesPerDay
}

// windowFor picks the forecast window: explicit request, then contract override, then global default.
func (o Options) windowFor(c *contract.Contract, requested int) int {
	if requested > 0 {
		return requested
	}

	if c.ForecastWindowDays != nil && *c.ForecastWindowDays > 0 {
		return *c.ForecastWindowDays
	}

	return o.ForecastWindowDays
}
