package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

type budgetStateResponse struct {
	ContractID       uuid.UUID       `json:"contract_id"`
	HasCeiling       bool            `json:"has_ceiling"`
	CeilingValue     decimal.Decimal `json:"ceiling_value"`
	ConsumedValue    decimal.Decimal `json:"consumed_value"`
	Available        decimal.Decimal `json:"available"`
	PercentExecuted  decimal.Decimal `json:"percent_executed"`
	RiskState        budget.Risk     `json:"risk_state"`
	AlertPercent     decimal.Decimal `json:"alert_percent"`
	CriticalPercent  decimal.Decimal `json:"critical_percent"`
	LastRecomputedAt *time.Time      `json:"last_recomputed_at,omitempty"`
}

type recordResponse struct {
	ID            uuid.UUID       `json:"id"`
	ContractID    *uuid.UUID      `json:"contract_id,omitempty"`
	PatientID     uuid.UUID       `json:"patient_id"`
	ProcedureCode string          `json:"procedure_code"`
	ServiceDate   time.Time       `json:"service_date"`
	Value         decimal.Decimal `json:"value"`
	Status        record.Status   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type admittedResponse struct {
	Status      string              `json:"status"`
	Record      recordResponse      `json:"record"`
	BudgetState budgetStateResponse `json:"budget_state"`
	Attempts    int                 `json:"attempts"`
}

type rejectedResponse struct {
	Status    string      `json:"status"`
	ErrorKind budget.Kind `json:"error_kind"`
	Details   any         `json:"details,omitempty"`
	Transient bool        `json:"transient"`
}

type forecastResponse struct {
	ContractID          uuid.UUID       `json:"contract_id"`
	WindowDays          int             `json:"window_days"`
	WindowStart         time.Time       `json:"window_start"`
	WindowEnd           time.Time       `json:"window_end"`
	TotalInWindow       decimal.Decimal `json:"total_in_window"`
	AvgDailyConsumption decimal.Decimal `json:"avg_daily_consumption"`
	HasCeiling          bool            `json:"has_ceiling"`
	Available           decimal.Decimal `json:"available"`
	DaysToExhaustion    *int64          `json:"days_to_exhaustion"`
	ExhaustionDate      *time.Time      `json:"exhaustion_date"`
	Advisory            bool            `json:"advisory"`
}

type alertResponse struct {
	ContractID      uuid.UUID       `json:"contract_id"`
	ContractName    string          `json:"contract_name"`
	CompanyID       uuid.UUID       `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	PercentExecuted decimal.Decimal `json:"percent_executed"`
	Available       decimal.Decimal `json:"available"`
	CeilingValue    decimal.Decimal `json:"ceiling_value"`
	ConsumedValue   decimal.Decimal `json:"consumed_value"`
	RiskState       budget.Risk     `json:"risk_state"`
}

func toStateResponse(st budget.State) budgetStateResponse {
	return budgetStateResponse{
		ContractID:       st.ContractID,
		HasCeiling:       st.HasCeiling,
		CeilingValue:     st.CeilingValue,
		ConsumedValue:    st.ConsumedValue,
		Available:        st.Available,
		PercentExecuted:  st.PercentExecuted.Round(2),
		RiskState:        st.Risk,
		AlertPercent:     st.Thresholds.AlertPercent,
		CriticalPercent:  st.Thresholds.CriticalPercent,
		LastRecomputedAt: st.LastRecomputedAt,
	}
}

func toRecordResponse(r *record.Record) recordResponse {
	return recordResponse{
		ID:            r.ID,
		ContractID:    r.ContractID,
		PatientID:     r.PatientID,
		ProcedureCode: r.ProcedureCode,
		ServiceDate:   r.ServiceDate,
		Value:         r.Value,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func toForecastResponse(fc *budget.Forecast) forecastResponse {
	return forecastResponse{
		ContractID:          fc.ContractID,
		WindowDays:          fc.WindowDays,
		WindowStart:         fc.WindowStart,
		WindowEnd:           fc.WindowEnd,
		TotalInWindow:       fc.TotalInWindow,
		AvgDailyConsumption: fc.AvgDailyConsumption.Round(2),
		HasCeiling:          fc.HasCeiling,
		Available:           fc.Available,
		DaysToExhaustion:    fc.DaysToExhaustion,
		ExhaustionDate:      fc.ExhaustionDate,
		Advisory:            fc.Advisory,
	}
}

func toAlertResponseList(entries []budget.AlertEntry) []alertResponse {
	resp := make([]alertResponse, len(entries))
	for i, e := range entries {
		resp[i] = alertResponse{
			ContractID:      e.ContractID,
			ContractName:    e.ContractName,
			CompanyID:       e.CompanyID,
			CompanyName:     e.CompanyName,
			PercentExecuted: e.PercentExecuted.Round(2),
			Available:       e.Available,
			CeilingValue:    e.CeilingValue,
			ConsumedValue:   e.ConsumedValue,
			RiskState:       e.Risk,
		}
	}

	return resp
}
