package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/record"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) AdmissionRoutes(r chi.Router) {
	r.Post("/", h.admit)
}

func (h *Handler) ContractRoutes(r chi.Router) {
	r.Get("/{id}/budget", h.getBudget)
	r.Put("/{id}/ceiling", h.setCeiling)
	r.Get("/{id}/forecast", h.forecast)
}

func (h *Handler) AlertRoutes(r chi.Router) {
	r.Get("/", h.listAlerts)
}

func (h *Handler) RecordRoutes(r chi.Router) {
	r.Post("/{id}/void", h.voidRecord)
}

type admitRequest struct {
	ContractID    uuid.UUID       `json:"contract_id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	ProcedureCode string          `json:"procedure_code"`
	ServiceDate   string          `json:"service_date"`
	Value         decimal.Decimal `json:"value"`
}

// parseServiceDate accepts a full RFC 3339 timestamp or a bare date.
func parseServiceDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, s)
}

func (h *Handler) admit(w http.ResponseWriter, r *http.Request) {
	var req admitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseServiceDate(req.ServiceDate)
	if err != nil {
		http.Error(w, "invalid service_date", http.StatusBadRequest)
		return
	}

	adm, err := h.svc.TryAdmit(r.Context(), budget.Intent{
		ContractID:    req.ContractID,
		PatientID:     req.PatientID,
		ProcedureCode: req.ProcedureCode,
		ServiceDate:   date,
		Value:         req.Value,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, admittedResponse{
		Status:      "admitted",
		Record:      toRecordResponse(adm.Record),
		BudgetState: toStateResponse(adm.State),
		Attempts:    adm.Attempts,
	})
}

func (h *Handler) getBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	st, err := h.svc.GetBudgetState(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(st))
}

type ceilingRequest struct {
	HasCeiling   bool            `json:"has_ceiling"`
	CeilingValue decimal.Decimal `json:"ceiling_value"`
}

func (h *Handler) setCeiling(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req ceilingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.SetCeiling(r.Context(), id, req.HasCeiling, req.CeilingValue)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(st))
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var window int

	if s := r.URL.Query().Get("window_days"); s != "" {
		window, err = strconv.Atoi(s)
		if err != nil || window <= 0 {
			http.Error(w, "window_days must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	fc, err := h.svc.Forecast(r.Context(), id, window)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForecastResponse(fc))
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	filter := budget.AlertFilter{}

	if s := r.URL.Query().Get("company_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid company_id", http.StatusBadRequest)
			return
		}

		filter.CompanyID = &id
	}

	if s := r.URL.Query().Get("only_in_force"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid only_in_force", http.StatusBadRequest)
			return
		}

		filter.OnlyInForce = v
	}

	entries, err := h.svc.ListAtRisk(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAlertResponseList(entries))
}

func (h *Handler) voidRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	st, err := h.svc.VoidRecord(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if st == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, toStateResponse(*st))
}

// statusFor maps a rejection kind onto an HTTP status.
func statusFor(kind budget.Kind) int {
	switch kind {
	case budget.KindDuplicateService:
		return http.StatusConflict
	case budget.KindContractNotFound:
		return http.StatusNotFound
	case budget.KindContractExpired, budget.KindInsufficientBudget,
		budget.KindDailyLimitExceeded, budget.KindCeilingBelowConsumed:
		return http.StatusUnprocessableEntity
	case budget.KindAggregationFailure, budget.KindConcurrentUpdateConflict:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	var rej *budget.Rejection
	if errors.As(err, &rej) {
		if rej.Transient() {
			w.Header().Set("Retry-After", "1")
		}

		writeJSON(w, statusFor(rej.Kind), rejectedResponse{
			Status:    "rejected",
			ErrorKind: rej.Kind,
			Details:   rej.Details,
			Transient: rej.Transient(),
		})

		return
	}

	switch {
	case errors.Is(err, budget.ErrInvalidIntent), errors.Is(err, budget.ErrInvalidCeiling):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, record.ErrNotFound):
		http.Error(w, "service record not found", http.StatusNotFound)
	default:
		slog.Error("budget request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
