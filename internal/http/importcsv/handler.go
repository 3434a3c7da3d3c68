package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/importer"
)

// maxUpload bounds the multipart form kept in memory.
const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type outcomeResponse struct {
	Line      int         `json:"line"`
	Status    string      `json:"status"`
	RecordID  *uuid.UUID  `json:"record_id,omitempty"`
	Available *string     `json:"available,omitempty"`
	ErrorKind budget.Kind `json:"error_kind,omitempty"`
	Details   any         `json:"details,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type importResponse struct {
	Admitted int               `json:"admitted"`
	Rejected int               `json:"rejected"`
	Rows     []outcomeResponse `json:"rows"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toImportResponse(report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toImportResponse(report *importer.Report) importResponse {
	resp := importResponse{
		Admitted: report.Admitted,
		Rejected: report.Rejected,
		Rows:     make([]outcomeResponse, 0, len(report.Outcomes)),
	}

	for _, o := range report.Outcomes {
		row := outcomeResponse{
			Line:      o.Line,
			Status:    "rejected",
			RecordID:  o.RecordID,
			ErrorKind: o.Kind,
			Details:   o.Details,
			Error:     o.Error,
		}

		if o.Admitted {
			row.Status = "admitted"
		}

		if o.State != nil && o.State.HasCeiling {
			row.Available = new(o.State.Available.String())
		}

		resp.Rows = append(resp.Rows, row)
	}

	return resp
}
