package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/techo/internal/budget"
)

// Admitter is the admission gate the import feeds.
type Admitter interface {
	TryAdmit(ctx context.Context, in budget.Intent) (*budget.Admission, error)
}

// Outcome is the result of one sheet line.
type Outcome struct {
	Line     int
	Admitted bool
	RecordID *uuid.UUID
	State    *budget.State
	Kind     budget.Kind
	Details  any
	Error    string
}

type Report struct {
	Admitted int
	Rejected int
	Outcomes []Outcome
}

type Service struct {
	parser *Parser
	gate   Admitter
}

func NewService(gate Admitter) *Service {
	return &Service{parser: NewParser(), gate: gate}
}

// Import admits the sheet's rows one by one in file order. Rejected rows do
// not stop the import; an error is returned only when the sheet cannot be
// read or the context ends.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	rows, charset, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	slog.Info("importing service sheet", "rows", len(rows), "charset", charset)

	report := &Report{Outcomes: make([]Outcome, 0, len(rows))}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import interrupted at line %d: %w", row.Line, err)
		}

		out := Outcome{Line: row.Line}

		if row.Err != nil {
			out.Error = row.Err.Error()
			report.Rejected++
			report.Outcomes = append(report.Outcomes, out)

			continue
		}

		adm, err := s.gate.TryAdmit(ctx, row.Intent)
		if err != nil {
			var rej *budget.Rejection
			if errors.As(err, &rej) {
				out.Kind = rej.Kind
				out.Details = rej.Details
			}

			out.Error = err.Error()
			report.Rejected++
			report.Outcomes = append(report.Outcomes, out)

			continue
		}

		out.Admitted = true
		out.RecordID = new(adm.Record.ID)
		out.State = new(adm.State)
		report.Admitted++
		report.Outcomes = append(report.Outcomes, out)
	}

	return report, nil
}
