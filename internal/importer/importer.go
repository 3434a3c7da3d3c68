// Package importer turns uploaded daily service sheets into admission intents.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	enc "github.com/MrJamesThe3rd/techo/internal/encoding"
)

var ErrNoHeader = errors.New("no service sheet header found")

// Column keys. Each accepts the English name and the Spanish header used by
// the billing spreadsheets.
const (
	colContract  = "contract_id"
	colPatient   = "patient_id"
	colProcedure = "procedure_code"
	colDate      = "service_date"
	colValue     = "value"
)

var aliases = map[string]string{
	"contract_id":    colContract,
	"contrato":       colContract,
	"patient_id":     colPatient,
	"paciente":       colPatient,
	"procedure_code": colProcedure,
	"procedimiento":  colProcedure,
	"cups":           colProcedure,
	"service_date":   colDate,
	"fecha":          colDate,
	"fecha_servicio": colDate,
	"value":          colValue,
	"valor":          colValue,
}

var required = []string{colContract, colPatient, colProcedure, colDate, colValue}

// Row is one data line of the sheet. Err is set when the line could not be
// turned into an intent; such rows never reach the admission gate.
type Row struct {
	Line   int
	Intent budget.Intent
	Err    error
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a ';'-separated sheet. Lines before the header are ignored, as
// are blank lines after it.
func (p *Parser) Parse(r io.Reader) ([]Row, enc.Charset, error) {
	utf8r, charset, err := enc.Normalize(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []line

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, charset, fmt.Errorf("read csv: %w", err)
		}

		num, _ := reader.FieldPos(0)
		lines = append(lines, line{num: num, fields: fields})
	}

	cols, headerIdx, ok := findHeader(lines)
	if !ok {
		return nil, charset, ErrNoHeader
	}

	var rows []Row

	for _, l := range lines[headerIdx+1:] {
		if blank(l.fields) {
			continue
		}

		in, err := parseIntent(cols, l.fields)
		rows = append(rows, Row{Line: l.num, Intent: in, Err: err})
	}

	return rows, charset, nil
}

// line is a csv record with its 1-based position in the file.
type line struct {
	num    int
	fields []string
}

// colIndex maps column keys to their index in the row.
type colIndex map[string]int

func findHeader(lines []line) (colIndex, int, bool) {
	for idx, l := range lines {
		cols := make(colIndex)

		for i, cell := range l.fields {
			name := strings.ToLower(strings.TrimSpace(cell))
			if key, ok := aliases[name]; ok {
				cols[key] = i
			}
		}

		if len(cols) == len(required) {
			return cols, idx, true
		}
	}

	return nil, 0, false
}

func parseIntent(cols colIndex, fields []string) (budget.Intent, error) {
	var in budget.Intent

	contractID, err := uuid.Parse(cell(fields, cols[colContract]))
	if err != nil {
		return in, fmt.Errorf("contract id: %w", err)
	}

	patientID, err := uuid.Parse(cell(fields, cols[colPatient]))
	if err != nil {
		return in, fmt.Errorf("patient id: %w", err)
	}

	code := cell(fields, cols[colProcedure])
	if code == "" {
		return in, errors.New("missing procedure code")
	}

	date, err := parseDate(cell(fields, cols[colDate]))
	if err != nil {
		return in, err
	}

	value, err := parseValue(cell(fields, cols[colValue]))
	if err != nil {
		return in, err
	}

	return budget.Intent{
		ContractID:    contractID,
		PatientID:     patientID,
		ProcedureCode: code,
		ServiceDate:   date,
		Value:         value,
	}, nil
}

func cell(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}

	return strings.TrimSpace(fields[idx])
}

func blank(fields []string) bool {
	for _, c := range fields {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
