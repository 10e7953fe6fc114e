/*
Package ingest is the strict boundary in front of the permissive analytics
core.

PURPOSE:
  Parses CSV exports of shift records and employee rosters into engine
  types, applying the validation the engine deliberately does not do:
  required identifying fields, positive pay rates on roster rows, known
  cost centres, non-negative hours. Rows that fail validation are collected
  as row errors; everything valid flows through with missing numerics
  normalized to zero.

DESIGN:
  The engine never rejects a record (permissive core); this package rejects
  early and loudly (strict boundary). A single bad row degrades the import
  result, never the whole import.

FORMATS:
  Shift CSV header:
    employee_id,employee_number,employee_name,department,agency,
    cost_centre,date,hours_worked,night_shift,hourly_rate
  Roster CSV header:
    employee_number,name,position,department,agency,cost_centre,
    hourly_rate,bill_rate

SEE ALSO:
  - engine/types.go: The output record types
  - refdata/: Cost centre validation data
*/
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/labor-analytics/engine"
	"github.com/warp/labor-analytics/refdata"
)

// ErrMissingHeader is returned when the CSV has no header row at all.
var ErrMissingHeader = errors.New("csv input has no header row")

// RowError records why one CSV row was rejected. Row numbers are 1-based
// and count the header.
type RowError struct {
	Row     int    `json:"row"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Result summarizes an import: how many rows passed and why the rest
// failed.
type Result struct {
	Processed int        `json:"processed"`
	Errors    []RowError `json:"errors"`
}

// Importer validates and converts CSV rows using a deployment's reference
// data.
type Importer struct {
	registry *refdata.Registry
	validate *validator.Validate
}

func NewImporter(registry *refdata.Registry) *Importer {
	return &Importer{
		registry: registry,
		validate: validator.New(),
	}
}

// =============================================================================
// SHIFT IMPORT
// =============================================================================

// shiftRow is the validated shape of one shift CSV row.
type shiftRow struct {
	EmployeeID   string `validate:"required"`
	EmployeeName string `validate:"required"`
	Department   string `validate:"required"`
	Agency       string `validate:"required"`
	Date         string `validate:"required"`
}

// Shifts parses and validates a shift CSV. Valid rows are returned in file
// order; invalid rows are reported in the result and skipped.
func (im *Importer) Shifts(r io.Reader) ([]engine.ShiftRecord, Result, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, Result{}, err
	}
	header, err := headerIndex(rows)
	if err != nil {
		return nil, Result{}, err
	}

	var (
		shifts []engine.ShiftRecord
		result Result
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		get := func(col string) string { return field(row, header, col) }

		checked := shiftRow{
			EmployeeID:   get("employee_id"),
			EmployeeName: get("employee_name"),
			Department:   get("department"),
			Agency:       get("agency"),
			Date:         get("date"),
		}
		if err := im.validate.Struct(checked); err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:     rowNum,
				Subject: checked.EmployeeID,
				Message: validationMessage(err),
			})
			continue
		}

		date := engine.ParseDate(checked.Date)
		if date.IsZero() {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.EmployeeID, "invalid date %q", checked.Date))
			continue
		}

		hours, err := parseAmount(get("hours_worked"))
		if err != nil {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.EmployeeID, "invalid hours_worked: %v", err))
			continue
		}
		if hours.IsNegative() {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.EmployeeID, "hours_worked must be non-negative"))
			continue
		}
		rate, err := parseAmount(get("hourly_rate"))
		if err != nil || rate.IsNegative() {
			// Malformed rates normalize to zero: the shift still counts
			// its hours, just at no cost.
			rate = decimal.Zero
		}

		costCentre := get("cost_centre")
		if costCentre != "" && !im.registry.ValidCostCentre(costCentre) {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.EmployeeID, "invalid cost centre %q", costCentre))
			continue
		}

		shifts = append(shifts, engine.ShiftRecord{
			EmployeeID:     checked.EmployeeID,
			EmployeeNumber: get("employee_number"),
			EmployeeName:   checked.EmployeeName,
			Department:     checked.Department,
			Agency:         checked.Agency,
			CostCentre:     costCentre,
			Date:           date,
			HoursWorked:    hours,
			NightShift:     parseBool(get("night_shift")),
			HourlyRate:     rate,
		})
		result.Processed++
	}
	return shifts, result, nil
}

// =============================================================================
// ROSTER IMPORT
// =============================================================================

// rosterRow is the validated shape of one roster CSV row. Mirrors the
// original import validation: all identifying fields required, hourly rate
// required and positive.
type rosterRow struct {
	EmployeeNumber string `validate:"required"`
	Name           string `validate:"required"`
	Position       string `validate:"required"`
	Department     string `validate:"required"`
	Agency         string `validate:"required"`
	HourlyRate     string `validate:"required"`
}

// Employees parses and validates a roster CSV.
func (im *Importer) Employees(r io.Reader) ([]engine.Employee, Result, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, Result{}, err
	}
	header, err := headerIndex(rows)
	if err != nil {
		return nil, Result{}, err
	}

	var (
		employees []engine.Employee
		result    Result
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		get := func(col string) string { return field(row, header, col) }

		checked := rosterRow{
			EmployeeNumber: get("employee_number"),
			Name:           get("name"),
			Position:       get("position"),
			Department:     get("department"),
			Agency:         get("agency"),
			HourlyRate:     get("hourly_rate"),
		}
		if err := im.validate.Struct(checked); err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:     rowNum,
				Subject: checked.Name,
				Message: validationMessage(err),
			})
			continue
		}

		rate, err := parseAmount(checked.HourlyRate)
		if err != nil {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.Name, "invalid hourly rate %q", checked.HourlyRate))
			continue
		}
		if !rate.IsPositive() {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.Name, "hourly rate must be positive"))
			continue
		}

		costCentre := get("cost_centre")
		if costCentre != "" && !im.registry.ValidCostCentre(costCentre) {
			result.Errors = append(result.Errors, rowErr(rowNum, checked.Name, "invalid cost centre %q", costCentre))
			continue
		}

		billRate, err := parseAmount(get("bill_rate"))
		if err != nil || billRate.IsNegative() {
			billRate = decimal.Zero
		}

		employees = append(employees, engine.Employee{
			EmployeeNumber: checked.EmployeeNumber,
			Name:           checked.Name,
			Position:       checked.Position,
			Department:     checked.Department,
			Agency:         checked.Agency,
			CostCentre:     costCentre,
			HourlyRate:     rate,
			BillRate:       billRate,
		})
		result.Processed++
	}
	return employees, result, nil
}

// =============================================================================
// CSV HELPERS
// =============================================================================

func readAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows handled per-field
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

func headerIndex(rows [][]string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, nil
}

func field(row []string, header map[string]int, col string) string {
	i, ok := header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseAmount parses a decimal field. Empty means zero (missing numerics
// normalize, per the engine contract); anything else must parse.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false
	}
	return b
}

func rowErr(row int, subject, format string, args ...any) RowError {
	return RowError{Row: row, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// validationMessage flattens validator's error list into the original
// import's "Missing required fields: ..." shape.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field()
		}
		return "missing required fields: " + strings.Join(fields, ", ")
	}
	return err.Error()
}
