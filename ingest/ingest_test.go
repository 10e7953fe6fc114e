package ingest_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-analytics/ingest"
	"github.com/warp/labor-analytics/refdata"
)

const shiftHeader = "employee_id,employee_number,employee_name,department,agency,cost_centre,date,hours_worked,night_shift,hourly_rate\n"
const rosterHeader = "employee_number,name,position,department,agency,cost_centre,hourly_rate,bill_rate\n"

func newImporter() *ingest.Importer {
	return ingest.NewImporter(refdata.Default())
}

// =============================================================================
// SHIFT IMPORT TESTS
// =============================================================================

func TestShifts_ValidRows(t *testing.T) {
	// GIVEN: A well-formed shift CSV with two rows
	// WHEN: Importing
	// THEN: Both rows convert; no errors

	csv := shiftHeader +
		"e1,100001,Sipho Dlamini,Picking,Adcorp Blu,3040034,2026-03-02,7.5,false,38.50\n" +
		"e2,100002,Maria van Wyk,Despatch,Workforce,3040034,2026-03-02,9,true,40\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Empty(t, result.Errors)
	require.Len(t, shifts, 2)

	first := shifts[0]
	assert.Equal(t, "e1", first.EmployeeID)
	assert.Equal(t, "100001", first.EmployeeNumber)
	assert.Equal(t, "Picking", first.Department)
	assert.Equal(t, "2026-03-02", first.Date.Key())
	assert.True(t, decimal.NewFromFloat(7.5).Equal(first.HoursWorked))
	assert.False(t, first.NightShift)
	assert.True(t, shifts[1].NightShift)
}

func TestShifts_MissingRequiredFields_RowRejected(t *testing.T) {
	// GIVEN: A row with no department or agency
	// WHEN: Importing
	// THEN: The row is skipped with a missing-fields error; others pass

	csv := shiftHeader +
		"e1,100001,Sipho Dlamini,,,3040034,2026-03-02,7.5,false,38.50\n" +
		"e2,100002,Maria van Wyk,Picking,Workforce,,2026-03-02,6,false,40\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row, "row numbers are 1-based counting the header")
	assert.Contains(t, result.Errors[0].Message, "missing required fields")
	require.Len(t, shifts, 1)
	assert.Equal(t, "e2", shifts[0].EmployeeID)
}

func TestShifts_BadDateAndNegativeHours_Rejected(t *testing.T) {
	csv := shiftHeader +
		"e1,100001,A,Picking,Adcorp Blu,,02/03/2026,7.5,false,38.50\n" +
		"e2,100002,B,Picking,Adcorp Blu,,2026-03-02,-1,false,38.50\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Empty(t, shifts)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "invalid date")
	assert.Contains(t, result.Errors[1].Message, "non-negative")
}

func TestShifts_MalformedRate_NormalizedToZero(t *testing.T) {
	// GIVEN: A row whose hourly rate does not parse
	// WHEN: Importing
	// THEN: The shift passes with a zero rate; hours still count

	csv := shiftHeader +
		"e1,100001,A,Picking,Adcorp Blu,,2026-03-02,6,false,not-a-number\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, shifts, 1)
	assert.True(t, shifts[0].HourlyRate.IsZero())
	assert.True(t, decimal.NewFromInt(6).Equal(shifts[0].HoursWorked))
}

func TestShifts_UnknownCostCentre_Rejected(t *testing.T) {
	// GIVEN: Rows with an unknown and an empty cost centre
	// WHEN: Importing
	// THEN: Unknown is rejected; empty is permitted

	csv := shiftHeader +
		"e1,100001,A,Picking,Adcorp Blu,9999999,2026-03-02,6,false,40\n" +
		"e2,100002,B,Picking,Adcorp Blu,,2026-03-02,6,false,40\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "invalid cost centre")
	require.Len(t, shifts, 1)
	assert.Equal(t, "", shifts[0].CostCentre)
}

func TestShifts_EmptyInput_MissingHeader(t *testing.T) {
	_, _, err := newImporter().Shifts(strings.NewReader(""))
	assert.ErrorIs(t, err, ingest.ErrMissingHeader)
}

func TestShifts_HeaderOnly_EmptyResult(t *testing.T) {
	shifts, result, err := newImporter().Shifts(strings.NewReader(shiftHeader))

	require.NoError(t, err)
	assert.Empty(t, shifts)
	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, result.Errors)
}

func TestShifts_ReorderedColumns(t *testing.T) {
	// GIVEN: The same columns in a different order
	// WHEN: Importing
	// THEN: Fields are resolved by header name, not position

	csv := "date,employee_name,employee_id,agency,department,hours_worked\n" +
		"2026-03-02,Sipho Dlamini,e1,Adcorp Blu,Picking,6.5\n"

	shifts, result, err := newImporter().Shifts(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Picking", shifts[0].Department)
	assert.True(t, decimal.NewFromFloat(6.5).Equal(shifts[0].HoursWorked))
}

// =============================================================================
// ROSTER IMPORT TESTS
// =============================================================================

func TestEmployees_ValidRows(t *testing.T) {
	csv := rosterHeader +
		"100001,Sipho Dlamini,DCA,Picking,Adcorp Blu,3040034,38.50,48.00\n"

	employees, result, err := newImporter().Employees(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, employees, 1)
	e := employees[0]
	assert.Equal(t, "100001", e.EmployeeNumber)
	assert.Equal(t, "DCA", e.Position)
	assert.True(t, decimal.NewFromFloat(38.5).Equal(e.HourlyRate))
	assert.True(t, decimal.NewFromFloat(48).Equal(e.BillRate))
}

func TestEmployees_NonPositiveRate_Rejected(t *testing.T) {
	// GIVEN: Roster rows with zero and missing hourly rates
	// WHEN: Importing
	// THEN: Both are rejected; the roster demands a positive rate

	csv := rosterHeader +
		"100001,A,DCA,Picking,Adcorp Blu,,0,\n" +
		"100002,B,DCA,Picking,Adcorp Blu,,,\n"

	employees, result, err := newImporter().Employees(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Empty(t, employees)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "positive")
	assert.Contains(t, result.Errors[1].Message, "missing required fields")
}

func TestEmployees_MalformedBillRate_NormalizedToZero(t *testing.T) {
	csv := rosterHeader +
		"100001,A,DCA,Picking,Adcorp Blu,,38.50,n/a\n"

	employees, result, err := newImporter().Employees(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, employees, 1)
	assert.True(t, employees[0].BillRate.IsZero())
}

func TestEmployees_UnknownCostCentre_Rejected(t *testing.T) {
	csv := rosterHeader +
		"100001,A,DCA,Picking,Adcorp Blu,1234567,38.50,\n"

	employees, result, err := newImporter().Employees(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Empty(t, employees)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "invalid cost centre")
}
