package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/labor-analytics/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// Shared across the package's test files.

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func workedShift(employee, department string, hours, rate float64) engine.ShiftRecord {
	return engine.ShiftRecord{
		EmployeeID:     employee,
		EmployeeNumber: employee,
		EmployeeName:   employee,
		Department:     department,
		Agency:         "Adcorp Blu",
		CostCentre:     "3040034",
		Date:           engine.NewDate(2026, time.March, 2),
		HoursWorked:    dec(hours),
		HourlyRate:     dec(rate),
	}
}

func withDate(s engine.ShiftRecord, date engine.Date) engine.ShiftRecord {
	s.Date = date
	return s
}

func withAgency(s engine.ShiftRecord, agency string) engine.ShiftRecord {
	s.Agency = agency
	return s
}

func assertDecEqual(t *testing.T, expected float64, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !assert.True(t, dec(expected).Equal(actual), msgAndArgs...) {
		t.Logf("expected %v, got %s", expected, actual)
	}
}

// =============================================================================
// PAY DECOMPOSITION TESTS
// =============================================================================

func TestComputeShiftCost_WithinThreshold_AllRegular(t *testing.T) {
	// GIVEN: A 6-hour day shift at 40.00/h under the standard rules
	// WHEN: Computing the pay decomposition
	// THEN: All hours are regular; no overtime, no allowance

	shift := workedShift("emp-1", "Picking", 6, 40)

	breakdown := engine.ComputeShiftCost(shift, engine.DefaultRules())

	assertDecEqual(t, 6, breakdown.RegularHours)
	assertDecEqual(t, 0, breakdown.OvertimeHours)
	assertDecEqual(t, 0, breakdown.NightShiftHours)
	assertDecEqual(t, 240, breakdown.RegularCost)
	assertDecEqual(t, 0, breakdown.OvertimeCost)
	assertDecEqual(t, 0, breakdown.NightAllowance)
	assertDecEqual(t, 240, breakdown.TotalCost)
}

func TestComputeShiftCost_NightOvertime_StacksAllowance(t *testing.T) {
	// GIVEN: A 9-hour night shift at 40.00/h (threshold 7.5h, 1.5x OT, 10% allowance)
	// WHEN: Computing the pay decomposition
	// THEN: 7.5h regular (300) + 1.5h overtime (90) + 9h allowance (36) = 426

	shift := workedShift("emp-1", "Despatch", 9, 40)
	shift.NightShift = true

	breakdown := engine.ComputeShiftCost(shift, engine.DefaultRules())

	assertDecEqual(t, 7.5, breakdown.RegularHours)
	assertDecEqual(t, 1.5, breakdown.OvertimeHours)
	assertDecEqual(t, 9, breakdown.NightShiftHours, "allowance covers the full shift duration")
	assertDecEqual(t, 300, breakdown.RegularCost)
	assertDecEqual(t, 90, breakdown.OvertimeCost)
	assertDecEqual(t, 36, breakdown.NightAllowance)
	assertDecEqual(t, 426, breakdown.TotalCost)
}

func TestComputeShiftCost_ExactThreshold_NoOvertime(t *testing.T) {
	// GIVEN: Exactly the paid-hours threshold
	// WHEN: Computing the pay decomposition
	// THEN: No overtime is paid

	shift := workedShift("emp-1", "Inbound", 7.5, 38.5)

	breakdown := engine.ComputeShiftCost(shift, engine.DefaultRules())

	assertDecEqual(t, 7.5, breakdown.RegularHours)
	assertDecEqual(t, 0, breakdown.OvertimeHours)
	assertDecEqual(t, 288.75, breakdown.TotalCost)
}

func TestComputeShiftCost_DayShift_NoAllowance(t *testing.T) {
	// GIVEN: An overtime shift without the night flag
	// WHEN: Computing the pay decomposition
	// THEN: Overtime is paid but no allowance accrues

	shift := workedShift("emp-1", "Inventory", 10, 30)

	breakdown := engine.ComputeShiftCost(shift, engine.DefaultRules())

	assertDecEqual(t, 2.5, breakdown.OvertimeHours)
	assertDecEqual(t, 112.5, breakdown.OvertimeCost)
	assertDecEqual(t, 0, breakdown.NightAllowance)
}

func TestComputeShiftCost_ZeroInputs_ZeroCost(t *testing.T) {
	// GIVEN: Zero hours and a zero rate
	// WHEN: Computing the pay decomposition
	// THEN: Every component is zero; nothing errors

	breakdown := engine.ComputeShiftCost(workedShift("emp-1", "Picking", 0, 0), engine.DefaultRules())

	assertDecEqual(t, 0, breakdown.TotalCost)
	assertDecEqual(t, 0, breakdown.RegularHours)
}

func TestComputeShiftCost_NegativeInputs_ClampedToZero(t *testing.T) {
	// GIVEN: Negative hours and rate from a misbehaving source
	// WHEN: Computing the pay decomposition
	// THEN: Inputs clamp to zero; all components stay non-negative

	shift := workedShift("emp-1", "Picking", -4, -10)

	breakdown := engine.ComputeShiftCost(shift, engine.DefaultRules())

	assert.False(t, breakdown.RegularHours.IsNegative())
	assert.False(t, breakdown.TotalCost.IsNegative())
	assertDecEqual(t, 0, breakdown.TotalCost)
}

func TestComputeShiftCost_ComponentsSumToTotal(t *testing.T) {
	// GIVEN: A spread of shift shapes
	// WHEN: Computing each decomposition
	// THEN: Hours split exactly and costs sum exactly

	cases := []struct {
		hours float64
		rate  float64
		night bool
	}{
		{7.5, 38.5, false},
		{9, 40, true},
		{3.25, 52.75, false},
		{12, 45, true},
		{0.5, 35, false},
	}

	rules := engine.DefaultRules()
	for _, tc := range cases {
		shift := workedShift("emp-1", "Picking", tc.hours, tc.rate)
		shift.NightShift = tc.night

		b := engine.ComputeShiftCost(shift, rules)

		assert.True(t, b.RegularHours.Add(b.OvertimeHours).Equal(dec(tc.hours)),
			"regular + overtime must equal hours worked for %v", tc)
		assert.True(t, b.RegularCost.Add(b.OvertimeCost).Add(b.NightAllowance).Equal(b.TotalCost),
			"components must sum to total for %v", tc)
	}
}

func TestComputeShiftCost_CustomRules(t *testing.T) {
	// GIVEN: A flat eight-hour rule set with double-time overtime and no allowance
	// WHEN: Computing a 10-hour night shift at 20.00/h
	// THEN: 8h regular (160) + 2h at 2x (80) + no allowance = 240

	rules := engine.Rules{
		PaidHoursPerShift:       dec(8),
		OvertimeRate:            dec(2),
		NightShiftAllowanceRate: dec(0),
		StandardHoursPerWeek:    dec(40),
	}
	shift := workedShift("emp-1", "Bash", 10, 20)
	shift.NightShift = true

	breakdown := engine.ComputeShiftCost(shift, rules)

	assertDecEqual(t, 160, breakdown.RegularCost)
	assertDecEqual(t, 80, breakdown.OvertimeCost)
	assertDecEqual(t, 0, breakdown.NightAllowance)
	assertDecEqual(t, 240, breakdown.TotalCost)
}
