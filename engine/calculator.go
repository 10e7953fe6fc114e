/*
calculator.go - Per-shift pay decomposition

PURPOSE:
  Computes exactly one CostBreakdown per ShiftRecord. This is the leaf of
  the analytics pipeline: no dependencies beyond the rule set.

DECOMPOSITION:
  Hours at or below PaidHoursPerShift are regular; any excess is overtime
  paid at OvertimeRate. If the night flag is set, the FULL shift duration
  counts as night-shift hours and earns an allowance of
  hours x rate x NightShiftAllowanceRate, stacked on top of (not replacing)
  regular/overtime pay.

EXAMPLE:
  9.0h at 40.00/h, night shift, 7.5h threshold, 1.5x overtime, 10% allowance:
    regular   7.5h -> 300.00
    overtime  1.5h ->  90.00  (1.5 x 40.00 x 1.5)
    allowance 9.0h ->  36.00  (9.0 x 40.00 x 0.10)
    total            426.00

FAILURE SEMANTICS:
  None. Zero hours or a zero rate simply contribute zero; the shift still
  carries its hours into totals. Negative inputs are clamped to zero so the
  non-negativity invariant holds even against a misbehaving boundary.

SEE ALSO:
  - aggregate.go: Consumes the same records for lost-hours rollup
*/
package engine

// ComputeShiftCost decomposes one shift's pay under the given rule set.
func ComputeShiftCost(shift ShiftRecord, rules Rules) CostBreakdown {
	hours := shift.HoursWorked
	if hours.IsNegative() {
		hours = decZero
	}
	rate := shift.HourlyRate
	if rate.IsNegative() {
		rate = decZero
	}

	regular := hours
	overtime := decZero
	if hours.GreaterThan(rules.PaidHoursPerShift) {
		regular = rules.PaidHoursPerShift
		overtime = hours.Sub(rules.PaidHoursPerShift)
	}

	nightHours := decZero
	if shift.NightShift {
		nightHours = hours
	}

	regularCost := regular.Mul(rate)
	overtimeCost := overtime.Mul(rate).Mul(rules.OvertimeRate)
	nightAllowance := nightHours.Mul(rate).Mul(rules.NightShiftAllowanceRate)

	return CostBreakdown{
		EmployeeID:   shift.EmployeeID,
		EmployeeName: shift.EmployeeName,
		Department:   shift.Department,
		Agency:       shift.Agency,
		CostCentre:   shift.CostCentre,
		Date:         shift.Date,
		HourlyRate:   rate,

		RegularHours:    regular,
		OvertimeHours:   overtime,
		NightShiftHours: nightHours,

		RegularCost:    regularCost,
		OvertimeCost:   overtimeCost,
		NightAllowance: nightAllowance,
		TotalCost:      regularCost.Add(overtimeCost).Add(nightAllowance),
	}
}
