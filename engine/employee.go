/*
employee.go - Per-employee lost-hours summary

PURPOSE:
  Condenses one employee's shift history into the summary surfaced on
  roster views: total lost hours and cost, average efficiency, lost hours
  over the most recent shifts, and a simple better-or-worse direction.

TREND:
  The history is split in two by date; the later half's efficiency is
  compared against the earlier half's. With fewer than two shifts there is
  nothing to compare, so the direction is stable.

SEE ALSO:
  - aggregate.go: The collection-level equivalent
  - trend.go: The day-bucketed time series
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// recentShiftWindow is how many of the latest shifts feed RecentLostHours.
const recentShiftWindow = 3

// EmployeeSummary is one employee's condensed lost-hours record.
type EmployeeSummary struct {
	ShiftsWorked      int
	TotalLostHours    decimal.Decimal
	TotalLostCost     decimal.Decimal
	AverageEfficiency float64
	RecentLostHours   decimal.Decimal // over the recentShiftWindow latest shifts
	Trend             TrendDirection
}

// SummarizeEmployee folds one employee's shifts into a summary. The slice
// may arrive in any order; it is sorted by date internally and not
// mutated. An empty slice yields a zero-valued summary with a stable
// trend.
func SummarizeEmployee(shifts []ShiftRecord, rules Rules) EmployeeSummary {
	summary := EmployeeSummary{
		ShiftsWorked: len(shifts),
		Trend:        TrendStable,
	}
	if len(shifts) == 0 {
		return summary
	}

	ordered := make([]ShiftRecord, len(shifts))
	copy(ordered, shifts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var totalScheduled, totalActual decimal.Decimal
	for _, shift := range ordered {
		scheduled := rules.PaidHoursPerShift
		actual := shift.HoursWorked
		if actual.IsNegative() {
			actual = decZero
		}
		rate := shift.HourlyRate
		if rate.IsNegative() {
			rate = decZero
		}
		lost := scheduled.Sub(actual)
		if lost.IsNegative() {
			lost = decZero
		}

		totalScheduled = totalScheduled.Add(scheduled)
		totalActual = totalActual.Add(actual)
		summary.TotalLostHours = summary.TotalLostHours.Add(lost)
		summary.TotalLostCost = summary.TotalLostCost.Add(lost.Mul(rate))
	}
	summary.AverageEfficiency = ratioPct(totalActual, totalScheduled)

	recentFrom := len(ordered) - recentShiftWindow
	if recentFrom < 0 {
		recentFrom = 0
	}
	for _, shift := range ordered[recentFrom:] {
		lost := rules.PaidHoursPerShift.Sub(shift.HoursWorked)
		if lost.IsPositive() {
			summary.RecentLostHours = summary.RecentLostHours.Add(lost)
		}
	}

	if len(ordered) >= 2 {
		half := len(ordered) / 2
		earlier := efficiencyOf(ordered[:half], rules)
		later := efficiencyOf(ordered[half:], rules)
		switch {
		case later > earlier:
			summary.Trend = TrendImproving
		case later < earlier:
			summary.Trend = TrendDeclining
		}
	}
	return summary
}

// efficiencyOf computes actual/scheduled over a set of shifts.
func efficiencyOf(shifts []ShiftRecord, rules Rules) float64 {
	var scheduled, actual decimal.Decimal
	for _, shift := range shifts {
		scheduled = scheduled.Add(rules.PaidHoursPerShift)
		worked := shift.HoursWorked
		if worked.IsNegative() {
			worked = decZero
		}
		actual = actual.Add(worked)
	}
	return ratioPct(actual, scheduled)
}
