/*
trend.go - Day-over-day lost-hours trend analysis

PURPOSE:
  Buckets calculated shifts by calendar date and computes one TrendPoint
  per date present in the collection: lost hours, cost, distinct employee
  and department counts, average lost hours per employee, efficiency, and
  a direction relative to the immediately preceding date in the series.

DIRECTION:
  "improving" when total lost hours decreased from the previous present
  date, "declining" when they increased, "stable" otherwise - including
  the first date, which has nothing to compare against.

ABSENT DAYS:
  Dates with zero records are simply absent. The analyzer never
  synthesizes empty buckets for missing calendar days; direction is
  computed against the previous date PRESENT in the set, however far back
  that is.

SEE ALSO:
  - aggregate.go: The period-level rollup; this is the time axis instead
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// TrendPoint summarizes one calendar date present in the input.
type TrendPoint struct {
	Date               Date
	LostHours          decimal.Decimal
	LostCost           decimal.Decimal
	Employees          int // distinct employees that worked the date
	Departments        int // distinct departments present on the date
	AveragePerEmployee decimal.Decimal
	Efficiency         float64
	Direction          TrendDirection
}

// trendDay is the per-date fold state.
type trendDay struct {
	date        Date
	lostHours   decimal.Decimal
	lostCost    decimal.Decimal
	scheduled   decimal.Decimal
	actual      decimal.Decimal
	employees   map[string]struct{}
	departments map[string]struct{}
}

// AnalyzeTrends groups shifts by calendar date and returns one TrendPoint
// per date, ascending. Records without a date group under the "unknown"
// key, which sorts after all real dates.
func AnalyzeTrends(shifts []ShiftRecord, rules Rules) []TrendPoint {
	days := make(map[string]*trendDay)

	for _, shift := range shifts {
		key := shift.Date.Key()
		day, ok := days[key]
		if !ok {
			day = &trendDay{
				date:        shift.Date,
				employees:   make(map[string]struct{}),
				departments: make(map[string]struct{}),
			}
			days[key] = day
		}

		actual := shift.HoursWorked
		if actual.IsNegative() {
			actual = decZero
		}
		rate := shift.HourlyRate
		if rate.IsNegative() {
			rate = decZero
		}
		lost := rules.PaidHoursPerShift.Sub(actual)
		if lost.IsNegative() {
			lost = decZero
		}

		day.lostHours = day.lostHours.Add(lost)
		day.lostCost = day.lostCost.Add(lost.Mul(rate))
		day.scheduled = day.scheduled.Add(rules.PaidHoursPerShift)
		day.actual = day.actual.Add(actual)
		day.employees[keyOrUnknown(shift.EmployeeID)] = struct{}{}
		day.departments[keyOrUnknown(shift.Department)] = struct{}{}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	// ISO dates sort chronologically as strings; "unknown" lands last.
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	var prevLost decimal.Decimal
	for i, key := range keys {
		day := days[key]

		direction := TrendStable
		if i > 0 {
			switch {
			case day.lostHours.LessThan(prevLost):
				direction = TrendImproving
			case day.lostHours.GreaterThan(prevLost):
				direction = TrendDeclining
			}
		}
		prevLost = day.lostHours

		avg := decZero
		if n := len(day.employees); n > 0 {
			avg = day.lostHours.Div(decimal.NewFromInt(int64(n)))
		}

		points = append(points, TrendPoint{
			Date:               day.date,
			LostHours:          day.lostHours,
			LostCost:           day.lostCost,
			Employees:          len(day.employees),
			Departments:        len(day.departments),
			AveragePerEmployee: avg,
			Efficiency:         ratioPct(day.actual, day.scheduled),
			Direction:          direction,
		})
	}
	return points
}
