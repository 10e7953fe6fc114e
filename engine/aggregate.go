/*
aggregate.go - Multi-dimensional lost-hours rollup

PURPOSE:
  Folds a collection of shift records into one LostHoursReport: global
  totals, buckets by department/agency/cost-centre/date, the sorted detail
  list, alerts, and efficiency ratios.

KEY INSIGHT:
  Aggregation is an explicit fold into an Accumulator. Bucket totals are
  sums, so accumulation is associative per grouping key: partition the
  input, Add each partition into its own Accumulator, Merge, Finalize, and
  the result is identical to a single sequential pass. That makes the
  parallelization property testable in isolation.

WHAT COUNTS WHERE:
  - Scheduled hours per shift is ALWAYS the paid-hours-per-shift rule.
  - Only shifts with a positive shortfall contribute to the detail list,
    buckets, and alerts.
  - EVERY shift contributes to the scheduled/actual totals behind the
    overall and per-department efficiency ratios. Efficiency reflects all
    shifts, not only deficient ones.
  - Department buckets derive their efficiency from the department's own
    scheduled/actual totals, never from the global ratio.

ALERTS:
  A shift loses more than 2 hours -> alert; more than 3 -> high severity,
  otherwise medium.

DETERMINISM:
  Finalize sorts the detail list with a stable sort (lost hours descending,
  ties keep insertion order) and never exposes map iteration order, so an
  unchanged input collection yields a bit-identical report.

SEE ALSO:
  - recommend.go: Consumes the finalized report
  - types.go: Report and bucket shapes
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Alert thresholds, in lost hours per shift.
var (
	alertThreshold        = decimal.NewFromInt(2)
	alertSeverityHighOver = decimal.NewFromInt(3)
)

// AggregateLostHours rolls a period's shift records up into one report.
// An empty (or nil) collection yields a well-formed zero-valued report.
func AggregateLostHours(shifts []ShiftRecord, rules Rules) *LostHoursReport {
	acc := NewAccumulator(rules)
	for _, s := range shifts {
		acc.Add(s)
	}
	return acc.Finalize()
}

// =============================================================================
// ACCUMULATOR - The explicit fold state
// =============================================================================

// deptHours tracks a department's scheduled/actual totals across ALL of its
// shifts, deficient or not.
type deptHours struct {
	scheduled decimal.Decimal
	actual    decimal.Decimal
}

// Accumulator folds shift records into partial rollup state. Add records
// one partition, Merge combines partitions, Finalize produces the report.
// An Accumulator is not safe for concurrent use; use one per goroutine and
// Merge the results.
type Accumulator struct {
	rules Rules

	totalLostHours decimal.Decimal
	totalLostCost  decimal.Decimal

	totalScheduled decimal.Decimal
	totalActual    decimal.Decimal
	deptTotals     map[string]*deptHours

	byDepartment map[string]*DepartmentBucket
	byAgency     map[string]*AggregateBucket
	byCostCentre map[string]*AggregateBucket
	byDate       map[string]*AggregateBucket

	entries []LostHoursEntry
	alerts  []Alert
}

// NewAccumulator creates an empty fold state for the given rule set.
func NewAccumulator(rules Rules) *Accumulator {
	return &Accumulator{
		rules:        rules,
		deptTotals:   make(map[string]*deptHours),
		byDepartment: make(map[string]*DepartmentBucket),
		byAgency:     make(map[string]*AggregateBucket),
		byCostCentre: make(map[string]*AggregateBucket),
		byDate:       make(map[string]*AggregateBucket),
	}
}

// keyOrUnknown degrades an absent identifying field to the unknown key
// instead of rejecting the record.
func keyOrUnknown(s string) string {
	if s == "" {
		return UnknownKey
	}
	return s
}

// Add folds one shift record into the accumulator.
func (a *Accumulator) Add(shift ShiftRecord) {
	scheduled := a.rules.PaidHoursPerShift
	actual := shift.HoursWorked
	if actual.IsNegative() {
		actual = decZero
	}
	rate := shift.HourlyRate
	if rate.IsNegative() {
		rate = decZero
	}

	dept := keyOrUnknown(shift.Department)

	// Every shift feeds the efficiency denominators.
	a.totalScheduled = a.totalScheduled.Add(scheduled)
	a.totalActual = a.totalActual.Add(actual)
	dh, ok := a.deptTotals[dept]
	if !ok {
		dh = &deptHours{}
		a.deptTotals[dept] = dh
	}
	dh.scheduled = dh.scheduled.Add(scheduled)
	dh.actual = dh.actual.Add(actual)

	lost := scheduled.Sub(actual)
	if !lost.IsPositive() {
		return
	}
	lostCost := lost.Mul(rate)

	a.totalLostHours = a.totalLostHours.Add(lost)
	a.totalLostCost = a.totalLostCost.Add(lostCost)

	db, ok := a.byDepartment[dept]
	if !ok {
		db = &DepartmentBucket{}
		a.byDepartment[dept] = db
	}
	db.LostHours = db.LostHours.Add(lost)
	db.LostCost = db.LostCost.Add(lostCost)
	db.Employees++

	addToBucket(a.byAgency, keyOrUnknown(shift.Agency), lost, lostCost)
	addToBucket(a.byCostCentre, keyOrUnknown(shift.CostCentre), lost, lostCost)
	addToBucket(a.byDate, shift.Date.Key(), lost, lostCost)

	eff := ratioPct(actual, scheduled)
	a.entries = append(a.entries, LostHoursEntry{
		EmployeeID:     shift.EmployeeID,
		EmployeeNumber: shift.EmployeeNumber,
		EmployeeName:   shift.EmployeeName,
		Department:     shift.Department,
		Agency:         shift.Agency,
		CostCentre:     shift.CostCentre,
		Date:           shift.Date,
		HourlyRate:     rate,
		ScheduledHours: scheduled,
		ActualHours:    actual,
		LostHours:      lost,
		LostCost:       lostCost,
		Efficiency:     eff,
		Status:         StatusForEfficiency(eff),
	})

	if lost.GreaterThan(alertThreshold) {
		severity := SeverityMedium
		if lost.GreaterThan(alertSeverityHighOver) {
			severity = SeverityHigh
		}
		a.alerts = append(a.alerts, Alert{
			Type:       AlertHighLostHours,
			Employee:   shift.EmployeeName,
			Department: shift.Department,
			Date:       shift.Date,
			LostHours:  lost,
			Cost:       lostCost,
			Severity:   severity,
		})
	}
}

func addToBucket(m map[string]*AggregateBucket, key string, lost, cost decimal.Decimal) {
	b, ok := m[key]
	if !ok {
		b = &AggregateBucket{}
		m[key] = b
	}
	b.LostHours = b.LostHours.Add(lost)
	b.LostCost = b.LostCost.Add(cost)
	b.Employees++
}

// Merge folds another accumulator's partial state into this one. Entries
// and alerts keep concatenation order; bucket totals sum. Both accumulators
// must share the same rule set.
func (a *Accumulator) Merge(other *Accumulator) {
	a.totalLostHours = a.totalLostHours.Add(other.totalLostHours)
	a.totalLostCost = a.totalLostCost.Add(other.totalLostCost)
	a.totalScheduled = a.totalScheduled.Add(other.totalScheduled)
	a.totalActual = a.totalActual.Add(other.totalActual)

	for dept, dh := range other.deptTotals {
		mine, ok := a.deptTotals[dept]
		if !ok {
			mine = &deptHours{}
			a.deptTotals[dept] = mine
		}
		mine.scheduled = mine.scheduled.Add(dh.scheduled)
		mine.actual = mine.actual.Add(dh.actual)
	}

	for dept, b := range other.byDepartment {
		mine, ok := a.byDepartment[dept]
		if !ok {
			mine = &DepartmentBucket{}
			a.byDepartment[dept] = mine
		}
		mine.LostHours = mine.LostHours.Add(b.LostHours)
		mine.LostCost = mine.LostCost.Add(b.LostCost)
		mine.Employees += b.Employees
	}
	mergeBuckets(a.byAgency, other.byAgency)
	mergeBuckets(a.byCostCentre, other.byCostCentre)
	mergeBuckets(a.byDate, other.byDate)

	a.entries = append(a.entries, other.entries...)
	a.alerts = append(a.alerts, other.alerts...)
}

func mergeBuckets(dst, src map[string]*AggregateBucket) {
	for key, b := range src {
		mine, ok := dst[key]
		if !ok {
			mine = &AggregateBucket{}
			dst[key] = mine
		}
		mine.LostHours = mine.LostHours.Add(b.LostHours)
		mine.LostCost = mine.LostCost.Add(b.LostCost)
		mine.Employees += b.Employees
	}
}

// Finalize computes the derived ratios, sorts the detail list, and returns
// the report. The accumulator should not be reused afterwards.
func (a *Accumulator) Finalize() *LostHoursReport {
	report := &LostHoursReport{
		TotalLostHours: a.totalLostHours,
		TotalLostCost:  a.totalLostCost,
		ByDepartment:   a.byDepartment,
		ByAgency:       a.byAgency,
		ByCostCentre:   a.byCostCentre,
		ByDate:         a.byDate,
		Entries:        a.entries,
		Alerts:         a.alerts,
		Efficiency: EfficiencyMetrics{
			TotalScheduledHours: a.totalScheduled,
			TotalActualHours:    a.totalActual,
			Overall:             ratioPct(a.totalActual, a.totalScheduled),
			ByDepartment:        make(map[string]float64, len(a.deptTotals)),
		},
	}

	for dept, dh := range a.deptTotals {
		report.Efficiency.ByDepartment[dept] = ratioPct(dh.actual, dh.scheduled)
	}
	for dept, bucket := range a.byDepartment {
		dh := a.deptTotals[dept]
		bucket.ScheduledHours = dh.scheduled
		bucket.ActualHours = dh.actual
		bucket.Efficiency = ratioPct(dh.actual, dh.scheduled)
	}

	// Stable: ties keep input order.
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].LostHours.GreaterThan(report.Entries[j].LostHours)
	})

	if report.Entries == nil {
		report.Entries = []LostHoursEntry{}
	}
	if report.Alerts == nil {
		report.Alerts = []Alert{}
	}
	return report
}
