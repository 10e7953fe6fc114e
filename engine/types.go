/*
Package engine provides the labor cost and efficiency analytics core.

PURPOSE:
  This package contains the deterministic calculations that turn per-shift
  labor records (hours worked, pay rate, shift type, organizational tags)
  into costed workforce analytics: pay decomposition, lost-hours rollups,
  efficiency scoring, alerts, prioritized recommendations, and day-over-day
  trends.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftRecord: One employee's worked period on one date (input, read-only)
  - CostBreakdown: Pay decomposition for a single shift
  - LostHoursEntry: Scheduled-vs-actual shortfall for a single shift
  - AggregateBucket: Running lost-hours totals per grouping key
  - LostHoursReport: The full multi-dimensional rollup
  - Date: Calendar-day identity used as the grouping/trend key

DESIGN PRINCIPLES:
  1. Purity: Every entry point is a pure function of its inputs. Reports
     are recomputed fresh per invocation; nothing is persisted or mutated.
  2. Precision: Uses decimal.Decimal for hours and money to avoid
     floating-point drift in rollups.
  3. Permissive core, strict boundary: Missing numeric fields are zero,
     missing identifying fields become the "unknown" grouping key. The
     engine never rejects a record; validation belongs to ingestion.
  4. Determinism: Identical input collections produce bit-identical
     reports. No timestamps, no map-iteration ordering leaks.

USAGE:
  rules := engine.DefaultRules()
  breakdown := engine.ComputeShiftCost(shift, rules)
  report := engine.AggregateLostHours(shifts, rules)
  recs := engine.GenerateRecommendations(report)
  trends := engine.AnalyzeTrends(shifts, rules)

SEE ALSO:
  - rules.go: The business rule set parameterizing all calculation
  - calculator.go: Per-shift pay decomposition
  - aggregate.go: Multi-dimensional lost-hours rollup
  - recommend.go: Threshold-driven action list
  - trend.go: Day-over-day direction analysis
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Calendar-day identity
// =============================================================================

// Date identifies a calendar day. The zero Date means the record carried no
// usable date and aggregates under the "unknown" key.
type Date struct {
	t time.Time
}

// UnknownKey is the grouping key used when an identifying field is absent.
const UnknownKey = "unknown"

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date ("2006-01-02"). An empty or
// malformed string yields the zero Date rather than an error, matching the
// permissive-core contract.
func ParseDate(s string) Date {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}
	}
	return Date{t: t.UTC()}
}

// DateOf truncates an arbitrary time to its calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

func (d Date) IsZero() bool         { return d.t.IsZero() }
func (d Date) Before(o Date) bool   { return d.t.Before(o.t) }
func (d Date) After(o Date) bool    { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool    { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Time() time.Time      { return d.t }

// Key returns the grouping key for this date: the ISO date, or "unknown"
// for the zero Date.
func (d Date) Key() string {
	if d.IsZero() {
		return UnknownKey
	}
	return d.t.Format(dateLayout)
}

func (d Date) String() string { return d.Key() }

// =============================================================================
// INPUT RECORDS - Produced by the ingestion boundary, read-only here
// =============================================================================

// ShiftRecord is one employee's worked period on one date. The engine never
// mutates it and never rejects it: zero numerics contribute zero cost, and
// empty identifying fields degrade to the "unknown" grouping key.
type ShiftRecord struct {
	EmployeeID     string
	EmployeeNumber string
	EmployeeName   string
	Department     string
	Agency         string
	CostCentre     string
	Date           Date
	HoursWorked    decimal.Decimal
	NightShift     bool
	HourlyRate     decimal.Decimal
}

// Employee is a roster record used by the workforce cost analysis. Shifts
// reference employees by number; the roster carries the pay and
// organizational context.
type Employee struct {
	EmployeeNumber string
	Name           string
	Position       string
	Department     string
	Agency         string
	CostCentre     string
	HourlyRate     decimal.Decimal
	BillRate       decimal.Decimal
}

// =============================================================================
// COST BREAKDOWN - One per ShiftRecord
// =============================================================================

// CostBreakdown decomposes one shift's pay into regular, overtime, and
// night-allowance components.
//
// Invariants (see calculator.go):
//   RegularHours + OvertimeHours == HoursWorked
//   TotalCost == RegularCost + OvertimeCost + NightAllowance
//   all hour and cost fields are non-negative
type CostBreakdown struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Agency       string
	CostCentre   string
	Date         Date
	HourlyRate   decimal.Decimal

	RegularHours    decimal.Decimal
	OvertimeHours   decimal.Decimal
	NightShiftHours decimal.Decimal

	RegularCost    decimal.Decimal
	OvertimeCost   decimal.Decimal
	NightAllowance decimal.Decimal
	TotalCost      decimal.Decimal
}

// =============================================================================
// LOST HOURS - Shortfall against the paid-hours baseline
// =============================================================================

// EfficiencyStatus classifies an efficiency percentage. It is a pure
// function of the value (see StatusForEfficiency) and monotonic in it.
type EfficiencyStatus string

const (
	StatusExcellent        EfficiencyStatus = "excellent"
	StatusGood             EfficiencyStatus = "good"
	StatusFair             EfficiencyStatus = "fair"
	StatusNeedsImprovement EfficiencyStatus = "needs_improvement"
	StatusPoor             EfficiencyStatus = "poor"
)

// StatusForEfficiency maps an efficiency percentage (0-100+) to its status.
// Thresholds are evaluated highest first: >=95 excellent, >=90 good,
// >=85 fair, >=80 needs improvement, else poor.
func StatusForEfficiency(pct float64) EfficiencyStatus {
	switch {
	case pct >= 95:
		return StatusExcellent
	case pct >= 90:
		return StatusGood
	case pct >= 85:
		return StatusFair
	case pct >= 80:
		return StatusNeedsImprovement
	default:
		return StatusPoor
	}
}

// LostHoursEntry records one shift's positive shortfall against the
// scheduled baseline. Shifts with no shortfall produce no entry.
type LostHoursEntry struct {
	EmployeeID     string
	EmployeeNumber string
	EmployeeName   string
	Department     string
	Agency         string
	CostCentre     string
	Date           Date
	HourlyRate     decimal.Decimal

	ScheduledHours decimal.Decimal // always the paid-hours-per-shift rule
	ActualHours    decimal.Decimal
	LostHours      decimal.Decimal // max(0, scheduled - actual), > 0 here
	LostCost       decimal.Decimal // lost hours x hourly rate

	Efficiency float64 // actual / scheduled x 100
	Status     EfficiencyStatus
}

// =============================================================================
// AGGREGATE BUCKETS - Per grouping key
// =============================================================================

// AggregateBucket accumulates lost-hours totals for one grouping key
// (agency, cost centre, or date). The bucket's totals always reduce to the
// sum over its member LostHoursEntry values.
type AggregateBucket struct {
	LostHours decimal.Decimal
	LostCost  decimal.Decimal
	Employees int // participating shift count (one per deficient shift)
}

// DepartmentBucket additionally tracks the department's own scheduled and
// actual hour totals so its efficiency is derived from the department's own
// shifts, never imputed from the global ratio. Scheduled/actual cover ALL
// of the department's shifts, deficient or not.
type DepartmentBucket struct {
	AggregateBucket
	ScheduledHours decimal.Decimal
	ActualHours    decimal.Decimal
	Efficiency     float64
}

// Alert flags a single shift whose lost hours exceeded the trigger
// threshold.
type Alert struct {
	Type       AlertType
	Employee   string
	Department string
	Date       Date
	LostHours  decimal.Decimal
	Cost       decimal.Decimal
	Severity   AlertSeverity
}

type AlertType string

const AlertHighLostHours AlertType = "high_lost_hours"

type AlertSeverity string

const (
	SeverityMedium AlertSeverity = "medium" // elevated
	SeverityHigh   AlertSeverity = "high"
)

// EfficiencyMetrics carries the scheduled/actual totals and the derived
// ratios. Unlike the buckets, these totals cover every shift in the input,
// including fully staffed ones: efficiency reflects all shifts, not only
// deficient ones.
type EfficiencyMetrics struct {
	TotalScheduledHours decimal.Decimal
	TotalActualHours    decimal.Decimal
	Overall             float64
	ByDepartment        map[string]float64
}

// LostHoursReport is the collection-level rollup produced by
// AggregateLostHours. It is a deterministic snapshot: aggregating the same
// input twice yields an identical report.
type LostHoursReport struct {
	TotalLostHours decimal.Decimal
	TotalLostCost  decimal.Decimal

	ByDepartment map[string]*DepartmentBucket
	ByAgency     map[string]*AggregateBucket
	ByCostCentre map[string]*AggregateBucket
	ByDate       map[string]*AggregateBucket

	// Entries lists every deficient shift, sorted by lost hours descending
	// (stable; ties keep input order).
	Entries []LostHoursEntry

	Alerts []Alert

	Efficiency EfficiencyMetrics
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

var (
	decZero    = decimal.Zero
	decHundred = decimal.NewFromInt(100)
)

// ratioPct returns actual/scheduled as a percentage, or 0 when the
// denominator is zero.
func ratioPct(actual, scheduled decimal.Decimal) float64 {
	if scheduled.IsZero() {
		return 0
	}
	pct, _ := actual.Mul(decHundred).Div(scheduled).Float64()
	return pct
}
