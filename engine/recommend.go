/*
recommend.go - Threshold-driven remediation recommendations

PURPOSE:
  Reads a finalized LostHoursReport and emits a prioritized action list.
  Three independent rule families are evaluated; every triggered rule emits
  one recommendation, and nothing is emitted below the triggers.

RULES:
  department_efficiency:  Department efficiency < 85 -> recommend; high
                          priority below 80, else medium. Potential monthly
                          savings projects the department's lost cost over
                          WeeksPerMonthApprox weeks.
  individual_performance: Among the detail list (already sorted by lost
                          hours descending), the first five entries losing
                          more than 2 hours; high priority above 3 hours.
  agency_performance:     Agency average lost hours per participating shift
                          above 1.5; high priority above 2.0.

ORDERING:
  Priority is an ordered enumeration (high > medium > low), NOT a display
  string comparison. The output is stable-sorted by priority descending;
  within equal priority, emission order is preserved (departments, then
  individuals, then agencies, each in deterministic order). No rule
  currently emits low priority, but the ordering supports it.

SEE ALSO:
  - aggregate.go: Produces the report this consumes
*/
package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// WeeksPerMonthApprox projects a period's lost cost to a monthly figure by
// treating a month as exactly four weeks. This is a deliberate, documented
// approximation carried over from the business rules, not a calendar
// computation.
var WeeksPerMonthApprox = decimal.NewFromInt(4)

// Recommendation trigger thresholds.
const (
	deptEfficiencyTrigger = 85.0
	deptEfficiencyHigh    = 80.0
	deptEfficiencyTarget  = 90.0

	topIndividuals = 5
)

var (
	individualLostTrigger = decimal.NewFromInt(2)
	individualLostHigh    = decimal.NewFromInt(3)
	agencyAvgLostTrigger  = decimal.NewFromFloat(1.5)
	agencyAvgLostHigh     = decimal.NewFromInt(2)
)

// =============================================================================
// PRIORITY - Ordered enumeration used only for sorting
// =============================================================================

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// =============================================================================
// RECOMMENDATION
// =============================================================================

type RecommendationType string

const (
	RecDepartmentEfficiency RecommendationType = "department_efficiency"
	RecIndividualPerformance RecommendationType = "individual_performance"
	RecAgencyPerformance    RecommendationType = "agency_performance"
)

// Recommendation is one suggested remediation action. Subject identifies
// the department, employee, or agency the action targets; only the metric
// fields relevant to the rule family are populated.
type Recommendation struct {
	Type    RecommendationType
	Subject string

	// department_efficiency
	CurrentEfficiency float64
	TargetEfficiency  float64
	PotentialSavings  decimal.Decimal

	// individual_performance
	Department string
	LostHours  decimal.Decimal

	// agency_performance
	AverageLostHours decimal.Decimal

	// shared supporting metric: the triggering lost cost
	Cost decimal.Decimal

	Action   string
	Priority Priority
}

// GenerateRecommendations evaluates every rule family against the report
// and returns the applicable actions, stable-sorted by priority descending.
func GenerateRecommendations(report *LostHoursReport) []Recommendation {
	recs := []Recommendation{}
	if report == nil {
		return recs
	}

	// Department efficiency. Map iteration order is randomized, so walk
	// keys sorted for deterministic output.
	for _, dept := range sortedKeys(report.ByDepartment) {
		bucket := report.ByDepartment[dept]
		if bucket.Efficiency >= deptEfficiencyTrigger {
			continue
		}
		priority := PriorityMedium
		if bucket.Efficiency < deptEfficiencyHigh {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Type:              RecDepartmentEfficiency,
			Subject:           dept,
			CurrentEfficiency: bucket.Efficiency,
			TargetEfficiency:  deptEfficiencyTarget,
			PotentialSavings:  bucket.LostCost.Mul(WeeksPerMonthApprox),
			Cost:              bucket.LostCost,
			Action:            fmt.Sprintf("Implement efficiency improvements in %s", dept),
			Priority:          priority,
		})
	}

	// Worst individuals. Entries are already sorted by lost hours
	// descending.
	limit := topIndividuals
	if len(report.Entries) < limit {
		limit = len(report.Entries)
	}
	for _, entry := range report.Entries[:limit] {
		if !entry.LostHours.GreaterThan(individualLostTrigger) {
			continue
		}
		priority := PriorityMedium
		if entry.LostHours.GreaterThan(individualLostHigh) {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Type:       RecIndividualPerformance,
			Subject:    entry.EmployeeName,
			Department: entry.Department,
			LostHours:  entry.LostHours,
			Cost:       entry.LostCost,
			Action:     fmt.Sprintf("Schedule performance review with %s", entry.EmployeeName),
			Priority:   priority,
		})
	}

	// Agency performance.
	for _, agency := range sortedKeys(report.ByAgency) {
		bucket := report.ByAgency[agency]
		if bucket.Employees == 0 {
			continue
		}
		avg := bucket.LostHours.Div(decimal.NewFromInt(int64(bucket.Employees)))
		if !avg.GreaterThan(agencyAvgLostTrigger) {
			continue
		}
		priority := PriorityMedium
		if avg.GreaterThan(agencyAvgLostHigh) {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Type:             RecAgencyPerformance,
			Subject:          agency,
			AverageLostHours: avg,
			Cost:             bucket.LostCost,
			Action:           fmt.Sprintf("Review contract and performance with %s", agency),
			Priority:         priority,
		})
	}

	// Stable: equal priorities keep emission order.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})
	return recs
}

func sortedKeys[B any](m map[string]B) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
