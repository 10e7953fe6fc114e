/*
workforce.go - Roster-level cost analysis

PURPOSE:
  Projects weekly labor cost from the employee roster: headcount, total
  and average cost, and rollups by position, department, and agency. This
  sits beside the lost-hours core rather than inside it - it reads the
  roster, not shift records - and is the one consumer of the
  StandardHoursPerWeek rule.

PROJECTION:
  weekly cost per employee = StandardHoursPerWeek x hourly rate. A missing
  rate projects zero cost but still counts toward headcount.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// GroupCost is a headcount-and-cost rollup for one roster grouping key.
type GroupCost struct {
	Count     int
	TotalCost decimal.Decimal
}

// WorkforceAnalysis is the roster-level weekly cost projection.
type WorkforceAnalysis struct {
	TotalEmployees    int
	TotalWeeklyCost   decimal.Decimal
	AverageHourlyRate decimal.Decimal

	ByPosition   map[string]*GroupCost
	ByDepartment map[string]*GroupCost
	ByAgency     map[string]*GroupCost
}

// AnalyzeWorkforce projects weekly cost across the roster. An empty roster
// yields a zero-valued analysis with empty (non-nil) rollup maps.
func AnalyzeWorkforce(employees []Employee, rules Rules) *WorkforceAnalysis {
	analysis := &WorkforceAnalysis{
		TotalEmployees: len(employees),
		ByPosition:     make(map[string]*GroupCost),
		ByDepartment:   make(map[string]*GroupCost),
		ByAgency:       make(map[string]*GroupCost),
	}

	var rateSum decimal.Decimal
	for _, emp := range employees {
		rate := emp.HourlyRate
		if rate.IsNegative() {
			rate = decZero
		}
		weekly := rules.StandardHoursPerWeek.Mul(rate)

		analysis.TotalWeeklyCost = analysis.TotalWeeklyCost.Add(weekly)
		rateSum = rateSum.Add(rate)

		addGroupCost(analysis.ByPosition, keyOrUnknown(emp.Position), weekly)
		addGroupCost(analysis.ByDepartment, keyOrUnknown(emp.Department), weekly)
		addGroupCost(analysis.ByAgency, keyOrUnknown(emp.Agency), weekly)
	}

	if len(employees) > 0 {
		analysis.AverageHourlyRate = rateSum.Div(decimal.NewFromInt(int64(len(employees))))
	}
	return analysis
}

func addGroupCost(m map[string]*GroupCost, key string, cost decimal.Decimal) {
	g, ok := m[key]
	if !ok {
		g = &GroupCost{}
		m[key] = g
	}
	g.Count++
	g.TotalCost = g.TotalCost.Add(cost)
}
