package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-analytics/engine"
)

// Note: dec and assertDecEqual are defined in calculator_test.go

func rosterEmployee(number, position, department, agency string, rate float64) engine.Employee {
	return engine.Employee{
		EmployeeNumber: number,
		Name:           "Employee " + number,
		Position:       position,
		Department:     department,
		Agency:         agency,
		CostCentre:     "3040034",
		HourlyRate:     dec(rate),
		BillRate:       dec(rate * 1.25),
	}
}

// =============================================================================
// WORKFORCE PROJECTION TESTS
// =============================================================================

func TestAnalyzeWorkforce_WeeklyProjection(t *testing.T) {
	// GIVEN: Two employees at 40.00/h and 30.00/h with a 45-hour week
	// WHEN: Projecting weekly cost
	// THEN: 1800 + 1350 = 3150 total, 35.00 average rate

	roster := []engine.Employee{
		rosterEmployee("100001", "DCA", "Picking", "Adcorp Blu", 40),
		rosterEmployee("100002", "Clerk", "Inbound", "Workforce", 30),
	}

	analysis := engine.AnalyzeWorkforce(roster, engine.DefaultRules())

	assert.Equal(t, 2, analysis.TotalEmployees)
	assertDecEqual(t, 3150, analysis.TotalWeeklyCost)
	assertDecEqual(t, 35, analysis.AverageHourlyRate)
}

func TestAnalyzeWorkforce_Rollups(t *testing.T) {
	// GIVEN: A roster spanning positions, departments, and agencies
	// WHEN: Projecting
	// THEN: Each rollup partitions the full headcount and cost

	roster := []engine.Employee{
		rosterEmployee("100001", "DCA", "Picking", "Adcorp Blu", 40),
		rosterEmployee("100002", "DCA", "Picking", "Workforce", 40),
		rosterEmployee("100003", "Supervisor", "Inbound", "TFG Permanent", 60),
	}

	analysis := engine.AnalyzeWorkforce(roster, engine.DefaultRules())

	require.Contains(t, analysis.ByPosition, "DCA")
	assert.Equal(t, 2, analysis.ByPosition["DCA"].Count)
	assertDecEqual(t, 3600, analysis.ByPosition["DCA"].TotalCost)
	assert.Equal(t, 1, analysis.ByPosition["Supervisor"].Count)

	assert.Equal(t, 2, analysis.ByDepartment["Picking"].Count)
	assert.Equal(t, 1, analysis.ByDepartment["Inbound"].Count)

	for _, family := range []map[string]*engine.GroupCost{
		analysis.ByPosition, analysis.ByDepartment, analysis.ByAgency,
	} {
		count := 0
		total := dec(0)
		for _, g := range family {
			count += g.Count
			total = total.Add(g.TotalCost)
		}
		assert.Equal(t, analysis.TotalEmployees, count)
		assert.True(t, analysis.TotalWeeklyCost.Equal(total))
	}
}

func TestAnalyzeWorkforce_MissingRate_CountsTowardHeadcount(t *testing.T) {
	// GIVEN: An employee with no hourly rate
	// WHEN: Projecting
	// THEN: Zero cost, but still counted

	roster := []engine.Employee{
		rosterEmployee("100001", "DCA", "Picking", "Adcorp Blu", 0),
		rosterEmployee("100002", "DCA", "Picking", "Adcorp Blu", 40),
	}

	analysis := engine.AnalyzeWorkforce(roster, engine.DefaultRules())

	assert.Equal(t, 2, analysis.TotalEmployees)
	assertDecEqual(t, 1800, analysis.TotalWeeklyCost)
	assert.Equal(t, 2, analysis.ByPosition["DCA"].Count)
}

func TestAnalyzeWorkforce_MissingGrouping_Unknown(t *testing.T) {
	// GIVEN: An employee with no position or agency
	// WHEN: Projecting
	// THEN: They land under the unknown key

	roster := []engine.Employee{
		{EmployeeNumber: "100001", Department: "Picking", HourlyRate: dec(40)},
	}

	analysis := engine.AnalyzeWorkforce(roster, engine.DefaultRules())

	assert.Contains(t, analysis.ByPosition, engine.UnknownKey)
	assert.Contains(t, analysis.ByAgency, engine.UnknownKey)
}

func TestAnalyzeWorkforce_EmptyRoster(t *testing.T) {
	analysis := engine.AnalyzeWorkforce(nil, engine.DefaultRules())

	assert.Equal(t, 0, analysis.TotalEmployees)
	assertDecEqual(t, 0, analysis.TotalWeeklyCost)
	assertDecEqual(t, 0, analysis.AverageHourlyRate)
	assert.NotNil(t, analysis.ByPosition)
	assert.NotNil(t, analysis.ByDepartment)
	assert.NotNil(t, analysis.ByAgency)
}
