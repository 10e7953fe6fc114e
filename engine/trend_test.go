package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-analytics/engine"
)

// Note: workedShift, dec, and assertDecEqual are defined in calculator_test.go

func onDay(day int, shifts ...engine.ShiftRecord) []engine.ShiftRecord {
	date := engine.NewDate(2026, time.March, day)
	for i := range shifts {
		shifts[i].Date = date
	}
	return shifts
}

// =============================================================================
// TREND SERIES TESTS
// =============================================================================

func TestAnalyzeTrends_ImprovingThenDeclining(t *testing.T) {
	// GIVEN: Three days losing 10, 6, and 8 hours respectively
	// WHEN: Analyzing trends
	// THEN: stable, improving, declining

	var shifts []engine.ShiftRecord
	// Day 2: 2 x 5.0 lost = 10
	shifts = append(shifts, onDay(2,
		workedShift("emp-1", "Picking", 2.5, 40),
		workedShift("emp-2", "Picking", 2.5, 40))...)
	// Day 3: 2 x 3.0 lost = 6
	shifts = append(shifts, onDay(3,
		workedShift("emp-1", "Picking", 4.5, 40),
		workedShift("emp-2", "Picking", 4.5, 40))...)
	// Day 4: 2 x 4.0 lost = 8
	shifts = append(shifts, onDay(4,
		workedShift("emp-1", "Picking", 3.5, 40),
		workedShift("emp-2", "Picking", 3.5, 40))...)

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 3)
	assert.Equal(t, engine.TrendStable, points[0].Direction, "first day has no predecessor")
	assertDecEqual(t, 10, points[0].LostHours)
	assert.Equal(t, engine.TrendImproving, points[1].Direction)
	assertDecEqual(t, 6, points[1].LostHours)
	assert.Equal(t, engine.TrendDeclining, points[2].Direction)
	assertDecEqual(t, 8, points[2].LostHours)
}

func TestAnalyzeTrends_EqualDays_Stable(t *testing.T) {
	// GIVEN: Two days with identical lost hours
	// WHEN: Analyzing trends
	// THEN: The second day reads stable

	var shifts []engine.ShiftRecord
	shifts = append(shifts, onDay(2, workedShift("emp-1", "Picking", 5, 40))...)
	shifts = append(shifts, onDay(3, workedShift("emp-1", "Picking", 5, 40))...)

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 2)
	assert.Equal(t, engine.TrendStable, points[1].Direction)
}

func TestAnalyzeTrends_ChronologicalRegardlessOfInputOrder(t *testing.T) {
	// GIVEN: Shifts arriving newest first
	// WHEN: Analyzing trends
	// THEN: Points come back date-ascending with direction computed forward

	var shifts []engine.ShiftRecord
	shifts = append(shifts, onDay(5, workedShift("emp-1", "Picking", 6.5, 40))...) // 1.0 lost
	shifts = append(shifts, onDay(2, workedShift("emp-1", "Picking", 4.5, 40))...) // 3.0 lost

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 2)
	assert.Equal(t, "2026-03-02", points[0].Date.Key())
	assert.Equal(t, "2026-03-05", points[1].Date.Key())
	assert.Equal(t, engine.TrendImproving, points[1].Direction)
}

func TestAnalyzeTrends_GapDays_ComparedAcrossGap(t *testing.T) {
	// GIVEN: Records on March 2 and March 9 only
	// WHEN: Analyzing trends
	// THEN: Two points; March 9 compares directly against March 2

	var shifts []engine.ShiftRecord
	shifts = append(shifts, onDay(2, workedShift("emp-1", "Picking", 4, 40))...) // 3.5 lost
	shifts = append(shifts, onDay(9, workedShift("emp-1", "Picking", 6, 40))...) // 1.5 lost

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 2, "absent days are not synthesized")
	assert.Equal(t, engine.TrendImproving, points[1].Direction)
}

func TestAnalyzeTrends_DistinctCounts(t *testing.T) {
	// GIVEN: One day where an employee works twice across two departments
	// WHEN: Analyzing trends
	// THEN: Counts are distinct, not per-record

	var shifts []engine.ShiftRecord
	shifts = append(shifts, onDay(2,
		workedShift("emp-1", "Picking", 5, 40),
		workedShift("emp-1", "Despatch", 5, 40),
		workedShift("emp-2", "Picking", 5, 40))...)

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 1)
	assert.Equal(t, 2, points[0].Employees)
	assert.Equal(t, 2, points[0].Departments)
	// 7.5 lost over 2 distinct employees
	assertDecEqual(t, 3.75, points[0].AveragePerEmployee)
}

func TestAnalyzeTrends_EfficiencyCoversAllShifts(t *testing.T) {
	// GIVEN: A day with one deficient and one full shift
	// WHEN: Analyzing trends
	// THEN: The day's efficiency reflects both

	var shifts []engine.ShiftRecord
	shifts = append(shifts, onDay(2,
		workedShift("emp-1", "Picking", 6, 40),
		workedShift("emp-2", "Picking", 7.5, 40))...)

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 1)
	assert.InDelta(t, 90.0, points[0].Efficiency, 0.0001)
}

func TestAnalyzeTrends_UndatedRecords_SortLast(t *testing.T) {
	// GIVEN: A dated record and one with no date
	// WHEN: Analyzing trends
	// THEN: The unknown bucket appears after all real dates

	undated := workedShift("emp-1", "Picking", 5, 40)
	undated.Date = engine.Date{}
	shifts := append(onDay(2, workedShift("emp-2", "Picking", 6, 40)), undated)

	points := engine.AnalyzeTrends(shifts, engine.DefaultRules())

	require.Len(t, points, 2)
	assert.Equal(t, "2026-03-02", points[0].Date.Key())
	assert.Equal(t, engine.UnknownKey, points[1].Date.Key())
}

func TestAnalyzeTrends_Empty(t *testing.T) {
	assert.Empty(t, engine.AnalyzeTrends(nil, engine.DefaultRules()))
}
