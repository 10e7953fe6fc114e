/*
scenarios_test.go - Tests for demo scenario loading
*/
package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_ListScenarios(t *testing.T) {
	srv := newTestServer(t)

	var list []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	getJSON(t, srv.URL+"/api/scenarios", &list)

	require.Len(t, list, 4)
	ids := make([]string, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "steady-week")
	assert.Contains(t, ids, "short-shifts")
	assert.Contains(t, ids, "night-crew")
	assert.Contains(t, ids, "agency-mix")
}

func TestAPI_LoadScenario(t *testing.T) {
	// GIVEN: A fresh server
	// WHEN: Loading the short-shifts scenario
	// THEN: Roster and shifts are populated and the scenario is current

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "short-shifts"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var shifts []map[string]any
	getJSON(t, srv.URL+"/api/shifts", &shifts)
	assert.NotEmpty(t, shifts)

	var roster []map[string]any
	getJSON(t, srv.URL+"/api/employees", &roster)
	assert.NotEmpty(t, roster)

	var current map[string]any
	getJSON(t, srv.URL+"/api/scenarios/current", &current)
	assert.Equal(t, "short-shifts", current["id"])
}

func TestAPI_LoadScenario_ReplacesPrevious(t *testing.T) {
	// GIVEN: One scenario already loaded
	// WHEN: Loading a different one
	// THEN: Only the new scenario's data remains

	srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "steady-week"}).Body.Close()
	var before []map[string]any
	getJSON(t, srv.URL+"/api/shifts", &before)

	postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "night-crew"}).Body.Close()
	var after []map[string]any
	getJSON(t, srv.URL+"/api/shifts", &after)

	require.NotEmpty(t, before)
	require.NotEmpty(t, after)
	assert.NotEqual(t, len(before), len(after), "night-crew replaces steady-week's dataset")

	nightShifts := 0
	for _, s := range after {
		if s["night_shift"] == true {
			nightShifts++
		}
	}
	assert.Greater(t, nightShifts, 0)
}

func TestAPI_LoadScenario_Unknown_404(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "nope"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ResetData(t *testing.T) {
	// GIVEN: A loaded scenario
	// WHEN: Resetting
	// THEN: Shifts, roster, and current scenario are cleared

	srv := newTestServer(t)
	postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "agency-mix"}).Body.Close()

	resp, err := http.Post(srv.URL+"/api/scenarios/reset", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "reset", status["status"])

	var shifts []map[string]any
	getJSON(t, srv.URL+"/api/shifts", &shifts)
	assert.Empty(t, shifts)

	var current any
	getJSON(t, srv.URL+"/api/scenarios/current", &current)
	assert.Nil(t, current)
}

func TestAPI_ScenarioReports(t *testing.T) {
	// GIVEN: The short-shifts scenario
	// WHEN: Requesting the lost-hours report
	// THEN: Lost hours and recommendations are non-trivial

	srv := newTestServer(t)
	postJSON(t, srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "short-shifts"}).Body.Close()

	var report struct {
		TotalLostHours float64 `json:"total_lost_hours"`
		Alerts         []any   `json:"alerts"`
	}
	getJSON(t, srv.URL+"/api/reports/lost-hours", &report)
	assert.Greater(t, report.TotalLostHours, 0.0)

	var recs []any
	getJSON(t, srv.URL+"/api/reports/recommendations", &recs)
	assert.NotEmpty(t, recs)
}
