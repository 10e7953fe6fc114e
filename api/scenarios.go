/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	warehouse shift data for testing and demos. Each scenario stores a
	roster and a batch of shift records that exercise specific reports.

AVAILABLE SCENARIOS:

	steady-week:    Full-hour shifts across departments, no lost hours
	short-shifts:   Widespread early clock-outs driving alerts
	night-crew:     Night shifts demonstrating the allowance component
	agency-mix:     Uneven agency performance for agency recommendations

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Store a roster via PutEmployees
 3. Store shift records via AddShifts

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "short-shifts"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler dependencies, writeJSON/writeError
  - refdata/: Cost centre and agency reference data
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/labor-analytics/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "steady-week",
		Name:        "Steady Week",
		Description: "Everyone works their full scheduled hours, no lost time",
		Category:    "baseline",
	},
	{
		ID:          "short-shifts",
		Name:        "Short Shifts",
		Description: "Early clock-outs across departments triggering alerts",
		Category:    "lost-hours",
	},
	{
		ID:          "night-crew",
		Name:        "Night Crew",
		Description: "Night shifts with the shift allowance applied to pay",
		Category:    "pay",
	},
	{
		ID:          "agency-mix",
		Name:        "Agency Mix",
		Description: "Uneven performance across staffing agencies",
		Category:    "lost-hours",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "steady-week":
		err = h.loadSteadyWeekScenario(ctx)
	case "short-shifts":
		err = h.loadShortShiftsScenario(ctx)
	case "night-crew":
		err = h.loadNightCrewScenario(ctx)
	case "agency-mix":
		err = h.loadAgencyMixScenario(ctx)
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetData clears all stored data.
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// demoRoster is the employee set shared by all scenarios. Departments map
// onto the default cost centre registry.
func demoRoster() []engine.Employee {
	mk := func(number, name, position, department, agency, cc string, rate float64) engine.Employee {
		return engine.Employee{
			EmployeeNumber: number,
			Name:           name,
			Position:       position,
			Department:     department,
			Agency:         agency,
			CostCentre:     cc,
			HourlyRate:     decimal.NewFromFloat(rate),
			BillRate:       decimal.NewFromFloat(rate * 1.25),
		}
	}
	return []engine.Employee{
		mk("100001", "Sipho Dlamini", "DCA", "Picking", "Adcorp Blu", "3040034", 38.50),
		mk("100002", "Maria van Wyk", "DCA", "Inbound", "Workforce", "3040034", 40.00),
		mk("100003", "Thabo Nkosi", "Order Picker/Forklift Driver Historic", "Despatch", "Adcorp Blu", "3040034", 45.00),
		mk("100004", "Lerato Mokoena", "DCA Trainee", "Inventory", "Workforce", "3040034", 35.00),
		mk("100005", "Anele Gumede", "DCA", "Beauty Picking", "Adcorp Blu", "3040038", 38.50),
		mk("100006", "Pieter Botha", "Supervisor", "Beauty Inbound", "TFG Permanent", "3040038", 62.00),
		mk("100007", "Zanele Khumalo", "DCA", "Ecom", "Workforce", "3040040", 39.00),
		mk("100008", "Johan Pretorius", "VNA Operator Historic", "Bash", "TFG Permanent", "3040040", 52.00),
	}
}

// shiftBuilder cuts down repetition in scenario data. The roster entry
// supplies identity and rate; the builder varies date, hours and night flag.
type shiftBuilder struct {
	roster []engine.Employee
	shifts []engine.ShiftRecord
}

func newShiftBuilder(roster []engine.Employee) *shiftBuilder {
	return &shiftBuilder{roster: roster}
}

func (b *shiftBuilder) add(rosterIdx int, date string, hours float64, night bool) {
	e := b.roster[rosterIdx]
	b.shifts = append(b.shifts, engine.ShiftRecord{
		EmployeeID:     e.EmployeeNumber,
		EmployeeNumber: e.EmployeeNumber,
		EmployeeName:   e.Name,
		Department:     e.Department,
		Agency:         e.Agency,
		CostCentre:     e.CostCentre,
		Date:           engine.ParseDate(date),
		HoursWorked:    decimal.NewFromFloat(hours),
		NightShift:     night,
		HourlyRate:     e.HourlyRate,
	})
}

func (h *Handler) storeScenario(ctx context.Context, roster []engine.Employee, shifts []engine.ShiftRecord) error {
	if err := h.Store.PutEmployees(ctx, roster); err != nil {
		return err
	}
	return h.Store.AddShifts(ctx, shifts)
}

func (h *Handler) loadSteadyWeekScenario(ctx context.Context) error {
	roster := demoRoster()
	b := newShiftBuilder(roster)

	// Five days, everyone at full scheduled hours
	days := []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"}
	for _, day := range days {
		for i := range roster {
			b.add(i, day, 7.5, false)
		}
	}

	return h.storeScenario(ctx, roster, b.shifts)
}

func (h *Handler) loadShortShiftsScenario(ctx context.Context) error {
	roster := demoRoster()
	b := newShiftBuilder(roster)

	days := []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"}
	for d, day := range days {
		for i := range roster {
			switch {
			case i == 0:
				// Chronic early leaver: builds an alert every day
				b.add(i, day, 5.0, false)
			case i == 3 && d >= 2:
				// Trainee drops off mid-week
				b.add(i, day, 4.25, false)
			case i%2 == 1:
				b.add(i, day, 6.75, false)
			default:
				b.add(i, day, 7.5, false)
			}
		}
	}

	return h.storeScenario(ctx, roster, b.shifts)
}

func (h *Handler) loadNightCrewScenario(ctx context.Context) error {
	roster := demoRoster()
	b := newShiftBuilder(roster)

	days := []string{"2026-08-24", "2026-08-25", "2026-08-26"}
	for _, day := range days {
		// Despatch and Bash run a night shift with overtime
		b.add(2, day, 9.0, true)
		b.add(7, day, 9.0, true)
		// The rest work days at full hours
		for _, i := range []int{0, 1, 3, 4, 5, 6} {
			b.add(i, day, 7.5, false)
		}
	}

	return h.storeScenario(ctx, roster, b.shifts)
}

func (h *Handler) loadAgencyMixScenario(ctx context.Context) error {
	roster := demoRoster()
	b := newShiftBuilder(roster)

	days := []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27"}
	for _, day := range days {
		for i, e := range roster {
			switch e.Agency {
			case "Workforce":
				// Workforce crews consistently run short
				b.add(i, day, 5.25, false)
			case "Adcorp Blu":
				b.add(i, day, 7.0, false)
			default:
				b.add(i, day, 7.5, false)
			}
		}
	}

	return h.storeScenario(ctx, roster, b.shifts)
}
