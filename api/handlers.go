/*
handlers.go - HTTP API handlers for the labor analytics engine

PURPOSE:
  Exposes the analytics engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the pure engine
  entry points. Handlers fetch ONE snapshot from the store per request and
  compute over it; the engine never re-reads data mid-computation.

ENDPOINTS:
  Shifts:
    GET    /api/shifts                   List shift records (filterable)
    POST   /api/shifts                   Add shift records (JSON array)
    POST   /api/shifts/import            Import shift CSV
    POST   /api/shifts/cost              Pay decomposition for one shift

  Employees:
    GET    /api/employees                List roster
    POST   /api/employees/import         Import roster CSV
    GET    /api/employees/{id}/summary   Per-employee lost-hours summary

  Reports (all computed fresh from the current snapshot):
    GET    /api/reports/lost-hours       Multi-dimensional rollup
    GET    /api/reports/recommendations  Prioritized action list
    GET    /api/reports/trends           Day-over-day trend series
    GET    /api/reports/workforce        Roster weekly cost projection

  Reference / config:
    GET    /api/rules                    Active rule set
    GET    /api/monitor/status           Background alert monitor status
    GET    /api/reference/cost-centres
    GET    /api/reference/agencies
    GET    /api/reference/positions

  Scenarios:
    GET    /api/scenarios                List demo scenarios
    POST   /api/scenarios/load           Load a demo scenario
    POST   /api/scenarios/reset          Clear all data

FILTERS:
  Report and list endpoints accept department, agency, cost_centre,
  employee_id, from, to query parameters; from/to are ISO dates,
  inclusive.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad JSON, bad dates, unusable CSV)
  - 404: Unknown employee or scenario
  - 500: Store failures

SECURITY NOTE:
  No authentication or authorization; access control belongs to the
  deployment boundary in front of this service.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/labor-analytics/engine"
	"github.com/warp/labor-analytics/ingest"
	"github.com/warp/labor-analytics/refdata"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    engine.ShiftStore
	Rules    engine.Rules
	Registry *refdata.Registry
	Importer *ingest.Importer
	Monitor  *AlertMonitor

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a handler over the given store and rule set.
func NewHandler(store engine.ShiftStore, rules engine.Rules, registry *refdata.Registry) *Handler {
	return &Handler{
		Store:    store,
		Rules:    rules,
		Registry: registry,
		Importer: ingest.NewImporter(registry),
	}
}

// shiftFilterFromQuery reads the shared filter query parameters.
func shiftFilterFromQuery(r *http.Request) engine.ShiftFilter {
	q := r.URL.Query()
	return engine.ShiftFilter{
		EmployeeID: q.Get("employee_id"),
		Department: q.Get("department"),
		Agency:     q.Get("agency"),
		CostCentre: q.Get("cost_centre"),
		From:       engine.ParseDate(q.Get("from")),
		To:         engine.ParseDate(q.Get("to")),
	}
}

// snapshot fetches the record set a report computes over.
func (h *Handler) snapshot(r *http.Request) ([]engine.ShiftRecord, error) {
	return h.Store.ListShifts(r.Context(), shiftFilterFromQuery(r))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns shift records matching the query filters.
// GET /api/shifts
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AddShifts stores a JSON array of shift records.
// POST /api/shifts
func (h *Handler) AddShifts(w http.ResponseWriter, r *http.Request) {
	var dtos []ShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	shifts := make([]engine.ShiftRecord, len(dtos))
	for i, dto := range dtos {
		shifts[i] = toShiftRecord(dto)
	}
	if err := h.Store.AddShifts(r.Context(), shifts); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store shifts", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"stored": len(shifts)})
}

// ImportShifts ingests a shift CSV through the strict boundary.
// POST /api/shifts/import
func (h *Handler) ImportShifts(w http.ResponseWriter, r *http.Request) {
	shifts, result, err := h.Importer.Shifts(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unusable CSV input", err)
		return
	}
	if len(shifts) > 0 {
		if err := h.Store.AddShifts(r.Context(), shifts); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store shifts", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// ShiftCost computes the pay decomposition for a single shift without
// storing it.
// POST /api/shifts/cost
func (h *Handler) ShiftCost(w http.ResponseWriter, r *http.Request) {
	var dto ShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	breakdown := engine.ComputeShiftCost(toShiftRecord(dto), h.Rules)
	writeJSON(w, http.StatusOK, toCostBreakdownDTO(breakdown))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the roster.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := engine.EmployeeFilter{
		Department: q.Get("department"),
		Agency:     q.Get("agency"),
		CostCentre: q.Get("cost_centre"),
		Position:   q.Get("position"),
	}
	employees, err := h.Store.ListEmployees(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ImportEmployees ingests a roster CSV.
// POST /api/employees/import
func (h *Handler) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	employees, result, err := h.Importer.Employees(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unusable CSV input", err)
		return
	}
	if len(employees) > 0 {
		if err := h.Store.PutEmployees(r.Context(), employees); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store employees", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// EmployeeSummary condenses one employee's shift history.
// GET /api/employees/{id}/summary
func (h *Handler) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	shifts, err := h.Store.ListShifts(r.Context(), engine.ShiftFilter{EmployeeID: employeeID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	if len(shifts) == 0 {
		writeError(w, http.StatusNotFound, "No shifts recorded for employee", nil)
		return
	}
	summary := engine.SummarizeEmployee(shifts, h.Rules)
	writeJSON(w, http.StatusOK, EmployeeSummaryDTO{
		EmployeeID:        employeeID,
		ShiftsWorked:      summary.ShiftsWorked,
		TotalLostHours:    dec(summary.TotalLostHours),
		TotalLostCost:     dec(summary.TotalLostCost),
		AverageEfficiency: summary.AverageEfficiency,
		RecentLostHours:   dec(summary.RecentLostHours),
		Trend:             string(summary.Trend),
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// LostHoursReport computes the multi-dimensional rollup over the current
// snapshot.
// GET /api/reports/lost-hours
func (h *Handler) LostHoursReport(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	report := engine.AggregateLostHours(shifts, h.Rules)
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// Recommendations derives the prioritized action list from the rollup.
// GET /api/reports/recommendations
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	report := engine.AggregateLostHours(shifts, h.Rules)
	recs := engine.GenerateRecommendations(report)
	writeJSON(w, http.StatusOK, toRecommendationDTOs(recs))
}

// Trends computes the day-over-day series.
// GET /api/reports/trends
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	points := engine.AnalyzeTrends(shifts, h.Rules)
	writeJSON(w, http.StatusOK, toTrendPointDTOs(points))
}

// WorkforceReport projects weekly cost across the roster.
// GET /api/reports/workforce
func (h *Handler) WorkforceReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := engine.EmployeeFilter{
		Department: q.Get("department"),
		Agency:     q.Get("agency"),
		CostCentre: q.Get("cost_centre"),
		Position:   q.Get("position"),
	}
	employees, err := h.Store.ListEmployees(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	analysis := engine.AnalyzeWorkforce(employees, h.Rules)
	writeJSON(w, http.StatusOK, toWorkforceDTO(analysis))
}

// =============================================================================
// REFERENCE / CONFIG HANDLERS
// =============================================================================

// GetRules returns the active rule set.
// GET /api/rules
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRulesDTO(h.Rules))
}

// MonitorStatus returns the background alert monitor's last sweep.
// GET /api/monitor/status
func (h *Handler) MonitorStatus(w http.ResponseWriter, r *http.Request) {
	if h.Monitor == nil {
		writeError(w, http.StatusNotFound, "Monitor not running", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.Monitor.Status())
}

// ListCostCentres returns the cost centre reference data.
// GET /api/reference/cost-centres
func (h *Handler) ListCostCentres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.CostCentres())
}

// ListAgencies returns the known staffing agencies.
// GET /api/reference/agencies
func (h *Handler) ListAgencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Agencies())
}

// ListPositions returns the known position titles.
// GET /api/reference/positions
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Positions())
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
