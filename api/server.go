/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/shifts/*         Shift records and pay decomposition
  /api/employees/*      Roster management
  /api/reports/*        Analytics reports
  /api/reference/*      Reference data for dropdowns
  /api/rules            Active rule set
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.AddShifts)
			r.Post("/import", h.ImportShifts)
			r.Post("/cost", h.ShiftCost)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/import", h.ImportEmployees)
			r.Get("/{id}/summary", h.EmployeeSummary)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/lost-hours", h.LostHoursReport)
			r.Get("/recommendations", h.Recommendations)
			r.Get("/trends", h.Trends)
			r.Get("/workforce", h.WorkforceReport)
		})

		// Reference data routes
		r.Route("/reference", func(r chi.Router) {
			r.Get("/cost-centres", h.ListCostCentres)
			r.Get("/agencies", h.ListAgencies)
			r.Get("/positions", h.ListPositions)
		})

		// Rule set
		r.Get("/rules", h.GetRules)
		r.Get("/monitor/status", h.MonitorStatus)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetData)
		})
	})

	// Landing page listing available endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Labor Analytics Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Labor Analytics Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/shifts">/api/shifts</a> - Shift records</li>
<li><a href="/api/employees">/api/employees</a> - Roster</li>
<li><a href="/api/reports/lost-hours">/api/reports/lost-hours</a> - Lost hours report</li>
<li><a href="/api/reports/recommendations">/api/reports/recommendations</a> - Recommendations</li>
<li><a href="/api/reports/trends">/api/reports/trends</a> - Trends</li>
<li><a href="/api/reports/workforce">/api/reports/workforce</a> - Workforce cost</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
