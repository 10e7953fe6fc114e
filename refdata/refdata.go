/*
Package refdata carries the organizational reference data injected into
analytics calls that need grouping context.

PURPOSE:
  Cost centre codes, their department sets, and the known agency and
  position lists. The engine does not own this data - valid codes and the
  code-to-department mapping are deployment reference data supplied to the
  ingestion boundary for validation and to the API for dropdowns.

SEE ALSO:
  - ingest/: Uses Registry to reject unknown cost centres at the boundary
  - api/: Serves this data to the frontend
*/
package refdata

// CostCentre is an organizational billing code grouping one or more
// departments.
type CostCentre struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Departments []string `json:"departments"`
}

// Registry is one deployment's reference data set.
type Registry struct {
	costCentres []CostCentre
	byID        map[string]CostCentre
	deptToCC    map[string]string
	agencies    []string
	positions   []string
}

// NewRegistry builds lookup indexes over the given reference data.
func NewRegistry(costCentres []CostCentre, agencies, positions []string) *Registry {
	r := &Registry{
		costCentres: costCentres,
		byID:        make(map[string]CostCentre, len(costCentres)),
		deptToCC:    make(map[string]string),
		agencies:    agencies,
		positions:   positions,
	}
	for _, cc := range costCentres {
		r.byID[cc.ID] = cc
		for _, dept := range cc.Departments {
			r.deptToCC[dept] = cc.ID
		}
	}
	return r
}

// Default returns the warehouse deployment's reference data.
func Default() *Registry {
	return NewRegistry(
		[]CostCentre{
			{
				ID:          "3040034",
				Name:        "General Operations",
				Departments: []string{"Inbound", "Inventory", "Picking", "Despatch"},
			},
			{
				ID:          "3040038",
				Name:        "Beauty",
				Departments: []string{"Beauty Inbound", "Beauty Inventory", "Beauty Picking", "Beauty Despatch"},
			},
			{
				ID:          "3040040",
				Name:        "Ecom/Bash",
				Departments: []string{"Ecom", "Bash"},
			},
		},
		[]string{"Adcorp Blu", "Workforce", "TFG Permanent", "Other"},
		[]string{
			"DCA",
			"DCA Trainee",
			"General Worker Historic",
			"Order Picker/Forklift Driver Historic",
			"Service Delivery Assistant",
			"VNA Operator Historic",
			"Clerk",
			"Assistant Technician Historic",
			"Supervisor",
			"Manager",
		},
	)
}

// CostCentres returns the registered cost centres.
func (r *Registry) CostCentres() []CostCentre { return r.costCentres }

// Agencies returns the known staffing agencies.
func (r *Registry) Agencies() []string { return r.agencies }

// Positions returns the known position titles.
func (r *Registry) Positions() []string { return r.positions }

// ValidCostCentre reports whether the code is registered. An empty code is
// not valid: callers decide whether blank is permitted before asking.
func (r *Registry) ValidCostCentre(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// CostCentreFor returns the cost centre code covering a department, or ""
// when the department is not mapped.
func (r *Registry) CostCentreFor(department string) string {
	return r.deptToCC[department]
}
