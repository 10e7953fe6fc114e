/*
store.go - Persistence interface for shift and roster records

PURPOSE:
  Defines the boundary between the pure analytics engine and whatever
  stores the raw records. The engine itself never reads or writes storage:
  callers fetch a consistent snapshot through this interface and hand the
  records to the entry points. Different implementations can use SQLite or
  in-memory storage.

SNAPSHOT CONTRACT:
  ListShifts returns records ordered by date, then insertion order. Report
  determinism depends on this: the engine's tie-breaking rules are defined
  in terms of input order, so the store must produce the same order for
  the same data.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - engine/store/memory.go: In-memory for testing

SEE ALSO:
  - aggregate.go: Consumes snapshots fetched through this interface
*/
package engine

import "context"

// ShiftFilter narrows a shift snapshot. Zero-valued fields match
// everything.
type ShiftFilter struct {
	EmployeeID string
	Department string
	Agency     string
	CostCentre string
	From       Date // inclusive; zero = open
	To         Date // inclusive; zero = open
}

// Matches reports whether a record passes the filter.
func (f ShiftFilter) Matches(s ShiftRecord) bool {
	if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Department != "" && s.Department != f.Department {
		return false
	}
	if f.Agency != "" && s.Agency != f.Agency {
		return false
	}
	if f.CostCentre != "" && s.CostCentre != f.CostCentre {
		return false
	}
	if !f.From.IsZero() && s.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && s.Date.After(f.To) {
		return false
	}
	return true
}

// EmployeeFilter narrows a roster snapshot. Zero-valued fields match
// everything.
type EmployeeFilter struct {
	Department string
	Agency     string
	CostCentre string
	Position   string
}

// Matches reports whether a roster record passes the filter.
func (f EmployeeFilter) Matches(e Employee) bool {
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	if f.Agency != "" && e.Agency != f.Agency {
		return false
	}
	if f.CostCentre != "" && e.CostCentre != f.CostCentre {
		return false
	}
	if f.Position != "" && e.Position != f.Position {
		return false
	}
	return true
}

// ShiftStore supplies the consistent snapshots the analytics run over.
type ShiftStore interface {
	// AddShifts persists a batch of shift records.
	AddShifts(ctx context.Context, shifts []ShiftRecord) error

	// ListShifts returns matching records ordered by date, then insertion.
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftRecord, error)

	// PutEmployees upserts roster records keyed by employee number.
	PutEmployees(ctx context.Context, employees []Employee) error

	// ListEmployees returns matching roster records ordered by name.
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// Reset clears all data. Development and scenario loading only.
	Reset(ctx context.Context) error
}
