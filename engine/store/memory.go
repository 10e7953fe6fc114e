// Package store provides ShiftStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/labor-analytics/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	shifts    []engine.ShiftRecord
	employees map[string]engine.Employee // keyed by employee number
	roster    []string                   // insertion order of employee numbers
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[string]engine.Employee),
	}
}

// AddShifts appends a batch of shift records.
func (m *Memory) AddShifts(_ context.Context, shifts []engine.ShiftRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = append(m.shifts, shifts...)
	return nil
}

// ListShifts returns matching records ordered by date, then insertion.
func (m *Memory) ListShifts(_ context.Context, filter engine.ShiftFilter) ([]engine.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.ShiftRecord
	for _, s := range m.shifts {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	// Stable keeps insertion order within a date.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// PutEmployees upserts roster records keyed by employee number.
func (m *Memory) PutEmployees(_ context.Context, employees []engine.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range employees {
		if _, exists := m.employees[e.EmployeeNumber]; !exists {
			m.roster = append(m.roster, e.EmployeeNumber)
		}
		m.employees[e.EmployeeNumber] = e
	}
	return nil
}

// ListEmployees returns matching roster records ordered by name.
func (m *Memory) ListEmployees(_ context.Context, filter engine.EmployeeFilter) ([]engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.Employee
	for _, num := range m.roster {
		e := m.employees[num]
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = nil
	m.employees = make(map[string]engine.Employee)
	m.roster = nil
	return nil
}

var _ engine.ShiftStore = (*Memory)(nil)
