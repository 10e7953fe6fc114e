/*
Package sqlite provides a SQLite-backed implementation of engine.ShiftStore.

PURPOSE:
  Persists raw shift records and the employee roster, and serves the
  consistent snapshots the analytics engine computes over. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

TABLES:
  shifts:    Raw per-shift labor records (append-oriented; analytics never
             mutate them)
  employees: Roster records, upserted by employee number

SNAPSHOT ORDERING:
  ListShifts orders by date then rowid (insertion order). The engine's
  stable tie-breaking is defined in terms of input order, so this ordering
  is part of the store contract, not an aesthetic choice.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block while a
  timesheet import is writing.

USAGE:
  store, err := sqlite.New("./data/labor.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine/store.go: Interface definition and filter semantics
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/labor-analytics/engine"
)

// Store implements engine.ShiftStore over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (creating if needed) the database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		employee_number TEXT,
		employee_name TEXT,
		department TEXT,
		agency TEXT,
		cost_centre TEXT,
		shift_date TEXT,
		hours_worked TEXT NOT NULL,
		night_shift INTEGER NOT NULL DEFAULT 0,
		hourly_rate TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(shift_date);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee ON shifts(employee_id);
	CREATE INDEX IF NOT EXISTS idx_shifts_department ON shifts(department);
	CREATE INDEX IF NOT EXISTS idx_shifts_cost_centre ON shifts(cost_centre);

	CREATE TABLE IF NOT EXISTS employees (
		employee_number TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT,
		department TEXT,
		agency TEXT,
		cost_centre TEXT,
		hourly_rate TEXT NOT NULL,
		bill_rate TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFTS
// =============================================================================

// AddShifts persists a batch atomically: either every record lands or none.
func (s *Store) AddShifts(ctx context.Context, shifts []engine.ShiftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shifts (id, employee_id, employee_number, employee_name,
			department, agency, cost_centre, shift_date, hours_worked,
			night_shift, hourly_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, shift := range shifts {
		night := 0
		if shift.NightShift {
			night = 1
		}
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			shift.EmployeeID,
			shift.EmployeeNumber,
			shift.EmployeeName,
			shift.Department,
			shift.Agency,
			shift.CostCentre,
			dateColumn(shift.Date),
			shift.HoursWorked.String(),
			night,
			shift.HourlyRate.String(),
		)
		if err != nil {
			return fmt.Errorf("insert shift for %s: %w", shift.EmployeeID, err)
		}
	}
	return tx.Commit()
}

// ListShifts returns matching records ordered by date, then insertion.
func (s *Store) ListShifts(ctx context.Context, filter engine.ShiftFilter) ([]engine.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT employee_id, employee_number, employee_name, department,
		agency, cost_centre, shift_date, hours_worked, night_shift, hourly_rate
		FROM shifts`
	var (
		conds []string
		args  []any
	)
	addCond := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if filter.EmployeeID != "" {
		addCond("employee_id = ?", filter.EmployeeID)
	}
	if filter.Department != "" {
		addCond("department = ?", filter.Department)
	}
	if filter.Agency != "" {
		addCond("agency = ?", filter.Agency)
	}
	if filter.CostCentre != "" {
		addCond("cost_centre = ?", filter.CostCentre)
	}
	if !filter.From.IsZero() {
		addCond("shift_date >= ?", filter.From.Key())
	}
	if !filter.To.IsZero() {
		addCond("shift_date <= ?", filter.To.Key())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY shift_date, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []engine.ShiftRecord
	for rows.Next() {
		var (
			rec      engine.ShiftRecord
			dateStr  string
			hoursStr string
			rateStr  string
			night    int
		)
		err := rows.Scan(&rec.EmployeeID, &rec.EmployeeNumber, &rec.EmployeeName,
			&rec.Department, &rec.Agency, &rec.CostCentre, &dateStr,
			&hoursStr, &night, &rateStr)
		if err != nil {
			return nil, err
		}
		rec.Date = engine.ParseDate(dateStr)
		rec.HoursWorked = mustDecimal(hoursStr)
		rec.HourlyRate = mustDecimal(rateStr)
		rec.NightShift = night != 0
		shifts = append(shifts, rec)
	}
	return shifts, rows.Err()
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// PutEmployees upserts roster records keyed by employee number.
func (s *Store) PutEmployees(ctx context.Context, employees []engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (employee_number, name, position, department,
			agency, cost_centre, hourly_rate, bill_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_number) DO UPDATE SET
			name = excluded.name,
			position = excluded.position,
			department = excluded.department,
			agency = excluded.agency,
			cost_centre = excluded.cost_centre,
			hourly_rate = excluded.hourly_rate,
			bill_rate = excluded.bill_rate`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, emp := range employees {
		_, err := stmt.ExecContext(ctx,
			emp.EmployeeNumber, emp.Name, emp.Position, emp.Department,
			emp.Agency, emp.CostCentre, emp.HourlyRate.String(), emp.BillRate.String())
		if err != nil {
			return fmt.Errorf("upsert employee %s: %w", emp.EmployeeNumber, err)
		}
	}
	return tx.Commit()
}

// ListEmployees returns matching roster records ordered by name.
func (s *Store) ListEmployees(ctx context.Context, filter engine.EmployeeFilter) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT employee_number, name, position, department, agency,
		cost_centre, hourly_rate, bill_rate FROM employees`
	var (
		conds []string
		args  []any
	)
	if filter.Department != "" {
		conds = append(conds, "department = ?")
		args = append(args, filter.Department)
	}
	if filter.Agency != "" {
		conds = append(conds, "agency = ?")
		args = append(args, filter.Agency)
	}
	if filter.CostCentre != "" {
		conds = append(conds, "cost_centre = ?")
		args = append(args, filter.CostCentre)
	}
	if filter.Position != "" {
		conds = append(conds, "position = ?")
		args = append(args, filter.Position)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.Employee
	for rows.Next() {
		var (
			emp     engine.Employee
			rateStr string
			billStr string
		)
		err := rows.Scan(&emp.EmployeeNumber, &emp.Name, &emp.Position,
			&emp.Department, &emp.Agency, &emp.CostCentre, &rateStr, &billStr)
		if err != nil {
			return nil, err
		}
		emp.HourlyRate = mustDecimal(rateStr)
		emp.BillRate = mustDecimal(billStr)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Reset clears all data. Development and scenario loading only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM shifts; DELETE FROM employees;`)
	return err
}

var _ engine.ShiftStore = (*Store)(nil)

// =============================================================================
// HELPERS
// =============================================================================

func dateColumn(d engine.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Key()
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
