package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_employee_store.go -package=mocks hrpilot/internal/storage EmployeeStore

// EmployeeStore is the read/write surface for employee records.
type EmployeeStore interface {
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetByID(ctx context.Context, id int) (*Employee, error)
	ListAll(ctx context.Context) ([]Employee, error)
	// ListOthers returns every employee except the one with the given id.
	ListOthers(ctx context.Context, excludeID int) ([]Employee, error)
	// ListVisaExpiring returns employees whose visa expires on or before the
	// given time, excluding employees without a visa. Soonest expiry first.
	ListVisaExpiring(ctx context.Context, before time.Time) ([]Employee, error)
	Create(ctx context.Context, e *Employee) error
}

// EmployeeRepository is a SQLite-backed EmployeeStore.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = "id, name, email, role, country, salary, leave_balance, visa_expiry, created_at"

func scanEmployee(row interface{ Scan(...any) error }) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.Country, &e.Salary, &e.LeaveBalance, &e.VisaExpiry, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE email = ?", email)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) ListAll(ctx context.Context) ([]Employee, error) {
	return r.list(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY id")
}

func (r *EmployeeRepository) ListOthers(ctx context.Context, excludeID int) ([]Employee, error) {
	return r.list(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id != ? ORDER BY id", excludeID)
}

func (r *EmployeeRepository) ListVisaExpiring(ctx context.Context, before time.Time) ([]Employee, error) {
	return r.list(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE visa_expiry IS NOT NULL AND visa_expiry <= ? ORDER BY visa_expiry",
		before)
}

func (r *EmployeeRepository) list(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Create(ctx context.Context, e *Employee) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (name, email, role, country, salary, leave_balance, visa_expiry)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Email, e.Role, e.Country, e.Salary, e.LeaveBalance, e.VisaExpiry)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get employee id: %w", err)
	}
	e.ID = int(id)
	return nil
}
