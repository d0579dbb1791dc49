package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/staffapi/internal/errs"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/jackc/pgx/v5"
)

// ListEmployees returns every employee in the order the database yields them.
// An empty table gives an empty, non-nil slice.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	query := `SELECT id, name, email, position FROM employees`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Persistence("list employees", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.Name, &employee.Email, &employee.Position); err != nil {
			return nil, errs.Persistence("scan employee row", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Persistence("list employees", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
// A missing row is reported through the boolean, not as an error.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, bool, error) {
	var result models.Employee

	defer r.observe("get_employee_by_id", time.Now())

	query := `SELECT id, name, email, position FROM employees WHERE id = $1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(&result.ID, &result.Name, &result.Email, &result.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, errs.Persistence("get employee by id", err)
	}

	return result, true, nil
}

// CreateEmployee inserts a new employee and returns it with the identifier assigned by the database.
func (r *Repository) CreateEmployee(ctx context.Context, name, email, position string) (models.Employee, error) {
	var identifier int

	defer r.observe("create_employee", time.Now())

	query := `INSERT INTO employees (name, email, position) VALUES ($1, $2, $3) RETURNING id`

	if err := r.db.QueryRow(ctx, query, name, email, position).Scan(&identifier); err != nil {
		return models.Employee{}, errs.Persistence("create employee", err)
	}

	return models.Employee{ID: identifier, Name: name, Email: email, Position: position}, nil
}

// UpdateEmployee overwrites name, email and position of the employee and echoes the new state.
// The echo is returned even when no row carries the identifier.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	name, email, position string,
) (models.Employee, error) {
	defer r.observe("update_employee", time.Now())

	query := `UPDATE employees SET name = $2, email = $3, position = $4 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, identifier, name, email, position)
	if err != nil {
		return models.Employee{}, errs.Persistence("update employee data", err)
	}

	if tag.RowsAffected() == 0 {
		r.log.DebugContext(ctx, "update matched no employee", "id", identifier, "rows_affected", 0)
	}

	return models.Employee{ID: identifier, Name: name, Email: email, Position: position}, nil
}

// DeleteEmployee removes the employee with the given ID. Deleting a missing employee succeeds.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	defer r.observe("delete_employee", time.Now())

	query := `DELETE FROM employees WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		return errs.Persistence("delete employee", err)
	}

	if tag.RowsAffected() == 0 {
		r.log.DebugContext(ctx, "delete matched no employee", "id", identifier, "rows_affected", 0)
	}

	return nil
}
